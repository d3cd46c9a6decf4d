package render

import (
	"github.com/dmitrymomot/mailforge/pkg/compiler"
	"github.com/dmitrymomot/mailforge/pkg/guardrails"
	"github.com/dmitrymomot/mailforge/pkg/plaintext"
)

// Config tunes the render pipeline.
type Config struct {
	CanvasWidth      int  `env:"MAILFORGE_CANVAS_WIDTH" envDefault:"600"`
	SizeLimitBytes   int  `env:"MAILFORGE_SIZE_LIMIT" envDefault:"104448"`
	CacheSize        int  `env:"MAILFORGE_COMPILE_CACHE_SIZE" envDefault:"256"`
	BatchConcurrency int  `env:"MAILFORGE_BATCH_CONCURRENCY" envDefault:"8"`
	PlaintextWidth   uint `env:"MAILFORGE_PLAINTEXT_WIDTH" envDefault:"80"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:      600,
		SizeLimitBytes:   guardrails.DefaultSizeLimit,
		CacheSize:        compiler.DefaultCacheSize,
		BatchConcurrency: 8,
		PlaintextWidth:   plaintext.DefaultWidth,
	}
}
