package compiler

import (
	"log/slog"

	"github.com/dmitrymomot/mailforge/pkg/markup"
)

// DefaultCacheSize is the number of compiled markups kept in memory.
const DefaultCacheSize = 256

// Option configures a Compiler.
type Option func(*Compiler)

// WithCacheSize sets the result cache capacity. Zero or negative disables caching.
func WithCacheSize(n int) Option {
	return func(c *Compiler) {
		c.cacheSize = n
	}
}

// WithLogger attaches a logger for compile diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMarkupOptions sets options forwarded to the markup assembler.
func WithMarkupOptions(opts ...markup.Option) Option {
	return func(c *Compiler) {
		c.markupOpts = append(c.markupOpts, opts...)
	}
}

// WithEngine replaces the markup-to-HTML engine. Used by tests.
func WithEngine(e Engine) Option {
	return func(c *Compiler) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithSharedCache adds a cache shared between processes, such as Redis.
func WithSharedCache(sc SharedCache) Option {
	return func(c *Compiler) {
		c.shared = sc
	}
}
