package render

import (
	"log/slog"

	"github.com/dmitrymomot/mailforge/pkg/compiler"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for stage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCompiler replaces the HTML-stage compiler built from Config.
func WithCompiler(c *compiler.Compiler) Option {
	return func(r *Renderer) {
		if c != nil {
			r.compiler = c
		}
	}
}

// WithSharedCache adds a second compile cache level to the compiler built
// from Config. It has no effect together with WithCompiler.
func WithSharedCache(sc compiler.SharedCache) Option {
	return func(r *Renderer) {
		r.shared = sc
	}
}
