package render

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailforge/pkg/compiler"
	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/guardrails"
	"github.com/dmitrymomot/mailforge/pkg/interpolate"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/markup"
	"github.com/dmitrymomot/mailforge/pkg/plaintext"
	"github.com/dmitrymomot/mailforge/pkg/variables"
)

// Renderer composes the compile, guardrail and plaintext stages. It holds
// no per-call state and is safe for concurrent use.
type Renderer struct {
	cfg      Config
	compiler *compiler.Compiler
	shared   compiler.SharedCache
	logger   *slog.Logger
}

// New creates a Renderer. Zero Config fields fall back to DefaultConfig;
// a negative CacheSize disables the compile cache and a negative
// SizeLimitBytes disables the size guardrail.
func New(cfg Config, opts ...Option) *Renderer {
	def := DefaultConfig()
	if cfg.CanvasWidth <= 0 {
		cfg.CanvasWidth = def.CanvasWidth
	}
	if cfg.SizeLimitBytes == 0 {
		cfg.SizeLimitBytes = def.SizeLimitBytes
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = def.BatchConcurrency
	}
	if cfg.PlaintextWidth == 0 {
		cfg.PlaintextWidth = def.PlaintextWidth
	}

	r := &Renderer{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.compiler == nil {
		r.compiler = compiler.New(
			compiler.WithCacheSize(cfg.CacheSize),
			compiler.WithLogger(r.logger),
			compiler.WithMarkupOptions(markup.WithCanvasWidth(cfg.CanvasWidth)),
			compiler.WithSharedCache(r.shared),
		)
	}
	return r
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// CacheStats exposes the compile cache counters.
func (r *Renderer) CacheStats() compiler.Stats {
	return r.compiler.Stats()
}

// Compile runs the markup assembler only.
func (r *Renderer) Compile(doc *document.Document) markup.Result {
	return markup.Compile(doc, markup.WithCanvasWidth(r.cfg.CanvasWidth))
}

// CompileElements runs the element front end of the markup assembler.
func (r *Renderer) CompileElements(doc *document.ElementDocument) markup.Result {
	return markup.CompileElements(doc, markup.WithCanvasWidth(r.cfg.CanvasWidth))
}

// PreviewOutput is a document rendered without recipient data.
type PreviewOutput struct {
	Markup    string   `json:"markup"`
	HTML      string   `json:"html"`
	Plaintext string   `json:"plaintext"`
	Warnings  []string `json:"warnings"`
	Errors    []string `json:"errors"`
	SizeBytes int      `json:"sizeBytes"`
}

// Preview compiles doc to HTML and runs guardrails and plaintext
// extraction. Placeholders are left as written. On compile errors the
// output still carries the markup and diagnostics and the error wraps
// ErrCompileFailed.
func (r *Renderer) Preview(ctx context.Context, doc *document.Document) (PreviewOutput, error) {
	return r.preview(ctx, r.compiler.CompileDocument(ctx, doc))
}

// PreviewElements is Preview for the flat element format.
func (r *Renderer) PreviewElements(ctx context.Context, doc *document.ElementDocument) (PreviewOutput, error) {
	return r.preview(ctx, r.compiler.CompileElements(ctx, doc))
}

func (r *Renderer) preview(ctx context.Context, out compiler.Output) (PreviewOutput, error) {
	p := PreviewOutput{
		Markup:   out.Markup,
		HTML:     out.HTML,
		Warnings: out.Warnings,
		Errors:   out.Errors,
	}
	if err := out.Err(); err != nil {
		r.logger.DebugContext(ctx, "preview compilation failed",
			logger.Component("render"),
			logger.Messages("errors", out.Errors),
		)
		return p, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	final, err := r.finish(ctx, out.HTML)
	if err != nil {
		return p, err
	}
	p.HTML = final.HTML
	p.Plaintext = final.Plaintext
	p.SizeBytes = final.SizeBytes
	p.Warnings = append(p.Warnings, final.Warnings...)
	return p, nil
}

// Publish compiles doc into an immutable snapshot. An empty stableID gets
// a fresh one. The markup is compiled to HTML once so that a snapshot
// which cannot render is never produced.
func (r *Renderer) Publish(ctx context.Context, doc *document.Document, stableID string) (document.TemplateSnapshot, error) {
	if doc == nil {
		return document.TemplateSnapshot{}, fmt.Errorf("%w: nil document", ErrInvalidDocument)
	}

	out := r.compiler.CompileDocument(ctx, doc, markup.WithCanvasWidth(r.cfg.CanvasWidth))
	if err := out.Err(); err != nil {
		return document.TemplateSnapshot{}, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	if stableID == "" {
		stableID = uuid.NewString()
	}
	snap := document.TemplateSnapshot{
		StableID:        stableID,
		SnapshotID:      uuid.NewString(),
		Markup:          out.Markup,
		VariablesSchema: variables.SchemaFromVariables(doc.Variables),
		SubjectLines:    []string{},
		Preheader:       doc.Metadata.Preheader,
	}
	if s := strings.TrimSpace(doc.Metadata.Subject); s != "" {
		snap.SubjectLines = append(snap.SubjectLines, s)
	}

	attrs := []any{
		logger.Component("render"),
		logger.StableID(snap.StableID),
		logger.SnapshotID(snap.SnapshotID),
		logger.Warnings(len(out.Warnings)),
	}
	if undeclared := undeclaredPlaceholders(snap); len(undeclared) > 0 {
		attrs = append(attrs, logger.Messages("undeclared_placeholders", undeclared))
	}
	r.logger.InfoContext(ctx, "snapshot published", attrs...)
	return snap, nil
}

// undeclaredPlaceholders lists names used in the snapshot templates that
// the schema does not declare. They always render empty.
func undeclaredPlaceholders(snap document.TemplateSnapshot) []string {
	var names []string
	for _, tmpl := range append([]string{snap.Markup, snap.Preheader}, snap.SubjectLines...) {
		found, err := interpolate.Names(tmpl)
		if err != nil {
			continue
		}
		for _, n := range found {
			if _, ok := snap.VariablesSchema.Properties[n]; !ok && !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	return names
}

type finished struct {
	HTML      string
	Plaintext string
	Warnings  []string
	SizeBytes int
}

// finish runs the stages shared by preview and render: guardrails, then
// plaintext extraction.
func (r *Renderer) finish(ctx context.Context, html string) (finished, error) {
	start := time.Now()
	guard, err := guardrails.Check(html, guardrails.WithSizeLimit(r.cfg.SizeLimitBytes))
	if err != nil {
		return finished{}, fmt.Errorf("%w: %w", ErrGuardrailViolation, err)
	}
	if guard.HasErrors() {
		return finished{}, fmt.Errorf("%w: %s", ErrGuardrailViolation, strings.Join(guard.Errors, "; "))
	}
	if len(guard.Warnings) > 0 {
		r.logger.WarnContext(ctx, "guardrail findings",
			logger.Component("render"),
			logger.Messages("warnings", guard.Warnings),
		)
	}

	text, err := plaintext.FromHTML(guard.HTML, plaintext.WithWidth(r.cfg.PlaintextWidth))
	if err != nil {
		return finished{}, fmt.Errorf("%w: %w", ErrPlaintext, err)
	}

	r.logger.DebugContext(ctx, "guardrails and plaintext done",
		logger.Component("render"),
		logger.SizeBytes(guard.SizeBytes),
		logger.Duration(time.Since(start)),
	)
	return finished{
		HTML:      guard.HTML,
		Plaintext: text,
		Warnings:  guard.Warnings,
		SizeBytes: guard.SizeBytes,
	}, nil
}
