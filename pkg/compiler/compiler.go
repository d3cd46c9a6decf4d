package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Boostport/mjml-go"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/markup"
)

// Result is the output of the HTML stage. Err is set only when the engine
// produced no HTML at all.
type Result struct {
	HTML     string
	Warnings []string
	Err      error
}

// Output combines both compile stages for a single document.
type Output struct {
	Markup   string   `json:"markup"`
	HTML     string   `json:"html"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Err returns a joined error for every recorded compile error, or nil.
func (o Output) Err() error {
	if len(o.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCompileFailed, strings.Join(o.Errors, "; "))
}

// Engine converts MJML markup to HTML. Validation findings are returned as
// warnings alongside the HTML.
type Engine interface {
	Render(ctx context.Context, markup string) (html string, warnings []string, err error)
}

// SharedCache is a second cache level consulted after an in-memory miss.
// Errors are logged and treated as a miss.
type SharedCache interface {
	Get(ctx context.Context, key string) (html string, warnings []string, ok bool, err error)
	Set(ctx context.Context, key, html string, warnings []string) error
}

// Compiler runs the HTML stage with a shared result cache. It is safe for
// concurrent use.
type Compiler struct {
	engine     Engine
	cache      *resultCache
	shared     SharedCache
	cacheSize  int
	logger     *slog.Logger
	markupOpts []markup.Option
}

// New creates a Compiler backed by the MJML engine.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		engine:    mjmlEngine{},
		cacheSize: DefaultCacheSize,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = newResultCache(c.cacheSize)
	return c
}

// ToHTML compiles markup to HTML. Engine validation findings become
// warnings; a failure that yields no HTML is reported in Result.Err.
func (c *Compiler) ToHTML(ctx context.Context, src string) Result {
	if strings.TrimSpace(src) == "" {
		return Result{Warnings: []string{}, Err: ErrEmptyMarkup}
	}

	key := cacheKey(src)
	if res, ok := c.cache.get(key); ok {
		return res
	}
	if res, ok := c.sharedGet(ctx, key); ok {
		c.cache.put(key, res)
		return res
	}

	start := time.Now()
	html, warnings, err := c.engine.Render(ctx, src)
	if warnings == nil {
		warnings = []string{}
	}
	if err != nil || html == "" {
		if err == nil {
			err = errors.New("engine returned empty output")
		}
		c.logger.ErrorContext(ctx, "markup compilation failed",
			logger.Component("compiler"),
			logger.Error(err),
		)
		return Result{Warnings: warnings, Err: fmt.Errorf("%w: %w", ErrCompileFailed, err)}
	}

	res := Result{HTML: html, Warnings: warnings}
	c.cache.put(key, res)
	c.sharedSet(ctx, key, res)

	c.logger.DebugContext(ctx, "markup compiled",
		logger.Component("compiler"),
		logger.SizeBytes(len(html)),
		logger.Warnings(len(warnings)),
		logger.Duration(time.Since(start)),
	)
	return res
}

func (c *Compiler) sharedGet(ctx context.Context, key string) (Result, bool) {
	if c.shared == nil {
		return Result{}, false
	}
	html, warnings, ok, err := c.shared.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "shared compile cache lookup failed",
			logger.Component("compiler"),
			logger.Error(err),
		)
		return Result{}, false
	}
	if !ok || html == "" {
		return Result{}, false
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Result{HTML: html, Warnings: warnings}, true
}

func (c *Compiler) sharedSet(ctx context.Context, key string, res Result) {
	if c.shared == nil {
		return
	}
	if err := c.shared.Set(ctx, key, res.HTML, res.Warnings); err != nil {
		c.logger.WarnContext(ctx, "shared compile cache write failed",
			logger.Component("compiler"),
			logger.Error(err),
		)
	}
}

// Stats returns cache counters.
func (c *Compiler) Stats() Stats {
	return c.cache.stats()
}

// CompileDocument runs the markup assembler and, when it reports no
// errors, the HTML stage.
func (c *Compiler) CompileDocument(ctx context.Context, doc *document.Document, opts ...markup.Option) Output {
	return c.finish(ctx, markup.Compile(doc, c.withMarkupOptions(opts)...))
}

// CompileElements is CompileDocument for the flat element front end.
func (c *Compiler) CompileElements(ctx context.Context, doc *document.ElementDocument, opts ...markup.Option) Output {
	return c.finish(ctx, markup.CompileElements(doc, c.withMarkupOptions(opts)...))
}

func (c *Compiler) withMarkupOptions(opts []markup.Option) []markup.Option {
	if len(c.markupOpts) == 0 {
		return opts
	}
	return append(append([]markup.Option(nil), c.markupOpts...), opts...)
}

func (c *Compiler) finish(ctx context.Context, mr markup.Result) Output {
	out := Output{
		Markup:   mr.Markup,
		Warnings: mr.Warnings,
		Errors:   mr.Errors,
	}
	if len(out.Errors) > 0 {
		return out
	}

	res := c.ToHTML(ctx, mr.Markup)
	out.HTML = res.HTML
	out.Warnings = append(append([]string{}, out.Warnings...), res.Warnings...)
	if res.Err != nil {
		out.Errors = append(out.Errors, res.Err.Error())
	}
	return out
}

// mjmlEngine validates strictly to collect findings and, when validation
// fails, compiles again with validation skipped so that findings never
// block output.
type mjmlEngine struct{}

func (mjmlEngine) Render(ctx context.Context, src string) (string, []string, error) {
	html, err := mjml.ToHTML(ctx, src,
		mjml.WithValidationLevel(mjml.Strict),
		mjml.WithMinify(false),
	)
	if err == nil {
		return html, nil, nil
	}

	var mjmlErr mjml.Error
	if !errors.As(err, &mjmlErr) || len(mjmlErr.Details) == 0 {
		return "", nil, err
	}

	warnings := make([]string, 0, len(mjmlErr.Details))
	for _, d := range mjmlErr.Details {
		warnings = append(warnings, fmt.Sprintf("line %d <%s>: %s", d.Line, d.TagName, d.Message))
	}

	html, err = mjml.ToHTML(ctx, src,
		mjml.WithValidationLevel(mjml.Skip),
		mjml.WithMinify(false),
	)
	if err != nil {
		return "", warnings, err
	}
	return html, warnings, nil
}
