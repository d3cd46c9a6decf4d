package previewapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/environment"
	"github.com/dmitrymomot/mailforge/pkg/httpserver"
	"github.com/dmitrymomot/mailforge/pkg/markup"
	"github.com/dmitrymomot/mailforge/pkg/ratelimiter"
	"github.com/dmitrymomot/mailforge/pkg/render"
	"github.com/dmitrymomot/mailforge/pkg/requestid"
)

// Service exposes the render pipeline over HTTP.
type Service struct {
	renderer *render.Renderer
	logger   *slog.Logger
	env      environment.Environment
	maxBody  int64
	checks   []httpserver.Check
	limiter  *ratelimiter.Limiter
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEnvironment stores env in every request context.
func WithEnvironment(env environment.Environment) Option {
	return func(s *Service) { s.env = env }
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithHealthChecks adds readiness probes to GET /health.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(s *Service) { s.checks = append(s.checks, checks...) }
}

// WithRateLimiter throttles every endpoint except /health per client IP.
func WithRateLimiter(l *ratelimiter.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// NewService creates a Service backed by r.
func NewService(r *render.Renderer, opts ...Option) *Service {
	s := &Service{
		renderer: r,
		logger:   slog.New(slog.DiscardHandler),
		env:      environment.Development,
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the router:
//
//	POST /compile       document -> markup
//	POST /preview       document -> html, plaintext, findings
//	POST /publish       document -> snapshot
//	POST /render        snapshot + recipient -> final email
//	POST /render/batch  snapshot + recipients -> final emails
//	GET  /health
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(s.env))
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(s.logger, s.checks...))

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimiter.Middleware(s.limiter, ratelimiter.ClientIP,
				http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					_ = JSONError(ErrTooManyRequests, nil).Render(w, req)
				})))
		}
		r.Post("/compile", wrap(s.compile, s.logger, s.maxBody))
		r.Post("/preview", wrap(s.preview, s.logger, s.maxBody))
		r.Post("/publish", wrap(s.publish, s.logger, s.maxBody))
		r.Post("/render", wrap(s.render, s.logger, s.maxBody))
		r.Post("/render/batch", wrap(s.renderBatch, s.logger, s.maxBody))
	})
	return r
}

// DocumentRequest carries exactly one of the two document formats.
type DocumentRequest struct {
	Document *document.Document        `json:"document,omitempty"`
	Elements *document.ElementDocument `json:"elements,omitempty"`
}

func (d DocumentRequest) validate() error {
	switch {
	case d.Document == nil && d.Elements == nil:
		return ErrMissingInput
	case d.Document != nil && d.Elements != nil:
		return ErrAmbiguousInput
	}
	return nil
}

func (s *Service) compile(_ context.Context, req DocumentRequest) Response {
	if err := req.validate(); err != nil {
		return JSONError(err, nil)
	}
	var res markup.Result
	if req.Document != nil {
		res = s.renderer.Compile(req.Document)
	} else {
		res = s.renderer.CompileElements(req.Elements)
	}
	if err := res.Err(); err != nil {
		return JSONError(fmt.Errorf("%w: %w", render.ErrCompileFailed, err), res)
	}
	return JSON(res)
}

func (s *Service) preview(ctx context.Context, req DocumentRequest) Response {
	if err := req.validate(); err != nil {
		return JSONError(err, nil)
	}

	var (
		out render.PreviewOutput
		err error
	)
	if req.Document != nil {
		out, err = s.renderer.Preview(ctx, req.Document)
	} else {
		out, err = s.renderer.PreviewElements(ctx, req.Elements)
	}
	if err != nil {
		return JSONError(err, out)
	}
	return JSON(out)
}

// PublishRequest asks for a snapshot of Document. An empty StableID gets a
// new one.
type PublishRequest struct {
	StableID string             `json:"stableId,omitempty"`
	Document *document.Document `json:"document"`
}

func (s *Service) publish(ctx context.Context, req PublishRequest) Response {
	if req.Document == nil {
		return JSONError(ErrMissingInput, nil)
	}
	snap, err := s.renderer.Publish(ctx, req.Document, req.StableID)
	if err != nil {
		return JSONError(err, nil)
	}
	return JSON(snap)
}

// RenderRequest renders Snapshot for one recipient.
type RenderRequest struct {
	Snapshot  document.TemplateSnapshot `json:"snapshot"`
	Recipient render.Recipient          `json:"recipient"`
}

func (s *Service) render(ctx context.Context, req RenderRequest) Response {
	out, err := s.renderer.Render(ctx, req.Snapshot, req.Recipient)
	if err != nil {
		return JSONError(err, nil)
	}
	return JSON(out)
}

// BatchRequest renders Snapshot for every recipient.
type BatchRequest struct {
	Snapshot   document.TemplateSnapshot `json:"snapshot"`
	Recipients []render.Recipient        `json:"recipients"`
}

// BatchItem is one recipient's outcome. Exactly one of Output and Error is
// set.
type BatchItem struct {
	Index  int                  `json:"index"`
	Output *render.RenderOutput `json:"output,omitempty"`
	Error  *ErrorDetail         `json:"error,omitempty"`
}

func (s *Service) renderBatch(ctx context.Context, req BatchRequest) Response {
	if len(req.Recipients) == 0 {
		return JSONError(ErrMissingInput, nil)
	}
	results := s.renderer.RenderBatch(ctx, req.Snapshot, req.Recipients)
	items := make([]BatchItem, len(results))
	for i, res := range results {
		items[i] = BatchItem{Index: res.Index}
		if res.Err != nil {
			_, items[i].Error = errorToDetail(res.Err)
			continue
		}
		items[i].Output = &results[i].Output
	}
	return JSON(items)
}
