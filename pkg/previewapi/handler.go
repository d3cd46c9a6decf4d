package previewapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/mailforge/pkg/logger"
)

// HandlerFunc handles a decoded request body of type R.
type HandlerFunc[R any] func(ctx context.Context, req R) Response

// wrap adapts a typed handler to http.HandlerFunc: it binds the JSON body,
// runs h and renders the response. Binding failures and render failures
// are answered with a JSON error.
func wrap[R any](h HandlerFunc[R], log *slog.Logger, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		if err := bindJSON(w, r, &req, maxBody); err != nil {
			writeError(w, r, log, err)
			return
		}

		resp := h(r.Context(), req)
		if resp == nil {
			writeError(w, r, log, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			log.ErrorContext(r.Context(), "failed to write response",
				logger.Component("previewapi"),
				logger.Error(err),
			)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	resp := JSONError(err, nil)
	if jr, ok := resp.(jsonResponse); ok && jr.status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			logger.Component("previewapi"),
			logger.Error(err),
		)
	}
	_ = resp.Render(w, r)
}
