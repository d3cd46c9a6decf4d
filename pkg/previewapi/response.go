package previewapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailforge/pkg/render"
	"github.com/dmitrymomot/mailforge/pkg/validator"
)

// Response renders itself to w.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details holds per-field messages
// for validation failures.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON responds 200 with v as data.
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: Envelope{Data: v}}
}

// JSONError responds with the status and detail derived from err. data,
// when non-nil, carries partial output such as markup that failed to
// compile.
func JSONError(err error, data any) Response {
	status, detail := errorToDetail(err)
	return jsonResponse{status: status, body: Envelope{Data: data, Error: detail}}
}

func errorToDetail(err error) (int, *ErrorDetail) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: err.Error()}
	}

	switch {
	case errors.Is(err, render.ErrInvalidVariables):
		detail := &ErrorDetail{Code: "invalid_variables", Message: "variables failed validation"}
		if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
			detail.Details = make(map[string][]string)
			for _, v := range verrs {
				detail.Details[v.Field] = append(detail.Details[v.Field], v.Message)
			}
		}
		return http.StatusUnprocessableEntity, detail
	case errors.Is(err, render.ErrCompileFailed):
		return http.StatusUnprocessableEntity, &ErrorDetail{Code: "compile_failed", Message: err.Error()}
	case errors.Is(err, render.ErrGuardrailViolation):
		return http.StatusUnprocessableEntity, &ErrorDetail{Code: "guardrail_violation", Message: err.Error()}
	case errors.Is(err, render.ErrInvalidSnapshot),
		errors.Is(err, render.ErrInvalidDocument),
		errors.Is(err, ErrMissingInput),
		errors.Is(err, ErrAmbiguousInput):
		return http.StatusBadRequest, &ErrorDetail{Code: "bad_request", Message: err.Error()}
	}
	return http.StatusInternalServerError, &ErrorDetail{Code: ErrInternal.Key, Message: http.StatusText(http.StatusInternalServerError)}
}
