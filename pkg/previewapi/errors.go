package previewapi

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code and a stable machine key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrRequestTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternal             = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
)

var (
	ErrInvalidJSON    = errors.New("previewapi.errors.invalid_json")
	ErrMissingInput   = errors.New("previewapi.errors.missing_input")
	ErrNilResponse    = errors.New("previewapi.errors.nil_response")
	ErrAmbiguousInput = errors.New("previewapi.errors.ambiguous_input")
)
