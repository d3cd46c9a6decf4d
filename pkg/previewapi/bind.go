package previewapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 2 << 20

// bindJSON decodes exactly one JSON object from the body into v. Unknown
// fields are rejected.
func bindJSON(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return fmt.Errorf("%w: expected application/json", ErrUnsupportedMediaType)
	}
	if media, _, err := mime.ParseMediaType(ct); err != nil || media != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrRequestTooLarge
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: %w: empty body", ErrBadRequest, ErrInvalidJSON)
		default:
			return fmt.Errorf("%w: %w: %v", ErrBadRequest, ErrInvalidJSON, err)
		}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w: unexpected data after JSON object", ErrBadRequest, ErrInvalidJSON)
	}
	return nil
}
