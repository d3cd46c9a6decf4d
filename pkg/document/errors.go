package document

import "errors"

var (
	ErrInvalidDocument = errors.New("document.errors.invalid_document")
	ErrInvalidProps    = errors.New("document.errors.invalid_props")
	ErrUnknownElement  = errors.New("document.errors.unknown_element")
)
