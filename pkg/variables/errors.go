package variables

import "errors"

var (
	ErrInvalidVariables = errors.New("variables.errors.invalid")
	ErrUnknownMode      = errors.New("variables.errors.unknown_mode")
)
