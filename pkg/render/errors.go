package render

import "errors"

var (
	ErrCompileFailed      = errors.New("render.errors.compile_failed")
	ErrInvalidDocument    = errors.New("render.errors.invalid_document")
	ErrInvalidSnapshot    = errors.New("render.errors.invalid_snapshot")
	ErrInvalidVariables   = errors.New("render.errors.invalid_variables")
	ErrInterpolation      = errors.New("render.errors.interpolation_failed")
	ErrGuardrailViolation = errors.New("render.errors.guardrail_violation")
	ErrPlaintext          = errors.New("render.errors.plaintext_failed")
)
