package markup

import "errors"

var (
	ErrMissingRoot      = errors.New("markup.errors.missing_root")
	ErrUnknownBlockType = errors.New("markup.errors.unknown_block_type")
	ErrMaxDepth         = errors.New("markup.errors.max_depth_exceeded")
	ErrUnknownElement   = errors.New("markup.errors.unknown_element")
	ErrInvalidProps     = errors.New("markup.errors.invalid_props")
)

// ErrCompile wraps the engine errors of a failed compilation.
var ErrCompile = errors.New("markup.errors.compile_failed")
