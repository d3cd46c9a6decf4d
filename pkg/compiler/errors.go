package compiler

import "errors"

var (
	ErrCompileFailed = errors.New("compiler.errors.compile_failed")
	ErrEmptyMarkup   = errors.New("compiler.errors.empty_markup")
)
