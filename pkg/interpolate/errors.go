package interpolate

import "errors"

var (
	ErrInvalidTemplate = errors.New("interpolate.errors.invalid_template")
	ErrRender          = errors.New("interpolate.errors.render_failed")
)
