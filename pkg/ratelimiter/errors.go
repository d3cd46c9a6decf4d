package ratelimiter

import "errors"

var ErrInvalidConfig = errors.New("ratelimiter.errors.invalid_config")
