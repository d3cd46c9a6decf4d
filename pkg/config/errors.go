package config

import "errors"

var (
	ErrParsingConfig  = errors.New("config.errors.parse_failed")
	ErrReadingEnvFile = errors.New("config.errors.env_file_unreadable")
	ErrNilPointer     = errors.New("config.errors.nil_pointer")
)
