package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.Mutex
	cache   = map[reflect.Type]any{}

	dotenvOnce sync.Once
)

// Load fills v from the process environment, after loading a .env file
// from the working directory if one exists. Each config type is parsed once;
// later calls for the same type return the cached value.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env file is normal outside development.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = *v
	return nil
}

// MustLoad is Load that panics on failure. Use it for settings without
// which the binary cannot start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Option tunes Parse.
type Option func(*parseOptions)

type parseOptions struct {
	prefix string
	files  []string
	vars   map[string]string
}

// WithPrefix requires every variable name to start with prefix.
func WithPrefix(prefix string) Option {
	return func(o *parseOptions) { o.prefix = prefix }
}

// WithEnvFiles reads dotenv files as a fallback below the process
// environment. The process environment itself is not modified.
func WithEnvFiles(paths ...string) Option {
	return func(o *parseOptions) { o.files = append(o.files, paths...) }
}

// WithVars parses from vars instead of the process environment.
func WithVars(vars map[string]string) Option {
	return func(o *parseOptions) { o.vars = vars }
}

// Parse builds a fresh T without touching the Load cache.
func Parse[T any](opts ...Option) (T, error) {
	var (
		v T
		o parseOptions
	)
	for _, opt := range opts {
		opt(&o)
	}

	vars := o.vars
	if vars == nil {
		vars = environ()
	}
	if len(o.files) > 0 {
		fromFiles, err := godotenv.Read(o.files...)
		if err != nil {
			return v, errors.Join(ErrReadingEnvFile, err)
		}
		for k, val := range fromFiles {
			if _, set := vars[k]; !set {
				vars[k] = val
			}
		}
	}

	if err := env.ParseWithOptions(&v, env.Options{
		Prefix:      o.prefix,
		Environment: vars,
	}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// Reset drops every cached config. Intended for tests.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}

func environ() map[string]string {
	out := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
