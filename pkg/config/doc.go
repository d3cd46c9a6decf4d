// Package config loads typed settings from environment variables using
// struct tags understood by github.com/caarlos0/env.
//
//	type Config struct {
//		CanvasWidth int `env:"MAILFORGE_CANVAS_WIDTH" envDefault:"600"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle
//	}
//
// Load reads a .env file once per process and caches each config type.
// Parse is the uncached variant; it can read extra dotenv files or an
// explicit variable map, which keeps tests independent of the process
// environment.
package config
