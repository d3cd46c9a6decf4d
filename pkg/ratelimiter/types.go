package ratelimiter

import (
	"fmt"
	"time"
)

// Config describes a token bucket: Capacity is the burst size and
// RefillRate tokens are added every RefillInterval.
type Config struct {
	Capacity       int           `env:"MAILFORGE_RATE_CAPACITY" envDefault:"30"`
	RefillRate     int           `env:"MAILFORGE_RATE_REFILL" envDefault:"1"`
	RefillInterval time.Duration `env:"MAILFORGE_RATE_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the bucket state after one request.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request fit in the bucket.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is the wait until the next refill, or zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}
