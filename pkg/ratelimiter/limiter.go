package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter is an in-memory token bucket per key. Idle buckets are dropped
// by a background sweep until Close is called.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	idleTTL   time.Duration
	stop      chan struct{}
	closeOnce sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithIdleTTL sets how long an untouched bucket is kept. Zero disables the
// sweep.
func WithIdleTTL(d time.Duration) Option {
	return func(l *Limiter) { l.idleTTL = d }
}

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New validates cfg and creates a Limiter.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		idleTTL: time.Hour,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.idleTTL > 0 {
		go l.sweep()
	}
	return l, nil
}

// Allow takes one token from the bucket for key.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}

	// Capped so a long idle period cannot overflow the multiplication.
	maxIntervals := int64(l.cfg.Capacity/l.cfg.RefillRate + 1)
	intervals := int(min(int64(now.Sub(b.lastRefill)/l.cfg.RefillInterval), maxIntervals))
	if intervals > 0 {
		b.tokens = min(max(b.tokens, 0)+intervals*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = now
	}

	// A denied request does not drive the bucket further negative.
	if b.tokens > 0 {
		b.tokens--
	} else {
		b.tokens = -1
	}
	b.lastAccess = now

	return Result{
		Limit:     l.cfg.Capacity,
		Remaining: b.tokens,
		ResetAt:   b.lastRefill.Add(l.cfg.RefillInterval),
	}
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Close stops the background sweep. Safe to call more than once.
func (l *Limiter) Close() {
	l.closeOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(max(l.idleTTL/2, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) removeIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
}
