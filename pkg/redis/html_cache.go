package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// HTMLCache stores compiled HTML so that processes sharing a Redis
// instance compile each distinct markup once.
type HTMLCache struct {
	db     redis.UniversalClient
	ttl    time.Duration
	prefix string
}

type htmlEntry struct {
	HTML     string   `json:"html"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewHTMLCache wraps client. A zero TTL keeps entries until evicted by
// Redis.
func NewHTMLCache(client redis.UniversalClient, cfg Config) *HTMLCache {
	return &HTMLCache{db: client, ttl: cfg.CacheTTL, prefix: cfg.KeyPrefix}
}

// Get returns the entry for key. A missing key is not an error.
func (c *HTMLCache) Get(ctx context.Context, key string) (string, []string, bool, error) {
	raw, err := c.db.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, err
	}
	var e htmlEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return "", nil, false, errors.Join(ErrCorruptEntry, err)
	}
	return e.HTML, e.Warnings, true, nil
}

// Set stores html and its warnings under key.
func (c *HTMLCache) Set(ctx context.Context, key, html string, warnings []string) error {
	raw, err := json.Marshal(htmlEntry{HTML: html, Warnings: warnings})
	if err != nil {
		return err
	}
	return c.db.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}
