package redis

import "time"

// Config holds connection and cache settings. An empty URL means Redis is
// not used.
type Config struct {
	URL            string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
	CacheTTL       time.Duration `env:"REDIS_CACHE_TTL" envDefault:"24h"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"mailforge:html:"`
}
