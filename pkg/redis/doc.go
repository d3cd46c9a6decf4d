// Package redis connects to Redis and provides HTMLCache, a compile cache
// shared between mailforge processes.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// handle
//	}
//	c := compiler.New(compiler.WithSharedCache(redis.NewHTMLCache(client, cfg)))
//
// Tests that need a server read REDIS_URL and are skipped without it.
package redis
