// Package ratelimiter throttles HTTP callers with an in-memory token
// bucket per key, by default the client IP. The preview API uses it so a
// single editor session cannot monopolise the HTML compiler.
//
//	l, err := ratelimiter.New(ratelimiter.Config{Capacity: 30, RefillRate: 1, RefillInterval: time.Second})
//	if err != nil {
//		// handle
//	}
//	defer l.Close()
//	r.Use(ratelimiter.Middleware(l, ratelimiter.ClientIP, nil))
package ratelimiter
