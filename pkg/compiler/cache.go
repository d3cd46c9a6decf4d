package compiler

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

type cacheEntry struct {
	key    string
	result Result
}

// resultCache is a thread-safe LRU of successful compilations keyed by the
// SHA-256 of the input markup.
type resultCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
	hits     uint64
	misses   uint64
}

func newResultCache(capacity int) *resultCache {
	if capacity <= 0 {
		return nil
	}
	return &resultCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

func cacheKey(markup string) string {
	sum := sha256.Sum256([]byte(markup))
	return hex.EncodeToString(sum[:])
}

func (c *resultCache) get(key string) (Result, bool) {
	if c == nil {
		return Result{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		c.hits++
		return elem.Value.(*cacheEntry).result, true
	}
	c.misses++
	return Result{}, false
}

func (c *resultCache) put(key string, res Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*cacheEntry).result = res
		return
	}

	c.items[key] = c.eviction.PushFront(&cacheEntry{key: key, result: res})
	if c.eviction.Len() > c.capacity {
		// Must be called with lock held.
		if oldest := c.eviction.Back(); oldest != nil {
			c.eviction.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Stats reports cache occupancy and hit counters.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

func (c *resultCache) stats() Stats {
	if c == nil {
		return Stats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: c.eviction.Len(), Hits: c.hits, Misses: c.misses}
}
