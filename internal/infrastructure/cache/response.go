package cache

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/groupcache/lru"

	"github.com/GriffinCanCode/FileExplorer/internal/shared/paths"
)

// Defaults for the listing response cache
const (
	DefaultTTL  = 5 * time.Second
	DefaultSize = 256
)

// Key identifies one listing request
type Key struct {
	Path       string
	Depth      int
	Extensions string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d:%s", k.Path, k.Depth, k.Extensions)
}

type entry struct {
	body    []byte
	expires time.Time
}

// ResponseCache is a TTL-bounded LRU of encoded responses. It is safe for
// concurrent use.
type ResponseCache struct {
	ttl  time.Duration
	size int
	now  func() time.Time

	mu   sync.Mutex
	lru  *lru.Cache
	keys map[Key]struct{}

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	// set while Set runs so only capacity evictions are counted
	adding bool
}

// NewResponseCache creates a cache holding at most size entries for ttl each
func NewResponseCache(ttl time.Duration, size int) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if size <= 0 {
		size = DefaultSize
	}
	c := &ResponseCache{
		ttl:  ttl,
		size: size,
		now:  time.Now,
		lru:  lru.New(size),
		keys: make(map[Key]struct{}, size),
	}
	c.lru.OnEvicted = func(key lru.Key, _ interface{}) {
		delete(c.keys, key.(Key))
		if c.adding {
			c.evictions.Add(1)
		}
	}
	return c
}

// TTL returns the entry lifetime
func (c *ResponseCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the encoded body for key if present and fresh
func (c *ResponseCache) Get(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	e := v.(entry)
	if !c.now().Before(e.expires) {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.body, true
}

// Set stores an already encoded body
func (c *ResponseCache) Set(key Key, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adding = true
	c.lru.Add(key, entry{body: body, expires: c.now().Add(c.ttl)})
	c.adding = false
	c.keys[key] = struct{}{}
}

// Store encodes v as JSON, caches it and returns the encoded bytes
func (c *ResponseCache) Store(key Key, v interface{}) ([]byte, error) {
	body, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode cached response: %w", err)
	}
	c.Set(key, body)
	return body, nil
}

// InvalidatePrefix drops every entry whose path is dir, an ancestor of dir
// or a descendant of dir, and returns how many were removed.
func (c *ResponseCache) InvalidatePrefix(dir string) int {
	dir = filepath.Clean(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.keys {
		if paths.Related(filepath.Clean(key.Path), dir) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Clear empties the cache
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.keys = make(map[Key]struct{}, c.size)
}

// Len returns the number of stored entries, fresh or not
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns entries, hits, misses and evictions
func (c *ResponseCache) Stats() (entries int, hits, misses, evictions uint64) {
	return c.Len(), c.hits.Load(), c.misses.Load(), c.evictions.Load()
}
