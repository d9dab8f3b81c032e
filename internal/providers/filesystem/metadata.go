package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FileExplorer/internal/shared/paths"
)

// DefaultMetadataCacheSize is the default number of cached records.
const DefaultMetadataCacheSize = 1000

type metadataKey struct {
	path  string
	root  string
	depth int
}

// CacheStats is a point-in-time view of cache activity
type CacheStats struct {
	Entries   int    `json:"entries"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// MetadataCache is a bounded LRU of resolved records keyed by
// (normalized path, traversal root, depth). It is owned by the service and
// shared by all traversals.
type MetadataCache struct {
	capacity int

	mu   sync.Mutex
	lru  *lru.Cache
	keys map[metadataKey]struct{}

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	// set while put runs so only capacity evictions are counted
	adding bool
}

// NewMetadataCache creates a cache holding at most capacity records
func NewMetadataCache(capacity int) *MetadataCache {
	if capacity <= 0 {
		capacity = DefaultMetadataCacheSize
	}
	c := &MetadataCache{
		capacity: capacity,
		lru:      lru.New(capacity),
		keys:     make(map[metadataKey]struct{}, capacity),
	}
	c.lru.OnEvicted = func(key lru.Key, _ interface{}) {
		delete(c.keys, key.(metadataKey))
		if c.adding {
			c.evictions.Add(1)
		}
	}
	return c
}

func (c *MetadataCache) get(key metadataKey) (FileRecord, bool) {
	c.mu.Lock()
	v, ok := c.lru.Get(key)
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return FileRecord{}, false
	}
	c.hits.Add(1)
	return v.(FileRecord), true
}

func (c *MetadataCache) put(key metadataKey, rec FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adding = true
	c.lru.Add(key, rec)
	c.adding = false
	c.keys[key] = struct{}{}
}

// Invalidate drops every record whose path is at or beneath prefix and
// returns how many were removed.
func (c *MetadataCache) Invalidate(prefix string) int {
	prefix = filepath.Clean(prefix)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.keys {
		if paths.IsWithin(key.path, prefix) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Clear empties the cache
func (c *MetadataCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.keys = make(map[metadataKey]struct{}, c.capacity)
}

// Len returns the number of cached records
func (c *MetadataCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns cache counters
func (c *MetadataCache) Stats() CacheStats {
	return CacheStats{
		Entries:   c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Resolution is the outcome of resolving one path. Record is always usable;
// Kind and Err describe what was recovered while producing it.
type Resolution struct {
	Record FileRecord
	Kind   ErrorKind
	Err    error
}

// Resolver produces FileRecords for paths, memoizing successful results.
type Resolver struct {
	normalizer *Normalizer
	cache      *MetadataCache
	logger     *zap.Logger
	count      func(dir string) (int, error)
}

// NewResolver creates a resolver. A nil cache disables memoization.
func NewResolver(normalizer *Normalizer, cache *MetadataCache, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(HostStyle(), logger, 0)
	}
	return &Resolver{
		normalizer: normalizer,
		cache:      cache,
		logger:     logger,
		count:      countEntries,
	}
}

// Cache returns the resolver's metadata cache (may be nil)
func (r *Resolver) Cache() *MetadataCache {
	return r.cache
}

// Normalizer returns the resolver's path normalizer
func (r *Resolver) Normalizer() *Normalizer {
	return r.normalizer
}

// Resolve normalizes caller-supplied rawPath and root, then resolves them.
// Paths read back from the filesystem must go through ResolveCanonical
// instead, since decoding them again would corrupt names containing "%".
func (r *Resolver) Resolve(rawPath, root string, depth int) Resolution {
	return r.ResolveCanonical(r.normalizer.Normalize(rawPath), r.normalizer.Normalize(root), depth)
}

// ResolveCanonical stats p once and builds its record relative to base. Both
// paths must already be canonical. It never returns a bare error: stat
// failures yield a degraded record with IsDir false and neither Size nor
// ChildrenCount set; a directory whose entries cannot be counted keeps IsDir
// and has no ChildrenCount.
func (r *Resolver) ResolveCanonical(p, base string, depth int) Resolution {
	key := metadataKey{path: p, root: base, depth: depth}
	if r.cache != nil {
		if rec, ok := r.cache.get(key); ok {
			return Resolution{Record: rec}
		}
	}

	rec := FileRecord{
		Name:  filepath.Base(p),
		Path:  p,
		Depth: depth,
	}

	res := Resolution{}
	if rel, ok := paths.Rel(base, p); ok {
		rec.RelativePath = filepath.ToSlash(rel)
	} else {
		// legitimate when the anchor differs from the OS-canonical parent
		rec.RelativePath = rec.Name
		res.Kind = KindStructural
	}

	info, err := os.Stat(p)
	if err != nil {
		r.logger.Warn("stat failed, returning degraded record",
			zap.String("path", p),
			zap.Stringer("kind", KindTransient),
			zap.Error(err),
		)
		res.Record = rec
		res.Kind = KindTransient
		res.Err = err
		return res
	}

	rec.IsDir = info.IsDir()
	if rec.IsDir {
		n, err := r.count(p)
		if err != nil {
			r.logger.Warn("counting children failed",
				zap.String("path", p),
				zap.Stringer("kind", KindTransient),
				zap.Error(err),
			)
			res.Record = rec
			res.Kind = KindTransient
			res.Err = err
			return res
		}
		rec.ChildrenCount = intPtr(n)
	} else {
		rec.Size = int64Ptr(info.Size())
	}

	res.Record = rec
	if r.cache != nil {
		r.cache.put(key, rec)
	}
	return res
}

// countEntries returns the raw number of immediate entries; ignore rules do
// not apply to the count.
func countEntries(dir string) (int, error) {
	f, err := os.Open(dir)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	return len(names), err
}

// IsTransient reports whether err is a recoverable filesystem race or
// permission problem.
func IsTransient(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}
