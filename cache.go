package jsscope

import (
	"bytes"
	"log/slog"
	"sync/atomic"

	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru"

	"github.com/jsscope/jsscope/internal/parser"
	"github.com/jsscope/jsscope/internal/types"
	"github.com/jsscope/jsscope/js"
)

// DefaultCacheSize is the number of parsed files a Cache holds when
// NewCache is given a non-positive size.
const DefaultCacheSize = 1000

// Cache remembers the events and diagnostics of parsed modules, keyed by
// a hash of their content. It is safe for concurrent use.
//
// A hit replays the recorded diagnostics and then the recorded events, so
// a visitor that needs diagnostics interleaved with events should parse
// without a cache.
type Cache struct {
	entries *lru.Cache
	hash    func([]byte) uint64
	hits    atomic.Int64
	misses  atomic.Int64
}

// cacheEntry keeps the contents it was parsed from so that a hash
// collision is treated as a miss.
type cacheEntry struct {
	src     []byte
	rec     *js.Recorder
	outcome js.Outcome
}

// NewCache returns a Cache holding up to size modules.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, hash: hashContents}, nil
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Stats returns the number of lookups that hit and missed.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func hashContents(contents []byte) uint64 {
	return spooky.Hash64(contents)
}

func (c *Cache) parseModule(src []byte, v js.Visitor, parserLogger, cacheLogger *slog.Logger) js.Outcome {
	log := types.Logger{L: cacheLogger}
	key := c.hash(src)
	if value, ok := c.entries.Get(key); ok && bytes.Equal(value.(*cacheEntry).src, src) {
		c.hits.Add(1)
		entry := value.(*cacheEntry)
		log.Log(slog.LevelDebug, "cache hit",
			slog.Uint64("key", key),
			slog.Int("events", len(entry.rec.Events())))
		entry.rec.Replay(v)
		return entry.outcome
	}

	c.misses.Add(1)
	rec := &js.Recorder{}
	outcome := parser.New(src, js.Multi(rec, v), parserLogger).ParseModule()
	entry := &cacheEntry{src: bytes.Clone(src), rec: rec, outcome: outcome}
	if evicted := c.entries.Add(key, entry); evicted {
		log.Log(slog.LevelDebug, "cache eviction", slog.Int("size", c.entries.Len()))
	}
	log.Trace("cache store", slog.Uint64("key", key), slog.Int("bytes", len(src)))
	return outcome
}
