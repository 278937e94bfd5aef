// Package imagecache turns remote images into inline data URLs and keeps a
// bounded number of them in memory.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/golang/groupcache/lru"

	"github.com/pautahq/pauta/internal/i18n"
	debuglog "github.com/pautahq/pauta/internal/log"
)

// ErrNotImage is returned when fetched content does not sniff as an image.
var ErrNotImage = errors.New("content is not an image")

// Cache maps image sources to data URLs. Least recently used entries are
// evicted once Capacity is reached. It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  *lru.Cache
	fetcher  Fetcher
	capacity int

	hits   uint64
	misses uint64
}

// New creates a cache holding at most capacity entries. Capacities below 1
// are raised to 1.
func New(capacity int, fetcher Fetcher) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	if fetcher == nil {
		fetcher = NewHTTPFetcher()
	}
	c := &Cache{entries: lru.New(capacity), fetcher: fetcher, capacity: capacity}
	c.entries.OnEvicted = func(key lru.Key, _ interface{}) {
		debuglog.Debug(debuglog.Trace, "imagecache: evicted %v\n", key)
	}
	return c
}

// Key is the cache key for a source.
func Key(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Encode builds a data URL from image bytes.
func Encode(content []byte) (string, error) {
	mime := mimetype.Detect(content)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}

// DataURL returns the inline form of src, fetching it on a miss. Sources
// that already are data URLs are returned unchanged.
func (c *Cache) DataURL(ctx context.Context, src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", fmt.Errorf("%s", i18n.T("imagecache_error_empty_source"))
	}
	if strings.HasPrefix(src, "data:") {
		return src, nil
	}

	key := Key(src)
	if v, ok := c.get(key); ok {
		return v, nil
	}

	content, err := c.fetcher.Fetch(ctx, src)
	if err != nil {
		return "", err
	}
	dataURL, err := Encode(content)
	if err != nil {
		return "", fmt.Errorf(i18n.T("imagecache_error_encode"), src, err)
	}

	c.mu.Lock()
	c.entries.Add(key, dataURL)
	c.mu.Unlock()
	debuglog.Debug(debuglog.Detailed, "imagecache: stored %s (%d bytes)\n", key[:12], len(content))
	return dataURL, nil
}

func (c *Cache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries.Get(key)
	if !ok {
		c.misses++
		return "", false
	}
	c.hits++
	return v.(string), true
}

// Forget drops a source from the cache.
func (c *Cache) Forget(src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Remove(Key(src))
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats reports hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
