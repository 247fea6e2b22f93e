package providers

import (
	"unsafe"

	"github.com/coocood/freecache"
	"github.com/evanchen13/wb-sustainability/internal/structures"
)

// CacheProviderInterface stores rendered responses keyed by dataset version.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Stats() CacheStats
}

// CacheStats is the cache summary reported by the health endpoint.
type CacheStats struct {
	Enabled   bool    `json:"enabled"`
	Entries   int64   `json:"entries"`
	HitRate   float64 `json:"hit_rate"`
	Evictions int64   `json:"evictions"`
}

type CacheProvider struct {
	cache  *freecache.Cache
	ttl    int
	logger Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	ttl := max(int(conf.Cache.TTL.Seconds()), 1)

	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache:  freecache.NewCache(sizeBytes),
		ttl:    ttl,
		logger: logger,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// The result must only be read; freecache copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores value under key. Entries larger than a freecache segment
// allows are rejected and the next request recomputes them.
func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.cache.Set(unsafeStringToBytes(key), value, c.ttl); err != nil {
		c.logger.Debugf(TypeApp, "Cache rejected %s (%d bytes): %v", key, len(value), err)
	}
}

func (c *CacheProvider) Stats() CacheStats {
	return CacheStats{
		Enabled:   true,
		Entries:   c.cache.EntryCount(),
		HitRate:   c.cache.HitRate(),
		Evictions: c.cache.EvacuateCount() + c.cache.ExpiredCount(),
	}
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
func (n *noopCache) Stats() CacheStats           { return CacheStats{} }
