package providers

import (
	"strings"

	"github.com/evanchen13/wb-sustainability/internal/structures"
)

// Key kinds reported as the "kind" label of the cache counters.
const (
	CacheKindDataset = "dataset"
	CacheKindFigures = "figures"
	CacheKindChart   = "chart"
	cacheKindOther   = "other"
)

// cacheKind maps "figures:<version>" or "chart:<version>:<id>:<format>" to
// its prefix; unknown prefixes share one label.
func cacheKind(key string) string {
	prefix, _, _ := strings.Cut(key, ":")
	switch prefix {
	case CacheKindDataset, CacheKindFigures, CacheKindChart:
		return prefix
	default:
		return cacheKindOther
	}
}

// MetricsCacheProvider counts hits and misses per key kind, so a dataset
// refetch shows apart from a chart re-render. Stats come from the wrapped cache.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheKind(key))
	} else {
		c.metrics.IncCacheMisses(cacheKind(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *MetricsCacheProvider) Stats() CacheStats {
	return c.inner.Stats()
}

// NewInstrumentedCacheProvider wraps the freecache provider with per-kind
// counters. A disabled cache is returned unwrapped so it does not report misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
