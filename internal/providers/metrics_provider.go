package providers

import (
	"strconv"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsProviderInterface records the wbd_* series: dashboard requests,
// cache effectiveness, indicator downloads and snapshot writes.
type MetricsProviderInterface interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncCacheHits(kind string)
	IncCacheMisses(kind string)
	ObserveFetchDuration(indicator string, duration time.Duration)
	IncFetchErrors(indicator string)
	SetObservations(indicator string, count int)
	ObserveSnapshotDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	fetchErrors      *prometheus.CounterVec
	observations     *prometheus.GaugeVec
	snapshotDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, statusClass(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(kind string) {
	m.cacheHits.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncCacheMisses(kind string) {
	m.cacheMisses.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) ObserveFetchDuration(indicator string, duration time.Duration) {
	m.fetchDuration.WithLabelValues(indicator).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncFetchErrors(indicator string) {
	m.fetchErrors.WithLabelValues(indicator).Inc()
}

func (m *MetricsProvider) SetObservations(indicator string, count int) {
	m.observations.WithLabelValues(indicator).Set(float64(count))
}

func (m *MetricsProvider) ObserveSnapshotDuration(duration time.Duration) {
	m.snapshotDuration.Observe(duration.Seconds())
}

// statusClass collapses a status code into its class ("2xx", "5xx").
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// Page loads on a cold cache wait for both indicator downloads, so request
// buckets reach as far as the fetch buckets.
var (
	requestBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	fetchBuckets   = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60}
)

const namespace = "wbd"

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Dashboard HTTP requests by route pattern and status class",
		}, []string{"route", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Dashboard HTTP request latency by route pattern",
			Buckets:   requestBuckets,
		}, []string{"route"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache lookups served from cache by key kind (dataset, figures, chart)",
		}, []string{"kind"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache lookups that had to be computed by key kind (dataset, figures, chart)",
		}, []string{"kind"}),

		fetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "World Bank indicator download time, all pages included",
			Buckets:   fetchBuckets,
		}, []string{"indicator"}),

		fetchErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed World Bank indicator downloads",
		}, []string{"indicator"}),

		observations: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observations",
			Help:      "Observations kept from the last download of each indicator",
		}, []string{"indicator"}),

		snapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Time to encode and write the dataset snapshot",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObserveFetchDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) IncFetchErrors(_ string)                          {}
func (n *noopMetrics) SetObservations(_ string, _ int)                  {}
func (n *noopMetrics) ObserveSnapshotDuration(_ time.Duration)          {}
