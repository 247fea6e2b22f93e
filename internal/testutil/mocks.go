package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns the number of recorded entries of a level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	FetchCalls    map[string]int
	FetchErrors   map[string]int
	Observations  map[string]int
	SnapshotCalls int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		FetchCalls:   make(map[string]int),
		FetchErrors:  make(map[string]int),
		Observations: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObserveFetchDuration(indicator string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls[indicator]++
}
func (m *MockMetrics) IncFetchErrors(indicator string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors[indicator]++
}
func (m *MockMetrics) SetObservations(indicator string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Observations[indicator] = count
}
func (m *MockMetrics) ObserveSnapshotDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Stats() providers.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return providers.CacheStats{Enabled: true, Entries: int64(len(m.Data))}
}

// MockArchive implements store.ArchiveInterface.
type MockArchive struct {
	mu       sync.Mutex
	Saved    []*models.Dataset
	Archived int
	Err      error
}

func (m *MockArchive) SaveDataset(_ context.Context, d *models.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Saved = append(m.Saved, d)
	m.Archived += d.Renewable.Len() + d.CO2.Len()
	return nil
}

func (m *MockArchive) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Archived, m.Err
}

func (m *MockArchive) Close() error { return nil }

// MockCompressor implements snapshot.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockFetcher implements worldbank.FetcherInterface from canned series.
type MockFetcher struct {
	mu     sync.Mutex
	Series map[string]models.Series
	Err    error
	Calls  []string
}

func (m *MockFetcher) FetchIndicator(_ context.Context, indicatorID string) (models.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, indicatorID)
	if m.Err != nil {
		return models.Series{}, m.Err
	}
	s, ok := m.Series[indicatorID]
	if !ok {
		return models.Series{}, fmt.Errorf("no canned series for %s", indicatorID)
	}
	return s, nil
}

func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockDashboardService implements services.DashboardServiceInterface.
type MockDashboardService struct {
	mu           sync.Mutex
	Data         *models.Dataset
	FigureList   []models.Figure
	Span         models.YearSpan
	Err          error
	RefreshCalls int
	Restored     []*models.Dataset
}

func (m *MockDashboardService) Dataset(_ context.Context) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Data, m.Err
}

func (m *MockDashboardService) Figures(_ context.Context) ([]models.Figure, models.YearSpan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FigureList, m.Span, m.Err
}

func (m *MockDashboardService) Figure(_ context.Context, id string) (models.Figure, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.Figure{}, 0, m.Err
	}
	var version int64
	if m.Data != nil {
		version = m.Data.Version()
	}
	for _, f := range m.FigureList {
		if f.ID == id {
			return f, version, nil
		}
	}
	return models.Figure{}, 0, fmt.Errorf("%w: %s", charts.ErrUnknownFigure, id)
}

func (m *MockDashboardService) Table(_ context.Context) (*models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Data == nil {
		return &models.Table{}, nil
	}
	return m.Data.Table(), nil
}

func (m *MockDashboardService) Refresh(_ context.Context) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshCalls++
	return m.Data, m.Err
}

func (m *MockDashboardService) Restore(d *models.Dataset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Restored = append(m.Restored, d)
	m.Data = d
}

func (m *MockDashboardService) Current() *models.Dataset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Data
}
