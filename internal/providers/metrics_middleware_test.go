package providers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestRoute string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(route string, status int) {
	m.requestRoute = route
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits(_ string)                            {}
func (m *mockMetrics) IncCacheMisses(_ string)                          {}
func (m *mockMetrics) ObserveFetchDuration(_ string, _ time.Duration)   {}
func (m *mockMetrics) IncFetchErrors(_ string)                          {}
func (m *mockMetrics) SetObservations(_ string, _ int)                  {}
func (m *mockMetrics) ObserveSnapshotDuration(_ time.Duration)          {}

type accessLine struct {
	level string
	typ   TypeEnum
}

type accessLogger struct {
	mu    sync.Mutex
	lines []accessLine
}

func (l *accessLogger) add(level string, t TypeEnum) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, accessLine{level, t})
}

func (l *accessLogger) Errorf(t TypeEnum, _ string, _ ...interface{}) { l.add("error", t) }
func (l *accessLogger) Warnf(t TypeEnum, _ string, _ ...interface{})  { l.add("warn", t) }
func (l *accessLogger) Debugf(t TypeEnum, _ string, _ ...interface{}) { l.add("debug", t) }
func (l *accessLogger) Infof(t TypeEnum, _ string, _ ...interface{})  { l.add("info", t) }
func (l *accessLogger) Fatalf(t TypeEnum, _ string, _ ...interface{}) { l.add("fatal", t) }
func (l *accessLogger) Close()                                        {}

func TestRequestMiddleware_CapturesStatusAndPattern(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &accessLogger{}

	mux := http.NewServeMux()
	mux.HandleFunc("/charts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mw := RequestMiddleware(metrics, logger, mux)

	req := httptest.NewRequest(http.MethodGet, "/charts/co2-top", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/charts/{id}", metrics.requestRoute)
	assert.Equal(t, http.StatusNotFound, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
	assert.Equal(t, []accessLine{{"debug", TypeGet}}, logger.lines)
}

func TestRequestMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := RequestMiddleware(metrics, &accessLogger{}, handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
	assert.Equal(t, "unmatched", metrics.requestRoute)
}

func TestRequestMiddleware_LogsServerErrorsAsWarnings(t *testing.T) {
	logger := &accessLogger{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream", http.StatusBadGateway)
	})

	mw := RequestMiddleware(&mockMetrics{}, logger, handler)
	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, []accessLine{{"warn", TypePost}}, logger.lines)
}

func TestStatusWriter_TracksStatusAndBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusBadGateway)
	_, _ = sw.Write([]byte("unavailable"))
	assert.Equal(t, http.StatusBadGateway, sw.status)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, len("unavailable"), sw.bytes)
}
