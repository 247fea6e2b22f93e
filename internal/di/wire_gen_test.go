package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/store"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indicatorPage = `[{"page":1,"pages":1,"per_page":50,"total":1},[
 {"indicator":{"id":"X","value":"X"},"country":{"id":"DE","value":"Germany"},"countryiso3code":"DEU","date":"2014","value":13.6}
]]`

func testConfig(t *testing.T, backend string) *structures.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(indicatorPage))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &structures.Config{
		AppName:     "test",
		WebServer:   structures.Server{Host: "127.0.0.1", Port: 8080},
		Persistence: structures.Persistence{FilePath: filepath.Join(dir, "snapshot.zst"), SaveInterval: time.Minute},
		Logger:      structures.LoggerConfig{Level: "info", Mode: 0o644, Dir: dir},
		WorldBank: structures.WorldBankConfig{
			BaseURL:           srv.URL,
			Timeout:           5 * time.Second,
			PerPage:           100,
			Countries:         []string{"all"},
			Indicators:        structures.IndicatorCodes{Renewable: "EG.FEC.RNEW.ZS", CO2: "EN.ATM.CO2E.PC"},
			ExcludedCountries: providers.DefaultExcludedCountries,
		},
		Dashboard: structures.DashboardConfig{
			TopEconomies: []string{"DEU"},
			TopN:         5,
			Renderer:     "gochart",
			ChartWidth:   320,
			ChartHeight:  240,
		},
		Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
		Store: structures.StoreConfig{Backend: backend, DSN: filepath.Join(dir, "archive.db")},
	}
}

func TestInitDashboardService(t *testing.T) {
	conf := testConfig(t, store.SQLiteBackend)
	svc, cleanup, err := InitDashboardService(conf)
	require.NoError(t, err)
	defer cleanup()

	d, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Renewable.Len())
	assert.Equal(t, 1, d.CO2.Len())

	_, span, err := svc.Figures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2014, span.End)

	logged, err := os.ReadFile(filepath.Join(conf.Logger.Dir, "app.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(logged), "sqlite"))
}

func TestInitDashboardService_BadStore(t *testing.T) {
	conf := testConfig(t, store.PostgreSQLBackend)
	conf.Store.DSN = "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"

	_, _, err := InitDashboardService(conf)
	assert.Error(t, err)
}

func TestInitApp(t *testing.T) {
	app, cleanup, err := InitApp(testConfig(t, store.NoneBackend))
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "127.0.0.1:8080", app.WebServer.Addr)
}

func TestInitMCPServer(t *testing.T) {
	s, cleanup, err := InitMCPServer(testConfig(t, store.NoneBackend))
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, s.GetTool("get_table"))
}

func TestInitApp_HealthReportsArchivedObservations(t *testing.T) {
	app, cleanup, err := InitApp(testConfig(t, store.SQLiteBackend))
	require.NoError(t, err)
	defer cleanup()

	rec := httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/table", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"archived_observations":2`)
}

func TestProvideCompressor_CleanupOwnsCompressor(t *testing.T) {
	c, cleanup, err := provideCompressor(testConfig(t, store.NoneBackend))
	require.NoError(t, err)

	packed, err := c.Compress([]byte(`{"renewable":[]}`))
	require.NoError(t, err)
	unpacked, err := c.Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, `{"renewable":[]}`, string(unpacked))

	assert.NotPanics(t, cleanup)
}
