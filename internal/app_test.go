package internal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/controllers"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/evanchen13/wb-sustainability/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingScheduler struct {
	mu         sync.Mutex
	calls      []string
	restoreErr error
	persistErr error
}

func (s *recordingScheduler) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *recordingScheduler) Init()          { s.record("init") }
func (s *recordingScheduler) Stop()          { s.record("stop") }
func (s *recordingScheduler) Restore() error { s.record("restore"); return s.restoreErr }
func (s *recordingScheduler) Persist() error { s.record("persist"); return s.persistErr }

func (s *recordingScheduler) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newTestApp(t *testing.T, scheduler *recordingScheduler, logger *testutil.MockLogger) *App {
	t.Helper()
	conf := &structures.Config{
		AppName:   "test",
		WebServer: structures.Server{Host: "127.0.0.1", Port: 0},
		WorldBank: structures.WorldBankConfig{Timeout: time.Second},
	}
	conf.Dashboard = structures.DashboardConfig{Renderer: "gochart", ChartWidth: 320, ChartHeight: 240}
	svc := routeTestService()
	renderer := charts.NewRenderer(conf)
	router := InitRoutes(
		controllers.NewApiController(logger, svc, renderer, testutil.NewMockCache()),
		controllers.NewDashboardController(conf, logger, svc, renderer),
	)
	return NewApp(controllers.NewHealthController(svc, testutil.NewMockCache(), &testutil.MockArchive{}), scheduler, conf, logger, router, testutil.NewMockMetrics())
}

func runFor(app *App, d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return app.Run(ctx)
}

func TestApp_RunLifecycle(t *testing.T) {
	scheduler := &recordingScheduler{}
	app := newTestApp(t, scheduler, &testutil.MockLogger{})

	require.NoError(t, runFor(app, 100*time.Millisecond))
	assert.Equal(t, []string{"restore", "init", "stop", "persist"}, scheduler.Calls())
}

func TestApp_RestoreErrorIsLogged(t *testing.T) {
	scheduler := &recordingScheduler{restoreErr: errors.New("corrupt snapshot")}
	logger := &testutil.MockLogger{}
	app := newTestApp(t, scheduler, logger)

	require.NoError(t, runFor(app, 50*time.Millisecond))
	assert.Equal(t, 1, logger.Count("error"))
}

func TestApp_PersistErrorReturned(t *testing.T) {
	scheduler := &recordingScheduler{persistErr: errors.New("disk full")}
	app := newTestApp(t, scheduler, &testutil.MockLogger{})

	err := runFor(app, 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
