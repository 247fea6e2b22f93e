package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/controllers"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/snapshot/interfaces"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	scheduler interfaces.SchedulerInterface
	logger    providers.Logger
	conf      *structures.Config
}

func newMux(router providers.RouterProviderInterface, healthController *controllers.HealthController, metrics providers.MetricsProviderInterface, logger providers.Logger, metricsEnabled bool) *http.ServeMux {
	// Inner mux: dashboard routes
	apiMux := http.NewServeMux()
	router.Mount(apiMux)

	instrumentedAPI := providers.RequestMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented dashboard
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if metricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)
	return mux
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      newMux(router, healthController, metrics, logger, conf.Metrics.Enabled),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: conf.WorldBank.Timeout*2 + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		logger:    logger,
		conf:      conf,
	}
}

// Run restores the last snapshot, starts the scheduler and serves until ctx is
// done or SIGINT/SIGTERM arrives, then persists the dataset.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)
	if err := app.scheduler.Restore(); err != nil {
		app.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		app.scheduler.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := app.scheduler.Persist(); err != nil {
		return err
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
