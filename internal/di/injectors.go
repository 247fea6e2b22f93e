//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"github.com/evanchen13/wb-sustainability/internal"
	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/controllers"
	"github.com/evanchen13/wb-sustainability/internal/mcpserver"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/evanchen13/wb-sustainability/internal/snapshot"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/evanchen13/wb-sustainability/internal/worldbank"
	"github.com/mark3labs/mcp-go/server"
)

var dashboardSet = wire.NewSet(
	provideLogger,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	providers.NewHttpClientProvider,
	worldbank.NewClient,
	provideFetcher,
	charts.NewBuilder,
	provideArchive,
	provideArchiver,
	services.NewDashboardService,
)

func InitApp(conf *structures.Config) (*internal.App, func(), error) {

	wire.Build(
		dashboardSet,
		charts.NewRenderer,
		provideCompressor,
		snapshot.NewFileManager,
		snapshot.NewScheduler,
		controllers.NewApiController,
		controllers.NewDashboardController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitMCPServer(conf *structures.Config) (*server.MCPServer, func(), error) {

	wire.Build(dashboardSet, mcpserver.NewMCPServer)

	return nil, nil, nil
}

func InitDashboardService(conf *structures.Config) (services.DashboardServiceInterface, func(), error) {

	wire.Build(dashboardSet)

	return nil, nil, nil
}
