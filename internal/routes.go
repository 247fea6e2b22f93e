package internal

import (
	"net/http"

	"github.com/evanchen13/wb-sustainability/internal/controllers"
	"github.com/evanchen13/wb-sustainability/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, dashboardController *controllers.DashboardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/{$}", http.HandlerFunc(dashboardController.Index))
	routers.Get("/api/figures", http.HandlerFunc(apiController.GetFigures))
	routers.Get("/api/table", http.HandlerFunc(apiController.GetTable))
	routers.Get("/charts/{id}", http.HandlerFunc(apiController.GetChart))
	return routers
}
