package internal

import (
	"net/http"
	"rankwatch/internal/controllers"
	"rankwatch/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/rank", http.HandlerFunc(apiController.GetRank))
	routers.Post("/run", http.HandlerFunc(apiController.Run))
	routers.Get("/backup", http.HandlerFunc(apiController.GetBackup))
	return routers
}
