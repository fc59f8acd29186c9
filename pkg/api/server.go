package api

import (
	"github.com/cargotrack/cargotrack/pkg/api/routes"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string, trackingStore *store.Store) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("/stats", routes.StatsRoute(trackingStore))
	webApp.Get("/containers/:containerno", routes.ContainerRoute(trackingStore))

	return webApp.Listen(listen)
}
