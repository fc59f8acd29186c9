package routes

import (
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/gofiber/fiber/v2"
)

// StatsRoute serves the aggregate counts the tracking home page
// renders.
func StatsRoute(trackingStore *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		active, err := trackingStore.CountActive(c.Context())
		if err != nil {
			return err
		}
		closed, err := trackingStore.CountClosed(c.Context())
		if err != nil {
			return err
		}
		ships, err := trackingStore.CountVessels(c.Context())
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"activeContainers": active,
			"closedContainers": closed,
			"ships":            ships,
		})
	}
}
