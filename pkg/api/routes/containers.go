package routes

import (
	"time"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/gofiber/fiber/v2"
)

// ContainerRoute serves one tracking record plus its derived state.
func ContainerRoute(trackingStore *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		containerNo := c.Params("containerno")

		record, err := trackingStore.FindRecord(c.Context(), containerNo)
		if err != nil {
			return err
		}
		if record == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Could not find a tracking record matching the container number",
			})
		}

		now := time.Now()

		return c.JSON(fiber.Map{
			"record": record,
			"derived": fiber.Map{
				"active":       record.Active(),
				"dueForUpdate": record.DueForUpdate(now),
				"delivered": fiber.Map{
					string(freight.ClosePolicyAllActual):  record.FullyActualized(freight.ClosePolicyAllActual),
					string(freight.ClosePolicyLastActual): record.FullyActualized(freight.ClosePolicyLastActual),
				},
			},
		})
	}
}
