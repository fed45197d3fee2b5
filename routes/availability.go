package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetdesk/driver-portal/controllers"
)

// SetupAvailabilityRoutes configures all driver availability related routes
func SetupAvailabilityRoutes(app *fiber.App) {
	driver := app.Group("/drivers/:id")

	availability := driver.Group("/availability")
	availability.Get("/week", controllers.GetWeekView)
	availability.Get("/blocks", controllers.ListBlocks)
	availability.Post("/blocks", controllers.CreateBlock)
	availability.Get("/check", controllers.CheckAvailability)

	driver.Get("/working-pattern", controllers.GetWorkingPattern)
	driver.Put("/working-pattern", controllers.UpdateWorkingPattern)
}
