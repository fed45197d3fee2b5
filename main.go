package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/fleetdesk/driver-portal/cron"

	"github.com/fleetdesk/driver-portal/db"

	"github.com/fleetdesk/driver-portal/redis"

	"github.com/fleetdesk/driver-portal/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Driver portal up")
	})
	routes.SetupAvailabilityRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
