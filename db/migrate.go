package db

import (
	"fmt"
	"log"

	"github.com/fleetdesk/driver-portal/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Driver{},
		&models.WorkingPattern{},
		&models.AvailabilityBlock{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
