package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailabilityBlock is a date-specific exception to a driver's working
// pattern. Available = false blocks out part of a day ("time off");
// Available = true marks ad-hoc availability on a day the pattern does
// not cover. Blocks are immutable once created.
type AvailabilityBlock struct {
	gorm.Model
	DriverID  uint      `json:"driver_id" gorm:"index"`
	Driver    Driver    `json:"-" gorm:"foreignKey:DriverID"`
	Date      time.Time `json:"date" gorm:"type:date;index"`
	StartTime string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime   string    `json:"end_time"`   // Format "HH:MM" in 24h
	Available bool      `json:"available"`
	Note      string    `json:"note"`
}
