package calendar

import (
	"context"
	"time"

	"github.com/fleetdesk/driver-portal/models"
)

// AvailabilityStore is the persistence boundary for availability blocks.
// QueryRange is inclusive on both dates.
type AvailabilityStore interface {
	QueryRange(ctx context.Context, driverID uint, from, to time.Time) ([]models.AvailabilityBlock, error)
	Create(ctx context.Context, driverID uint, date time.Time, startTime, endTime string, available bool, note string) (*models.AvailabilityBlock, error)
}

// DriverProfileStore is the read-only source of a driver's recurring
// working pattern. The calendar never writes it.
type DriverProfileStore interface {
	WorkingPattern(ctx context.Context, driverID uint) (*models.WorkingPattern, error)
}
