package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fleetdesk/driver-portal/calendar"
	"github.com/fleetdesk/driver-portal/models"
)

// AvailabilityRepo persists availability blocks in Postgres through GORM.
type AvailabilityRepo struct {
	db *gorm.DB
}

var _ calendar.AvailabilityStore = (*AvailabilityRepo)(nil)

func NewAvailabilityRepo(db *gorm.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

// QueryRange returns the driver's blocks with from <= date <= to, ordered
// by date then start time.
func (r *AvailabilityRepo) QueryRange(ctx context.Context, driverID uint, from, to time.Time) ([]models.AvailabilityBlock, error) {
	var blocks []models.AvailabilityBlock
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date BETWEEN ? AND ?", driverID, from, to).
		Order("date, start_time").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query availability blocks: %w", err)
	}
	return blocks, nil
}

// Create stores a new block and returns it with its assigned ID.
func (r *AvailabilityRepo) Create(ctx context.Context, driverID uint, date time.Time, startTime, endTime string, available bool, note string) (*models.AvailabilityBlock, error) {
	block := models.AvailabilityBlock{
		DriverID:  driverID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Available: available,
		Note:      note,
	}
	if err := r.db.WithContext(ctx).Create(&block).Error; err != nil {
		return nil, fmt.Errorf("failed to create availability block: %w", err)
	}
	return &block, nil
}

// DriverProfileRepo reads and updates driver working patterns.
type DriverProfileRepo struct {
	db *gorm.DB
}

var _ calendar.DriverProfileStore = (*DriverProfileRepo)(nil)

func NewDriverProfileRepo(db *gorm.DB) *DriverProfileRepo {
	return &DriverProfileRepo{db: db}
}

// WorkingPattern returns the driver's pattern. A driver without one gets an
// empty pattern back: every day resolves as not working until it is set up.
func (r *DriverProfileRepo) WorkingPattern(ctx context.Context, driverID uint) (*models.WorkingPattern, error) {
	var pattern models.WorkingPattern
	err := r.db.WithContext(ctx).Where("driver_id = ?", driverID).First(&pattern).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.WorkingPattern{DriverID: driverID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load working pattern: %w", err)
	}
	return &pattern, nil
}

// SavePattern upserts the driver's pattern. This is the profile update
// path; nothing in the calendar calls it.
func (r *DriverProfileRepo) SavePattern(ctx context.Context, pattern *models.WorkingPattern) error {
	var existing models.WorkingPattern
	err := r.db.WithContext(ctx).Where("driver_id = ?", pattern.DriverID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(pattern).Error; err != nil {
			return fmt.Errorf("failed to create working pattern: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load working pattern: %w", err)
	}
	existing.Days = pattern.Days
	existing.StartTime = pattern.StartTime
	existing.EndTime = pattern.EndTime
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update working pattern: %w", err)
	}
	*pattern = existing
	return nil
}
