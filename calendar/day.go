package calendar

import (
	"time"

	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/utils"
)

// DayStatus is the resolved availability of one date in a week.
type DayStatus string

const (
	StatusAvailable  DayStatus = "available"
	StatusBlocked    DayStatus = "blocked"
	StatusNotWorking DayStatus = "not_working"
)

// DayAvailability is the per-day view the calendar renders: the pattern's
// verdict for the weekday plus any block-out records on that exact date.
type DayAvailability struct {
	Date         time.Time
	Weekday      string
	IsWorkingDay bool
	IsToday      bool
	StartTime    *string // pattern hours, nil when the pattern has none
	EndTime      *string
	Blocks       []models.AvailabilityBlock // block-outs (Available == false) on this date
	Status       DayStatus
}

// resolveDay merges the working pattern with the loaded blocks for one date.
// Blocks on other dates are filtered out here even if the caller hands over
// a stale collection, and Available = true records never count toward
// BLOCKED.
func resolveDay(pattern *models.WorkingPattern, blocks []models.AvailabilityBlock, date, now time.Time) DayAvailability {
	day := DayAvailability{
		Date:    utils.DateOnly(date),
		Weekday: utils.WeekdayName(date),
		IsToday: utils.SameDate(date, now),
	}
	day.IsWorkingDay = pattern.IsWorkingDay(day.Weekday)
	if day.IsWorkingDay && pattern.HasHours() {
		day.StartTime = pattern.StartTime
		day.EndTime = pattern.EndTime
	}
	for _, b := range blocks {
		if b.Available || !utils.SameDate(b.Date, date) {
			continue
		}
		day.Blocks = append(day.Blocks, b)
	}
	switch {
	case day.IsWorkingDay && len(day.Blocks) > 0:
		day.Status = StatusBlocked
	case day.IsWorkingDay:
		day.Status = StatusAvailable
	default:
		day.Status = StatusNotWorking
	}
	return day
}
