package calendar

import (
	"fmt"
	"time"

	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/utils"
)

// CheckWindow decides whether a driver can be offered a job occupying
// [startTime, endTime) on the given date. The reason string explains a
// negative verdict.
//
// The window is workable when the weekday is in the pattern (or an
// Available = true block covers the whole window on a day the pattern does
// not), the pattern's daily hours contain it, and no block-out overlaps it.
func CheckWindow(pattern *models.WorkingPattern, blocks []models.AvailabilityBlock, date time.Time, startTime, endTime string) (bool, string, error) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return false, "", err
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return false, "", err
	}
	if !start.Before(end) {
		return false, "", fmt.Errorf("window end %s is not after start %s", endTime, startTime)
	}

	dayBlocks := make([]models.AvailabilityBlock, 0, len(blocks))
	for _, b := range blocks {
		if utils.SameDate(b.Date, date) {
			dayBlocks = append(dayBlocks, b)
		}
	}

	working := pattern.IsWorkingDay(utils.WeekdayName(date))
	if !working {
		if !coveredByAdHoc(dayBlocks, start, end) {
			return false, "not a working day", nil
		}
	} else if pattern.HasHours() {
		dayStart, err := utils.ParseClock(*pattern.StartTime)
		if err != nil {
			return false, "", fmt.Errorf("working pattern has invalid start time: %w", err)
		}
		dayEnd, err := utils.ParseClock(*pattern.EndTime)
		if err != nil {
			return false, "", fmt.Errorf("working pattern has invalid end time: %w", err)
		}
		if start.Before(dayStart) || end.After(dayEnd) {
			return false, "outside working hours", nil
		}
	}

	for _, b := range dayBlocks {
		if b.Available {
			continue
		}
		bStart, err := utils.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		bEnd, err := utils.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		// Overlap: block starts before the window ends and ends after it starts.
		if bStart.Before(end) && bEnd.After(start) {
			return false, "blocked out", nil
		}
	}
	return true, "", nil
}

// coveredByAdHoc reports whether Available = true blocks include the whole
// window. Ad-hoc availability is not stitched across records; a single
// block must cover it.
func coveredByAdHoc(blocks []models.AvailabilityBlock, start, end time.Time) bool {
	for _, b := range blocks {
		if !b.Available {
			continue
		}
		bStart, err := utils.ParseClock(b.StartTime)
		if err != nil {
			continue
		}
		bEnd, err := utils.ParseClock(b.EndTime)
		if err != nil {
			continue
		}
		if !bStart.After(start) && !bEnd.Before(end) {
			return true
		}
	}
	return false
}
