package models

import (
	"strings"

	"gorm.io/gorm"
)

// WorkingPattern is a driver's default recurring weekly availability:
// the weekdays they work plus a single daily start/end time. It belongs
// to the driver profile and is only changed through a profile update.
type WorkingPattern struct {
	gorm.Model
	DriverID  uint    `json:"driver_id" gorm:"uniqueIndex"`
	Driver    Driver  `json:"-" gorm:"foreignKey:DriverID"`
	Days      string  `json:"-" gorm:"column:working_days"` // comma separated lower-case weekday names
	StartTime *string `json:"start_time"`                   // Format "HH:MM" in 24h, optional as a pair
	EndTime   *string `json:"end_time"`
}

// WorkingDays returns the weekday names the driver works, lower-cased.
// An empty slice means the driver has not set up a pattern yet.
func (p *WorkingPattern) WorkingDays() []string {
	if p == nil || strings.TrimSpace(p.Days) == "" {
		return nil
	}
	parts := strings.Split(p.Days, ",")
	days := make([]string, 0, len(parts))
	for _, part := range parts {
		day := strings.ToLower(strings.TrimSpace(part))
		if day != "" {
			days = append(days, day)
		}
	}
	return days
}

// SetWorkingDays stores the given weekday names, lower-cased and de-duplicated.
func (p *WorkingPattern) SetWorkingDays(days []string) {
	seen := make(map[string]bool, len(days))
	cleaned := make([]string, 0, len(days))
	for _, day := range days {
		d := strings.ToLower(strings.TrimSpace(day))
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		cleaned = append(cleaned, d)
	}
	p.Days = strings.Join(cleaned, ",")
}

// IsWorkingDay reports whether the given weekday name is part of the
// pattern. Matching is case-insensitive on both sides.
func (p *WorkingPattern) IsWorkingDay(weekday string) bool {
	want := strings.ToLower(strings.TrimSpace(weekday))
	for _, day := range p.WorkingDays() {
		if day == want {
			return true
		}
	}
	return false
}

// HasHours reports whether the pattern carries a daily time range. Either
// both times are set or hours are treated as unspecified.
func (p *WorkingPattern) HasHours() bool {
	return p != nil && p.StartTime != nil && p.EndTime != nil
}
