package calendar

import (
	"time"

	"github.com/fleetdesk/driver-portal/utils"
)

// Direction is a week navigation step.
type Direction int

const (
	Prev Direction = iota
	Next
)

// WeekWindow is the Monday-aligned 7-day range the calendar displays.
type WeekWindow struct {
	Start time.Time // always a Monday
	End   time.Time // Start + 6 days
}

// NewWeek builds the window anchored on the given Monday. The input is
// snapped to its local calendar day first.
func NewWeek(monday time.Time) WeekWindow {
	start := utils.DateOnly(monday)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 6)}
}

// MondayOf rolls a date back to the Monday of its week. Sunday rolls back
// six days; any other day rolls back to the start of its Monday-first week.
func MondayOf(t time.Time) time.Time {
	d := utils.DateOnly(t)
	if d.Weekday() == time.Sunday {
		return d.AddDate(0, 0, -6)
	}
	return d.AddDate(0, 0, -(int(d.Weekday()) - 1))
}

// Day returns the date occupying slot index (0 = Monday .. 6 = Sunday).
func (w WeekWindow) Day(index int) time.Time {
	return w.Start.AddDate(0, 0, index)
}

// Contains reports whether a date falls inside the window, inclusive.
func (w WeekWindow) Contains(date time.Time) bool {
	d := utils.DateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Shift returns the window one week before or after this one.
func (w WeekWindow) Shift(dir Direction) WeekWindow {
	days := 7
	if dir == Prev {
		days = -7
	}
	return NewWeek(w.Start.AddDate(0, 0, days))
}
