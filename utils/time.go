package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	ClockLayout = "15:04"      // "HH:MM" in 24h
	DateLayout  = "2006-01-02" // calendar date, no time component
)

// ParseClock parses a "HH:MM" time-of-day string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t, nil
}

// ParseDate parses a "YYYY-MM-DD" string as a local calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DateOnly strips the time-of-day component, keeping the local calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same local calendar day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekdayName returns the lower-case weekday name for a date ("monday" ... "sunday").
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsWeekdayName reports whether s is one of the seven weekday names,
// ignoring case.
func IsWeekdayName(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
