package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseDateTimeInLocation parses "YYYY-MM-DD HH:MM" or RFC 3339 input.
// RFC 3339 values keep their own offset; the short form is read in loc.
func ParseDateTimeInLocation(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(constants.DateTimeFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q (want %q or RFC 3339): %w", value, constants.DateTimeFormat, err)
	}
	return t, nil
}

// DayRange returns [start of the first day, start of the day after the last day).
func DayRange(start time.Time, days int) (time.Time, time.Time) {
	from := StartOfDay(start)
	return from, from.AddDate(0, 0, days)
}

// FormatHours renders a number of hours with one decimal, e.g. "3.5h".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
