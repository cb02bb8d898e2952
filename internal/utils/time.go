package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/ascend-app/ascend/internal/constants"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// This ensures that "today" is determined by the user's configured timezone, not the system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

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

// ParseTime parses a time string in the standard format (HH:MM).
// time.Parse alone accepts single-digit hours, so the length is checked
// first to hold the zero-padded contract.
func ParseTime(timeStr string) (time.Time, error) {
	if len(timeStr) != len(constants.TimeFormat) {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", timeStr)
	}
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDay parses a date string (YYYY-MM-DD) in the specified timezone,
// returning midnight of that day.
func ParseDay(dayStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dayStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatDay formats a time as a date string (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// AddDays shifts a date string by n calendar days.
func AddDays(dayStr string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, dayStr)
	if err != nil {
		return "", fmt.Errorf("invalid date format: %w", err)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the whole-day difference to - from between two date
// strings. Date-based arithmetic with explicit rounding avoids DST issues.
func DaysBetween(fromDay, toDay string) (int, error) {
	from, err := time.Parse(constants.DateFormat, fromDay)
	if err != nil {
		return 0, fmt.Errorf("invalid date format %q: %w", fromDay, err)
	}
	to, err := time.Parse(constants.DateFormat, toDay)
	if err != nil {
		return 0, fmt.Errorf("invalid date format %q: %w", toDay, err)
	}
	return int(math.Round(to.Sub(from).Hours() / 24)), nil
}

// CombineDayAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the specified timezone, with zero seconds.
func CombineDayAndTime(dayStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dayStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDayFormat checks if the string matches the standard date format.
func ValidateDayFormat(dayStr string) bool {
	_, err := time.Parse(constants.DateFormat, dayStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
