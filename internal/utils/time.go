package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
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

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// DayIndex returns the weekday of t as an index into a Sunday-first week.
func DayIndex(t time.Time) int {
	return int(t.Weekday())
}

// DateKey returns the calendar date of t (YYYY-MM-DD) in t's location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// MinutesOfDay returns the minutes elapsed since local midnight, including
// the fractional part for seconds.
func MinutesOfDay(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}

// ParseDue parses a due date given either as a date (YYYY-MM-DD, midnight),
// a date and time (YYYY-MM-DD HH:MM) or an RFC 3339 timestamp. Dates without
// a zone are interpreted in loc.
func ParseDue(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, value, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)", value)
	}
	return t, nil
}

// FormatDuration renders a second count as "1h 25m" or "25m".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
