package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionStart combines a booking's ISO date string and 12-hour clock time
// ("hh:mm AM/PM") into the session's start instant. No timezone is stored
// with bookings; everything is interpreted in the process's local zone, as
// the front end expects.
func SessionStart(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	hours, minutes, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, loc), nil
}

// parseClock normalizes "hh:mm AM/PM" to 24-hour values: PM adds 12 unless
// the hour is 12, and 12 AM becomes 0.
func parseClock(clock string) (int, int, error) {
	parts := strings.Fields(clock)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want \"hh:mm AM/PM\"", clock)
	}

	period := strings.ToUpper(parts[1])
	if period != "AM" && period != "PM" {
		return 0, 0, fmt.Errorf("invalid time %q: unknown period %q", clock, parts[1])
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want \"hh:mm AM/PM\"", clock)
	}

	hours, err := strconv.Atoi(hm[0])
	if err != nil || hours < 1 || hours > 12 {
		return 0, 0, fmt.Errorf("invalid time %q: bad hour", clock)
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: bad minute", clock)
	}

	if period == "PM" && hours != 12 {
		hours += 12
	}
	if period == "AM" && hours == 12 {
		hours = 0
	}
	return hours, minutes, nil
}
