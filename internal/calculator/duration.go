package calculator

import (
	"fmt"
	"strings"
	"time"
)

// ClockLayout is the time-of-day format attendance records are stored in.
const ClockLayout = "15:04:05"

// ParseClock parses an HH:MM:SS time of day.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("time", fmt.Sprintf("%q is not HH:MM:SS", s))
	}
	return t, nil
}

// DurationHours returns end − start in hours, rounded to 2 decimals.
// Only the time of day of each argument is used. An end before the start
// returns ErrInvalidInput: intervals crossing midnight are not supported.
func DurationHours(start, end time.Time) (float64, error) {
	from, to := sinceMidnight(start), sinceMidnight(end)
	if to < from {
		return 0, invalid("end time", fmt.Sprintf("%s is before start time %s", end.Format(ClockLayout), start.Format(ClockLayout)))
	}
	return Round2((to - from).Hours()), nil
}

// WorkedHours parses check-in and check-out clock strings and returns the
// hours between them.
func WorkedHours(checkIn, checkOut string) (float64, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	return DurationHours(in, out)
}

func sinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}
