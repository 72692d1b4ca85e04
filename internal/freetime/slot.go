package freetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	// MinutesPerDay is the number of minute flags kept for each date.
	MinutesPerDay = 24 * minutesPerHour

	defaultEndOfDayHour   = 23
	defaultEndOfDayMinute = 59
)

// BusyTimeSlot is a recurring busy interval within one day.
type BusyTimeSlot struct {
	StartHour   int
	StartMinute int
	Duration    int // minutes
	Label       string
}

// StartIndex returns the minute-of-day the slot starts at.
func (s BusyTimeSlot) StartIndex() int {
	return s.StartHour*minutesPerHour + s.StartMinute
}

// EndIndex returns the minute-of-day just past the slot.
func (s BusyTimeSlot) EndIndex() int {
	return s.StartIndex() + s.Duration
}

func (s BusyTimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d+%dm %s", s.StartHour, s.StartMinute, s.Duration, s.Label)
}

// DayTemplate holds the busy slots recurring on one weekday.
type DayTemplate struct {
	Weekday        time.Weekday
	EndOfDayHour   int
	EndOfDayMinute int
	Slots          []BusyTimeSlot
}

// WeeklyTemplate maps each configured weekday to its busy slots.
type WeeklyTemplate map[time.Weekday]DayTemplate

// EndOfDay returns the configured end of the working day on date's date,
// defaulting to 23:59 for weekdays without an entry.
func (w WeeklyTemplate) EndOfDay(date time.Time) time.Time {
	hour, minute := defaultEndOfDayHour, defaultEndOfDayMinute
	if d, ok := w[date.Weekday()]; ok {
		hour, minute = d.EndOfDayHour, d.EndOfDayMinute
	}
	y, m, dd := date.Date()
	return time.Date(y, m, dd, hour, minute, 0, 0, date.Location())
}

// ParseWeekday parses a weekday name such as "Mon" or "monday".
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, UnknownWeekdayError{Value: s}
}

// parseClock parses a strict "HH:MM" time of day.
func parseClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("invalid start time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid start hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid start minute in %q", s)
	}
	return hour, minute, nil
}
