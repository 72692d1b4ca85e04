package freetime

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type rawSlot struct {
	Start    *string `yaml:"start"`
	Duration *int    `yaml:"duration"`
	Label    *string `yaml:"label"`
}

type rawDay struct {
	Weekday        string    `yaml:"weekday"`
	EndOfDayHour   *int      `yaml:"end_of_day_hour"`
	EndOfDayMinute *int      `yaml:"end_of_day_minute"`
	Busy           []rawSlot `yaml:"busy"`
}

// ParseTemplate decodes and validates a weekly busy template. Any malformed
// entry fails the whole template.
func ParseTemplate(data []byte) (WeeklyTemplate, error) {
	var days []rawDay
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&days); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	tpl := make(WeeklyTemplate, len(days))
	for _, raw := range days {
		day, err := raw.validate()
		if err != nil {
			return nil, err
		}
		if _, dup := tpl[day.Weekday]; dup {
			return nil, fmt.Errorf("duplicate entry for %s", day.Weekday)
		}
		tpl[day.Weekday] = day
	}
	return tpl, nil
}

func (r rawDay) validate() (DayTemplate, error) {
	weekday, err := ParseWeekday(r.Weekday)
	if err != nil {
		return DayTemplate{}, err
	}
	day := DayTemplate{
		Weekday:        weekday,
		EndOfDayHour:   defaultEndOfDayHour,
		EndOfDayMinute: defaultEndOfDayMinute,
	}
	if r.EndOfDayHour != nil {
		day.EndOfDayHour = *r.EndOfDayHour
	}
	if r.EndOfDayMinute != nil {
		day.EndOfDayMinute = *r.EndOfDayMinute
	}
	if day.EndOfDayHour < 0 || day.EndOfDayHour > 23 || day.EndOfDayMinute < 0 || day.EndOfDayMinute > 59 {
		return DayTemplate{}, fmt.Errorf("%s: invalid end of day %02d:%02d",
			r.Weekday, day.EndOfDayHour, day.EndOfDayMinute)
	}

	for i, rs := range r.Busy {
		switch {
		case rs.Start == nil:
			return DayTemplate{}, MissingFieldError{Weekday: r.Weekday, Slot: i, Field: "start"}
		case rs.Duration == nil:
			return DayTemplate{}, MissingFieldError{Weekday: r.Weekday, Slot: i, Field: "duration"}
		case rs.Label == nil:
			return DayTemplate{}, MissingFieldError{Weekday: r.Weekday, Slot: i, Field: "label"}
		}
		hour, minute, err := parseClock(*rs.Start)
		if err != nil {
			return DayTemplate{}, fmt.Errorf("%s busy[%d]: %w", r.Weekday, i, err)
		}
		slot := BusyTimeSlot{StartHour: hour, StartMinute: minute, Duration: *rs.Duration, Label: *rs.Label}
		if slot.Duration <= 0 || slot.EndIndex() > MinutesPerDay {
			return DayTemplate{}, fmt.Errorf("%s busy[%d]: duration %d must be positive and end by midnight",
				r.Weekday, i, slot.Duration)
		}
		day.Slots = append(day.Slots, slot)
	}
	return day, nil
}

// LoadTemplateFile reads and parses a weekly busy template from disk.
func LoadTemplateFile(path string) (WeeklyTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, TemplateError{Source: path, Err: err}
	}
	tpl, err := ParseTemplate(data)
	if err != nil {
		return nil, TemplateError{Source: path, Err: err}
	}
	return tpl, nil
}
