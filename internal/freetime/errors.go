package freetime

import (
	"fmt"
	"time"
)

// CrossDateError indicates a busy slot whose start and end fall on different dates.
type CrossDateError struct {
	Start time.Time
	End   time.Time
}

func (e CrossDateError) Error() string {
	return fmt.Sprintf("busy slot %s - %s crosses midnight",
		e.Start.Format(time.DateTime), e.End.Format(time.DateTime))
}

// MinuteRangeError indicates minute indexes outside a single day.
type MinuteRangeError struct {
	From int
	To   int
}

func (e MinuteRangeError) Error() string {
	return fmt.Sprintf("minute range [%d, %d) is outside [0, %d]", e.From, e.To, MinutesPerDay)
}

// UnknownWeekdayError indicates a weekday name that could not be parsed.
type UnknownWeekdayError struct {
	Value string
}

func (e UnknownWeekdayError) Error() string {
	return fmt.Sprintf("unknown weekday: %q (valid: Mon, Tue, Wed, Thu, Fri, Sat, Sun)", e.Value)
}

// MissingFieldError indicates a busy interval without a required field.
type MissingFieldError struct {
	Weekday string
	Slot    int
	Field   string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("%s busy[%d]: missing required field %q", e.Weekday, e.Slot, e.Field)
}

// TemplateError wraps any failure to load a weekly busy template.
type TemplateError struct {
	Source string
	Err    error
}

func (e TemplateError) Error() string {
	return fmt.Sprintf("busy template %s: %v", e.Source, e.Err)
}

func (e TemplateError) Unwrap() error {
	return e.Err
}
