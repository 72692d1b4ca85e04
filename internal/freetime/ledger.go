// Package freetime tracks free and busy minutes per calendar date.
package freetime

import (
	"time"
)

type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{year: y, month: m, day: d}
}

// minutes holds one flag per minute of a day: 1 free, 0 busy.
type minutes [MinutesPerDay]uint8

// Ledger is an in-memory map from calendar date to per-minute free flags.
// Dates are created on first access as entirely free. A Ledger is not safe
// for concurrent use.
type Ledger struct {
	days map[dateKey]*minutes
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{days: make(map[dateKey]*minutes)}
}

// Len returns the number of dates touched so far.
func (l *Ledger) Len() int {
	return len(l.days)
}

func (l *Ledger) day(t time.Time) *minutes {
	k := keyOf(t)
	d, ok := l.days[k]
	if !ok {
		d = new(minutes)
		for i := range d {
			d[i] = 1
		}
		l.days[k] = d
	}
	return d
}

// SameDate reports whether a and b fall on the same calendar date, each in
// its own location.
func SameDate(a, b time.Time) bool {
	return keyOf(a) == keyOf(b)
}

// MinuteIndex returns t's minute of the day.
func MinuteIndex(t time.Time) int {
	return t.Hour()*minutesPerHour + t.Minute()
}

// RegisterBusyTimeSlot marks [start, end) busy on start's date. Seconds are
// ignored. It panics with a CrossDateError if end falls on another date.
func (l *Ledger) RegisterBusyTimeSlot(start, end time.Time) {
	if !SameDate(start, end) {
		panic(CrossDateError{Start: start, End: end})
	}
	l.RegisterBusyMinutes(start, MinuteIndex(start), MinuteIndex(end))
}

// RegisterBusyMinutes marks the minute indexes [from, to) busy on date's
// date. It panics with a MinuteRangeError unless 0 <= from and to <= MinutesPerDay.
func (l *Ledger) RegisterBusyMinutes(date time.Time, from, to int) {
	if from < 0 || to > MinutesPerDay {
		panic(MinuteRangeError{From: from, To: to})
	}
	d := l.day(date)
	for i := from; i < to; i++ {
		d[i] = 0
	}
}

// IsFree reports whether the minute containing t is free.
func (l *Ledger) IsFree(t time.Time) bool {
	return l.day(t)[MinuteIndex(t)] == 1
}

// FreeMinutes counts the free minutes in [start, end).
//
// Only start's date is consulted: when end falls on a later date, every
// minute from 23:59 on start's date up to end is counted as free.
func (l *Ledger) FreeMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	if SameDate(start, end) {
		d := l.day(start)
		free := 0
		for i := MinuteIndex(start); i < MinuteIndex(end); i++ {
			free += int(d[i])
		}
		return free
	}
	y, m, dd := start.Date()
	boundary := time.Date(y, m, dd, 23, 59, 0, 0, start.Location())
	return l.FreeMinutes(start, boundary) + ElapsedMinutes(boundary, end)
}

// BusyMinutes counts the busy minutes in [start, end).
func (l *Ledger) BusyMinutes(start, end time.Time) int {
	return ElapsedMinutes(start, end) - l.FreeMinutes(start, end)
}

// ElapsedMinutes returns the number of whole minutes between start and end,
// or 0 if end precedes start. Within one date it is the difference of the
// minute indexes.
func ElapsedMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	if SameDate(start, end) {
		return MinuteIndex(end) - MinuteIndex(start)
	}
	return int(end.Truncate(time.Minute).Sub(start.Truncate(time.Minute)) / time.Minute)
}

// Apply projects tpl onto the seven dates starting at now's date, registering
// each slot once per matching date.
func (l *Ledger) Apply(tpl WeeklyTemplate, now time.Time) {
	y, m, d := now.Date()
	for offset := range 7 {
		date := time.Date(y, m, d+offset, 0, 0, 0, 0, now.Location())
		day, ok := tpl[date.Weekday()]
		if !ok {
			continue
		}
		for _, s := range day.Slots {
			l.RegisterBusyMinutes(date, s.StartIndex(), s.EndIndex())
		}
	}
}

// LoadBusyTimeSlotsFromFile parses the weekly template at path and projects it
// onto the week starting at now. Nothing is registered if the template is invalid.
func (l *Ledger) LoadBusyTimeSlotsFromFile(path string, now time.Time) (WeeklyTemplate, error) {
	tpl, err := LoadTemplateFile(path)
	if err != nil {
		return nil, err
	}
	l.Apply(tpl, now)
	return tpl, nil
}

// LoadBusyTimeSlotsFromString is LoadBusyTimeSlotsFromFile for an in-memory template.
func (l *Ledger) LoadBusyTimeSlotsFromString(s string, now time.Time) (WeeklyTemplate, error) {
	tpl, err := ParseTemplate([]byte(s))
	if err != nil {
		return nil, TemplateError{Source: "<string>", Err: err}
	}
	l.Apply(tpl, now)
	return tpl, nil
}
