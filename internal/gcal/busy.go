package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/abatilo/nextup/internal/freetime"
)

// EventTimeError indicates an event whose timestamps could not be used.
type EventTimeError struct {
	EventID string
	Reason  string
}

func (e EventTimeError) Error() string {
	return fmt.Sprintf("event %s: %s", e.EventID, e.Reason)
}

type span struct {
	start time.Time
	end   time.Time
}

// RegisterEvents marks every timed, opaque, non-cancelled event busy in l,
// splitting events that cross midnight (in loc) into one piece per date.
// All-day events are skipped. Every event is validated before anything is
// registered. It returns the number of events registered.
func RegisterEvents(l *freetime.Ledger, events []*calendar.Event, loc *time.Location) (int, error) {
	var spans []span
	for _, ev := range events {
		if !blocksTime(ev) {
			continue
		}
		s, err := eventSpan(ev, loc)
		if err != nil {
			return 0, err
		}
		spans = append(spans, s)
	}
	for _, s := range spans {
		registerSpan(l, s.start, s.end)
	}
	return len(spans), nil
}

func blocksTime(ev *calendar.Event) bool {
	if ev == nil || ev.Status == "cancelled" || ev.Transparency == "transparent" {
		return false
	}
	return ev.Start != nil && ev.Start.DateTime != ""
}

func eventSpan(ev *calendar.Event, loc *time.Location) (span, error) {
	if ev.End == nil || ev.End.DateTime == "" {
		return span{}, EventTimeError{EventID: ev.Id, Reason: "missing end time"}
	}
	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return span{}, EventTimeError{EventID: ev.Id, Reason: "invalid start: " + err.Error()}
	}
	end, err := time.Parse(time.RFC3339, ev.End.DateTime)
	if err != nil {
		return span{}, EventTimeError{EventID: ev.Id, Reason: "invalid end: " + err.Error()}
	}
	if end.Before(start) {
		return span{}, EventTimeError{EventID: ev.Id, Reason: "ends before it starts"}
	}
	return span{start: start.In(loc), end: end.In(loc)}, nil
}

// registerSpan registers [start, end) one date at a time.
func registerSpan(l *freetime.Ledger, start, end time.Time) {
	for start.Before(end) {
		y, m, d := start.Date()
		midnight := time.Date(y, m, d+1, 0, 0, 0, 0, start.Location())
		if freetime.SameDate(start, end) {
			l.RegisterBusyTimeSlot(start, end)
			return
		}
		l.RegisterBusyMinutes(start, freetime.MinuteIndex(start), freetime.MinutesPerDay)
		start = midnight
	}
}
