//nolint:testpackage // Tests require internal access for thorough testing
package freetime

import (
	"errors"
	"testing"
	"time"
)

func at(day, hour, minute, sec int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, sec, 0, time.UTC)
}

func TestUnseenDateIsFree(t *testing.T) {
	l := NewLedger()
	if got := l.FreeMinutes(at(4, 0, 0, 0), at(4, 10, 0, 0)); got != 600 {
		t.Errorf("FreeMinutes = %d, want 600", got)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1 after first access", l.Len())
	}
	if !l.IsFree(at(9, 12, 0, 0)) {
		t.Error("IsFree on an unseen date should be true")
	}
}

func TestRegisterBusyTimeSlot(t *testing.T) {
	// Scenario C: busy 13:00-14:00, query the whole day.
	l := NewLedger()
	l.RegisterBusyTimeSlot(at(4, 13, 0, 0), at(4, 14, 0, 0))

	if got := l.FreeMinutes(at(4, 0, 0, 0), at(4, 23, 59, 59)); got != 1379 {
		t.Errorf("FreeMinutes = %d, want 1379", got)
	}
	if got := l.BusyMinutes(at(4, 0, 0, 0), at(4, 23, 59, 59)); got != 60 {
		t.Errorf("BusyMinutes = %d, want 60", got)
	}
	if l.IsFree(at(4, 13, 0, 0)) || l.IsFree(at(4, 13, 59, 0)) {
		t.Error("13:00 and 13:59 should be busy")
	}
	if !l.IsFree(at(4, 14, 0, 0)) || !l.IsFree(at(4, 12, 59, 0)) {
		t.Error("Range must be half-open")
	}
	if !l.IsFree(at(5, 13, 30, 0)) {
		t.Error("Other dates must be unaffected")
	}
}

func TestRegisterBusyTimeSlotCrossDatePanics(t *testing.T) {
	l := NewLedger()
	defer func() {
		r := recover()
		err, ok := r.(error)
		var cross CrossDateError
		if !ok || !errors.As(err, &cross) {
			t.Fatalf("panic = %v, want CrossDateError", r)
		}
		if l.Len() != 0 {
			t.Errorf("Len = %d, want 0 after rejected registration", l.Len())
		}
	}()
	l.RegisterBusyTimeSlot(at(4, 23, 0, 0), at(5, 1, 0, 0))
}

func TestRegisterBusyMinutesRangePanics(t *testing.T) {
	l := NewLedger()
	defer func() {
		if _, ok := recover().(MinuteRangeError); !ok {
			t.Fatal("Expected MinuteRangeError panic")
		}
	}()
	l.RegisterBusyMinutes(at(4, 0, 0, 0), 10, MinutesPerDay+1)
}

func TestBusyPlusFreeEqualsElapsed(t *testing.T) {
	l := NewLedger()
	l.RegisterBusyTimeSlot(at(4, 9, 0, 0), at(4, 10, 30, 0))
	l.RegisterBusyTimeSlot(at(4, 10, 0, 0), at(4, 11, 0, 0))
	l.RegisterBusyTimeSlot(at(4, 22, 15, 0), at(4, 23, 45, 0))

	for _, start := range []int{0, 8 * 60, 9*60 + 30, 10 * 60, 23 * 60} {
		for _, end := range []int{start, start + 1, start + 45, 24*60 - 1} {
			if end < start {
				continue
			}
			s := at(4, start/60, start%60, 0)
			e := at(4, end/60, end%60, 30)
			free, busy := l.FreeMinutes(s, e), l.BusyMinutes(s, e)
			if free+busy != ElapsedMinutes(s, e) {
				t.Errorf("[%v, %v): free %d + busy %d != elapsed %d", s, e, free, busy, ElapsedMinutes(s, e))
			}
			if free < 0 || busy < 0 {
				t.Errorf("[%v, %v): negative count free=%d busy=%d", s, e, free, busy)
			}
		}
	}
	if got := l.BusyMinutes(at(4, 0, 0, 0), at(4, 23, 59, 0)); got != 120+90 {
		t.Errorf("overlapping busy slots = %d, want 210", got)
	}
}

func TestFreeMinutesMultiDay(t *testing.T) {
	l := NewLedger()
	l.RegisterBusyTimeSlot(at(4, 20, 0, 0), at(4, 21, 0, 0))
	// Busy time on later dates is not consulted.
	l.RegisterBusyTimeSlot(at(5, 1, 0, 0), at(5, 5, 0, 0))

	start := at(4, 18, 0, 0)
	end := at(5, 6, 0, 0)
	// 18:00-23:59 on the 4th: 359 minutes, 60 busy. Then 23:59 -> 06:00: 361 minutes.
	if got := l.FreeMinutes(start, end); got != 299+361 {
		t.Errorf("FreeMinutes = %d, want %d", got, 299+361)
	}
	if got := l.BusyMinutes(start, end); got != 60 {
		t.Errorf("BusyMinutes = %d, want 60", got)
	}
}

func TestReversedRange(t *testing.T) {
	l := NewLedger()
	if got := l.FreeMinutes(at(4, 10, 0, 0), at(4, 9, 0, 0)); got != 0 {
		t.Errorf("FreeMinutes = %d, want 0", got)
	}
	if got := l.BusyMinutes(at(5, 10, 0, 0), at(4, 9, 0, 0)); got != 0 {
		t.Errorf("BusyMinutes = %d, want 0", got)
	}
}

func TestApplyProjectsWeek(t *testing.T) {
	tpl := WeeklyTemplate{
		time.Monday: {
			Weekday: time.Monday,
			Slots:   []BusyTimeSlot{{StartHour: 9, StartMinute: 0, Duration: 30, Label: "standup"}},
		},
		time.Sunday: {
			Weekday: time.Sunday,
			Slots:   []BusyTimeSlot{{StartHour: 23, StartMinute: 0, Duration: 60, Label: "late"}},
		},
	}
	// 2024-03-06 is a Wednesday; the projected week runs Wed 6th to Tue 12th.
	now := at(6, 15, 0, 0)
	l := NewLedger()
	l.Apply(tpl, now)

	if got := l.BusyMinutes(at(11, 0, 0, 0), at(11, 23, 59, 0)); got != 30 {
		t.Errorf("Monday busy = %d, want 30", got)
	}
	if got := l.BusyMinutes(at(4, 0, 0, 0), at(4, 23, 59, 0)); got != 0 {
		t.Errorf("Monday before the window busy = %d, want 0", got)
	}
	if l.IsFree(at(10, 23, 59, 0)) {
		t.Error("Sunday slot ending at midnight should cover 23:59")
	}
	if got := l.BusyMinutes(at(10, 0, 0, 0), at(10, 23, 59, 0)); got != 59 {
		t.Errorf("Sunday busy before 23:59 = %d, want 59", got)
	}
}
