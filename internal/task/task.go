package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the evaluation state of a task.
type Status int

const (
	StatusTodo Status = iota
	StatusPending
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return StatusTodo, true
	case "pending":
		return StatusPending, true
	case "done":
		return StatusDone, true
	default:
		return StatusTodo, false
	}
}

// IsValidStatus checks if a status is one of the known values.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

// Attr is the attribute record held by every node of a task tree.
//
// OrigStatus is the status the user set. Status is derived from it: a Pending
// task whose pending time has passed (as of the last SyncClock) evaluates to
// Todo. The zero time stands for "no pending time".
type Attr struct {
	ID       uuid.UUID
	Name     string
	Priority int // higher is more urgent

	origStatus   Status
	status       Status
	pendingUntil time.Time
	lastSynced   time.Time
}

// NewAttr returns a Todo attribute record with a fresh ID.
func NewAttr(name string) Attr {
	return Attr{
		ID:         NewID(),
		Name:       name,
		origStatus: StatusTodo,
		status:     StatusTodo,
	}
}

// OrigStatus returns the user-set status.
func (a Attr) OrigStatus() Status { return a.origStatus }

// Status returns the derived status as of the last clock sync.
func (a Attr) Status() Status { return a.status }

// PendingUntil returns the time a Pending task becomes actionable again.
func (a Attr) PendingUntil() time.Time { return a.pendingUntil }

// LastSyncedTime returns the instant passed to the most recent SyncClock.
func (a Attr) LastSyncedTime() time.Time { return a.lastSynced }

// SetOrigStatus sets the authoritative status and re-evaluates Status.
func (a *Attr) SetOrigStatus(s Status) {
	a.origStatus = s
	a.evaluate()
}

// SetPendingUntil sets the pending deadline and re-evaluates Status.
func (a *Attr) SetPendingUntil(t time.Time) {
	a.pendingUntil = t
	a.evaluate()
}

// SyncClock records now as the evaluation instant and re-evaluates Status.
func (a *Attr) SyncClock(now time.Time) {
	a.lastSynced = now
	a.evaluate()
}

func (a *Attr) evaluate() {
	if a.origStatus == StatusPending && a.lastSynced.After(a.pendingUntil) {
		a.status = StatusTodo
		return
	}
	a.status = a.origStatus
}

// Equal reports whether two records hold the same values. IDs are ignored.
func (a Attr) Equal(b Attr) bool {
	return a.Name == b.Name &&
		a.Priority == b.Priority &&
		a.origStatus == b.origStatus &&
		a.status == b.status &&
		a.pendingUntil.Equal(b.pendingUntil) &&
		a.lastSynced.Equal(b.lastSynced)
}
