//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"fmt"
	"strings"
)

// NotInitializedError indicates the data directory doesn't exist.
type NotInitializedError struct{}

func (e NotInitializedError) Error() string {
	return "nextup not initialized: run 'nextup init' first"
}

// AlreadyInitializedError indicates the data directory already exists.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "nextup already initialized"
}

// ProjectNotFoundError indicates no project file has the given name.
type ProjectNotFoundError struct {
	Name string
}

func (e ProjectNotFoundError) Error() string {
	return fmt.Sprintf("project not found: %s", e.Name)
}

// ProjectExistsError indicates a project name collision.
type ProjectExistsError struct {
	Name string
}

func (e ProjectExistsError) Error() string {
	return fmt.Sprintf("project already exists: %s", e.Name)
}

// InvalidProjectNameError indicates a name that sanitizes to nothing.
type InvalidProjectNameError struct {
	Name string
}

func (e InvalidProjectNameError) Error() string {
	return fmt.Sprintf("invalid project name: %q", e.Name)
}

// TaskNotFoundError indicates the ID prefix doesn't match any task.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// AmbiguousIDError indicates the ID prefix matches more than one task.
type AmbiguousIDError struct {
	ID      string
	Matches []string
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("task id %s is ambiguous: matches %s", e.ID, strings.Join(e.Matches, ", "))
}

// ShortIDError indicates an ID prefix below the minimum length.
type ShortIDError struct {
	ID  string
	Min int
}

func (e ShortIDError) Error() string {
	return fmt.Sprintf("task id %q is too short: use at least %d characters", e.ID, e.Min)
}

// InvalidPriorityError indicates a priority that isn't an integer.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (must be an integer)", e.Value)
}

// InvalidTimeError indicates a time argument that couldn't be parsed.
type InvalidTimeError struct {
	Value string
}

func (e InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time: %s (use YYYY/MM/DD [HH:MM[:SS]] or a duration like 2h)", e.Value)
}

// MoveIntoDescendantError indicates a move that would create a cycle.
type MoveIntoDescendantError struct {
	ID     string
	Target string
}

func (e MoveIntoDescendantError) Error() string {
	return fmt.Sprintf("cannot move %s under %s: target is the task itself or one of its descendants", e.ID, e.Target)
}

// CrossProjectMoveError indicates a move between two project trees.
type CrossProjectMoveError struct {
	ID          string
	FromProject string
	ToProject   string
}

func (e CrossProjectMoveError) Error() string {
	return fmt.Sprintf("cannot move %s from project %s to project %s", e.ID, e.FromProject, e.ToProject)
}

// ActiveTaskExistsError indicates a task is already being worked on.
type ActiveTaskExistsError struct {
	ID   string
	Name string
}

func (e ActiveTaskExistsError) Error() string {
	return fmt.Sprintf("task %s (%s) is already active; stop it first", e.ID, e.Name)
}

// NoActiveTaskError indicates stop was called with nothing active.
type NoActiveTaskError struct{}

func (e NoActiveTaskError) Error() string {
	return "no active task"
}

// CalendarNotConfiguredError indicates --gcal was used without calendar settings.
type CalendarNotConfiguredError struct {
	Missing string
}

func (e CalendarNotConfiguredError) Error() string {
	return fmt.Sprintf("calendar import is not configured: set %s", e.Missing)
}
