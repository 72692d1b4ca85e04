package output

import (
	"time"

	"github.com/abatilo/nextup/internal/focus"
	"github.com/abatilo/nextup/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(item Item) string
	FormatTree(project string, root task.Task) string
	FormatNext(items []Item) string
	FormatProjects(projects []ProjectSummary) string
	FormatFreeTime(r FreeTimeReport) string
	FormatFocus(f *focus.Focus, now time.Time) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// Item is a task together with the project it belongs to.
type Item struct {
	Project string
	Task    task.Task
}

// ProjectSummary describes one project for listing.
type ProjectSummary struct {
	Name       string
	Root       task.Task
	Tasks      int
	Actionable int
}

// FreeTimeReport is the result of a free-time query.
type FreeTimeReport struct {
	From     time.Time
	To       time.Time
	Free     int
	Busy     int
	Imported int
}

const timeLayout = "2006/01/02 15:04"

func formatMinutes(m int) string {
	return (time.Duration(m) * time.Minute).String()
}
