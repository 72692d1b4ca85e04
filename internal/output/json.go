package output

import (
	"encoding/json"
	"time"

	"github.com/abatilo/nextup/internal/focus"
	"github.com/abatilo/nextup/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Project      string     `json:"project,omitempty"`
	Status       string     `json:"status"`
	OrigStatus   string     `json:"orig_status"`
	Priority     int        `json:"priority"`
	PendingUntil *string    `json:"pending_until,omitempty"`
	Children     []taskJSON `json:"children,omitempty"`
}

func toTaskJSON(a task.Attr, project string) taskJSON {
	tj := taskJSON{
		ID:         a.ID.String(),
		Name:       a.Name,
		Project:    project,
		Status:     a.Status().String(),
		OrigStatus: a.OrigStatus().String(),
		Priority:   a.Priority,
	}
	if !a.PendingUntil().IsZero() {
		s := a.PendingUntil().Format(time.RFC3339)
		tj.PendingUntil = &s
	}
	return tj
}

func toTreeJSON(t task.Task) taskJSON {
	tj := toTaskJSON(t.Attr(), "")
	for _, c := range t.Children() {
		tj.Children = append(tj.Children, toTreeJSON(c))
	}
	return tj
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(item Item) string {
	return marshalJSON(toTaskJSON(item.Task.Attr(), item.Project))
}

// projectTreeJSON is the JSON representation of a project tree.
type projectTreeJSON struct {
	Project string   `json:"project"`
	Root    taskJSON `json:"root"`
}

// FormatTree formats a project tree as JSON.
func (f *JSONFormatter) FormatTree(project string, root task.Task) string {
	return marshalJSON(projectTreeJSON{Project: project, Root: toTreeJSON(root)})
}

// FormatNext formats actionable tasks as JSON.
func (f *JSONFormatter) FormatNext(items []Item) string {
	jsonTasks := make([]taskJSON, len(items))
	for i, item := range items {
		jsonTasks[i] = toTaskJSON(item.Task.Attr(), item.Project)
	}
	return marshalJSON(jsonTasks)
}

// projectJSON is the JSON representation of a project summary.
type projectJSON struct {
	Name       string `json:"name"`
	RootID     string `json:"root_id"`
	RootName   string `json:"root_name"`
	Tasks      int    `json:"tasks"`
	Actionable int    `json:"actionable"`
}

// FormatProjects formats the project list as JSON.
func (f *JSONFormatter) FormatProjects(projects []ProjectSummary) string {
	jsonProjects := make([]projectJSON, len(projects))
	for i, p := range projects {
		jsonProjects[i] = projectJSON{
			Name:       p.Name,
			RootID:     p.Root.ID().String(),
			RootName:   p.Root.Name(),
			Tasks:      p.Tasks,
			Actionable: p.Actionable,
		}
	}
	return marshalJSON(jsonProjects)
}

// freeTimeJSON is the JSON representation of a free-time report.
type freeTimeJSON struct {
	From        string `json:"from"`
	To          string `json:"to"`
	FreeMinutes int    `json:"free_minutes"`
	BusyMinutes int    `json:"busy_minutes"`
	Imported    int    `json:"calendar_events,omitempty"`
}

// FormatFreeTime formats a free-time report as JSON.
func (f *JSONFormatter) FormatFreeTime(r FreeTimeReport) string {
	return marshalJSON(freeTimeJSON{
		From:        r.From.Format(time.RFC3339),
		To:          r.To.Format(time.RFC3339),
		FreeMinutes: r.Free,
		BusyMinutes: r.Busy,
		Imported:    r.Imported,
	})
}

// focusJSON is the JSON representation of the active task.
type focusJSON struct {
	Active         bool   `json:"active"`
	Project        string `json:"project,omitempty"`
	TaskID         string `json:"task_id,omitempty"`
	Name           string `json:"name,omitempty"`
	StartedAt      string `json:"started_at,omitempty"`
	ElapsedSeconds int64  `json:"elapsed_seconds,omitempty"`
}

// FormatFocus formats the active task as JSON.
func (f *JSONFormatter) FormatFocus(fc *focus.Focus, now time.Time) string {
	if fc == nil {
		return marshalJSON(focusJSON{Active: false})
	}
	return marshalJSON(focusJSON{
		Active:         true,
		Project:        fc.Project,
		TaskID:         fc.TaskID,
		Name:           fc.Name,
		StartedAt:      fc.StartedAt.Format(time.RFC3339),
		ElapsedSeconds: int64(fc.Elapsed(now) / time.Second),
	})
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
