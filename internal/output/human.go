package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/nextup/internal/focus"
	"github.com/abatilo/nextup/internal/task"
)

//nolint:gochecknoglobals // Read-only style table
var (
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F")).Strikethrough(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF5F"))
	projectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(item Item) string {
	var sb strings.Builder
	a := item.Task.Attr()

	fmt.Fprintf(&sb, "[%s] %s\n", idStyle.Render(task.ShortID(a.ID)), nameStyle.Render(a.Name))
	fmt.Fprintf(&sb, "  ID:       %s\n", a.ID)
	fmt.Fprintf(&sb, "  Project:  %s\n", item.Project)
	fmt.Fprintf(&sb, "  Status:   %s\n", a.Status())
	if a.OrigStatus() != a.Status() {
		fmt.Fprintf(&sb, "  Set to:   %s\n", a.OrigStatus())
	}
	fmt.Fprintf(&sb, "  Priority: %d\n", a.Priority)
	if !a.PendingUntil().IsZero() {
		fmt.Fprintf(&sb, "  Until:    %s\n", a.PendingUntil().Format(timeLayout))
	}
	if item.Task.HasChildren() {
		fmt.Fprintf(&sb, "  Children: %d\n", len(item.Task.Children()))
	}
	return sb.String()
}

// FormatTree formats a project tree as ASCII art.
func (f *HumanFormatter) FormatTree(project string, root task.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", projectStyle.Render(project))
	f.formatTreeNode(&sb, root, "", true, true)
	return sb.String()
}

func (f *HumanFormatter) formatTreeNode(sb *strings.Builder, t task.Task, prefix string, isLast, isRoot bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if isRoot {
		connector = ""
	}

	fmt.Fprintf(sb, "%s%s%s\n", prefix, connector, f.formatTaskLine(t.Attr()))

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	children := t.Children()
	for i, child := range children {
		f.formatTreeNode(sb, child, childPrefix, i == len(children)-1, false)
	}
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(a task.Attr) string {
	name := a.Name
	switch a.Status() {
	case task.StatusDone:
		name = doneStyle.Render(name)
	case task.StatusPending:
		name = pendingStyle.Render(name)
	case task.StatusTodo:
	}

	line := fmt.Sprintf("%s [%s] %s", f.statusIcon(a.Status()), idStyle.Render(task.ShortID(a.ID)), name)
	if a.Priority != 0 {
		line += fmt.Sprintf(" (p%d)", a.Priority)
	}
	if a.Status() == task.StatusPending && !a.PendingUntil().IsZero() {
		line += " until " + a.PendingUntil().Format(timeLayout)
	}
	return line
}

func (f *HumanFormatter) statusIcon(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "[ ]"
	case task.StatusPending:
		return "[~]"
	case task.StatusDone:
		return "[X]"
	default:
		return "[?]"
	}
}

// FormatNext formats actionable tasks, most urgent first.
func (f *HumanFormatter) FormatNext(items []Item) string {
	if len(items) == 0 {
		return "Nothing to do.\n"
	}

	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%s %s\n", f.formatTaskLine(item.Task.Attr()), projectStyle.Render("@"+item.Project))
	}
	return sb.String()
}

// FormatProjects formats the project list.
func (f *HumanFormatter) FormatProjects(projects []ProjectSummary) string {
	if len(projects) == 0 {
		return "No projects found.\n"
	}

	var sb strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&sb, "%s  %s  %d tasks, %d actionable\n",
			projectStyle.Render(p.Name), p.Root.Name(), p.Tasks, p.Actionable)
	}
	return sb.String()
}

// FormatFreeTime formats a free-time query result.
func (f *HumanFormatter) FormatFreeTime(r FreeTimeReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s\n", r.From.Format(timeLayout), r.To.Format(timeLayout))
	fmt.Fprintf(&sb, "  Free: %s (%d min)\n", formatMinutes(r.Free), r.Free)
	fmt.Fprintf(&sb, "  Busy: %s (%d min)\n", formatMinutes(r.Busy), r.Busy)
	if r.Imported > 0 {
		fmt.Fprintf(&sb, "  Calendar events: %d\n", r.Imported)
	}
	return sb.String()
}

// FormatFocus formats the task currently being worked on.
func (f *HumanFormatter) FormatFocus(fc *focus.Focus, now time.Time) string {
	if fc == nil {
		return "No active task.\n"
	}
	elapsed := fc.Elapsed(now).Truncate(time.Second)
	return fmt.Sprintf("Working on [%s] %s %s for %s\n",
		idStyle.Render(shortIDString(fc.TaskID)), nameStyle.Render(fc.Name), projectStyle.Render("@"+fc.Project), elapsed)
}

func shortIDString(id string) string {
	if parsed, ok := task.ParseID(id); ok {
		return task.ShortID(parsed)
	}
	return id
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("%s %s\n", errorStyle.Render("Error:"), err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
