package storage

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abatilo/nextup/internal/task"
)

// PendingLayout is the layout pending_until is written in.
const PendingLayout = "2006/01/02 15:04:05"

//nolint:gochecknoglobals // Fixed list of accepted input layouts
var pendingLayouts = []string{
	PendingLayout,
	"2006/01/02 15:04",
	"2006/01/02",
}

// taskRecord is the on-disk shape read from YAML. Scalars are kept as nodes so
// malformed user values degrade to defaults instead of failing the decode.
type taskRecord struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Status       yaml.Node    `yaml:"status"`
	PendingUntil yaml.Node    `yaml:"pending_until"`
	Priority     yaml.Node    `yaml:"priority"`
	Children     []taskRecord `yaml:"children"`
}

// taskOutput is the on-disk shape written to YAML.
type taskOutput struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Status       string       `yaml:"status,omitempty"`
	PendingUntil string       `yaml:"pending_until,omitempty"`
	Priority     int          `yaml:"priority,omitempty"`
	Children     []taskOutput `yaml:"children,omitempty"`
}

// ParseYAML decodes a task tree. Unknown or malformed status, pending_until
// and priority values fall back to their defaults; a missing or unparsable id
// is replaced by a fresh one. Any UUID form is accepted and kept in canonical
// lowercase form, so uppercase, braced or urn:uuid: ids are rewritten on save.
func ParseYAML(content []byte) (*task.Tree, error) {
	var rec taskRecord
	if err := yaml.Unmarshal(content, &rec); err != nil {
		return nil, ParseError{Msg: "invalid YAML: " + err.Error()}
	}

	tree := task.NewTree(rec.attr())
	p := tree.BeginEdit()
	defer p.Release()
	addChildren(p, tree.Root(), rec.Children)
	return tree, nil
}

func addChildren(p *task.EditPermit, parent task.Task, recs []taskRecord) {
	for _, r := range recs {
		child := parent.CreateAsLastChild(p, r.attr())
		addChildren(p, child, r.Children)
	}
}

func (r taskRecord) attr() task.Attr {
	a := task.NewAttr(r.Name)
	if id, ok := task.ParseID(r.ID); ok {
		a.ID = id
	}
	if s, ok := task.ParseStatus(scalar(r.Status)); ok {
		a.SetOrigStatus(s)
	}
	if t, ok := parsePendingUntil(scalar(r.PendingUntil)); ok {
		a.SetPendingUntil(t)
	}
	if n, err := strconv.Atoi(scalar(r.Priority)); err == nil {
		a.Priority = n
	}
	return a
}

func scalar(n yaml.Node) string {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// parsePendingUntil tries each accepted layout in order, in local time.
func parsePendingUntil(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range pendingLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SerializeYAML encodes a task tree. Fields holding their default value are
// omitted; id is always written.
func SerializeYAML(tree *task.Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toOutput(tree.Root())); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toOutput(t task.Task) taskOutput {
	a := t.Attr()
	out := taskOutput{
		ID:       a.ID.String(),
		Name:     a.Name,
		Priority: a.Priority,
	}
	if a.OrigStatus() != task.StatusTodo {
		out.Status = a.OrigStatus().String()
	}
	if !a.PendingUntil().IsZero() {
		out.PendingUntil = a.PendingUntil().In(time.Local).Format(PendingLayout)
	}
	for _, c := range t.Children() {
		out.Children = append(out.Children, toOutput(c))
	}
	return out
}

