package task

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

const noParent = -1

// node is an arena entry. parent and children are guarded by Tree.mu,
// attr by the node's own mu.
type node struct {
	parent   int
	children []int

	mu   sync.RWMutex
	attr Attr
}

// Tree is a single project: an arena of nodes addressed by index, rooted at
// index 0. Nodes are never removed; they only move via
// DetachInsertAsLastChildOf. The root can never move, since every node in the
// tree is beneath it.
type Tree struct {
	mu    sync.RWMutex
	nodes []*node

	edit sync.Mutex
}

// New creates a single-node tree whose root is a fresh Todo task.
func New(name string) *Tree {
	return NewTree(NewAttr(name))
}

// NewTree creates a single-node tree with the given root attributes.
func NewTree(root Attr) *Tree {
	return &Tree{nodes: []*node{{parent: noParent, attr: root}}}
}

// Root returns the root task.
func (tr *Tree) Root() Task {
	return Task{tree: tr, idx: 0}
}

// Len returns the number of tasks in the tree.
func (tr *Tree) Len() int {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return len(tr.nodes)
}

// All iterates the tree depth-first, left to right, starting at the root.
func (tr *Tree) All() iter.Seq[Task] {
	return tr.Root().All()
}

// SyncClock evaluates every task in the tree at now.
func (tr *Tree) SyncClock(now time.Time) {
	for t := range tr.All() {
		t.SyncClock(now)
	}
}

// Find returns the task with the given ID.
func (tr *Tree) Find(id uuid.UUID) (Task, bool) {
	for t := range tr.All() {
		if t.ID() == id {
			return t, true
		}
	}
	return Task{}, false
}

// FindPrefix returns every task whose ID starts with prefix, in traversal order.
func (tr *Tree) FindPrefix(prefix string) []Task {
	var found []Task
	for t := range tr.All() {
		if HasPrefix(t.ID(), prefix) {
			found = append(found, t)
		}
	}
	return found
}

// BeginEdit acquires the tree's hierarchy-edit permit, blocking while another
// holder has it. The permit must be released when the edit is finished.
func (tr *Tree) BeginEdit() *EditPermit {
	tr.edit.Lock()
	return &EditPermit{tree: tr}
}

// EditPermit is the exclusive right to change the shape of one tree.
type EditPermit struct {
	tree     *Tree
	released bool
}

// Release gives the permit back. Releasing twice is a no-op.
func (p *EditPermit) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.tree.edit.Unlock()
}

func (p *EditPermit) check(tr *Tree) {
	switch {
	case p == nil:
		panic(PermitError{Reason: "nil permit"})
	case p.released:
		panic(PermitError{Reason: "permit already released"})
	case p.tree != tr:
		panic(PermitError{Reason: "permit belongs to another tree"})
	}
}

// Task is a handle to one node of a Tree. The zero Task refers to nothing.
type Task struct {
	tree *Tree
	idx  int
}

// IsZero reports whether t refers to no node.
func (t Task) IsZero() bool {
	return t.tree == nil
}

// Tree returns the tree t belongs to.
func (t Task) Tree() *Tree {
	return t.tree
}

func (t Task) node() *node {
	t.tree.mu.RLock()
	defer t.tree.mu.RUnlock()
	return t.tree.nodes[t.idx]
}

// Attr returns a copy of the task's attributes.
func (t Task) Attr() Attr {
	n := t.node()
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attr
}

// ID returns the task's ID.
func (t Task) ID() uuid.UUID { return t.Attr().ID }

// Name returns the task's name.
func (t Task) Name() string { return t.Attr().Name }

// Status returns the task's derived status.
func (t Task) Status() Status { return t.Attr().Status() }

// Priority returns the task's priority.
func (t Task) Priority() int { return t.Attr().Priority }

// Update applies fn to the task's attributes while holding the node's write lock.
func (t Task) Update(fn func(a *Attr)) {
	n := t.node()
	n.mu.Lock()
	defer n.mu.Unlock()
	fn(&n.attr)
}

// SetOrigStatus sets the user-facing status.
func (t Task) SetOrigStatus(s Status) {
	t.Update(func(a *Attr) { a.SetOrigStatus(s) })
}

// SetPendingUntil sets the time a Pending task becomes actionable.
func (t Task) SetPendingUntil(until time.Time) {
	t.Update(func(a *Attr) { a.SetPendingUntil(until) })
}

// SetPriority sets the task's priority.
func (t Task) SetPriority(p int) {
	t.Update(func(a *Attr) { a.Priority = p })
}

// SetName renames the task.
func (t Task) SetName(name string) {
	t.Update(func(a *Attr) { a.Name = name })
}

// SyncClock re-evaluates this task's status at now.
func (t Task) SyncClock(now time.Time) {
	t.Update(func(a *Attr) { a.SyncClock(now) })
}

// Parent returns the parent task, or false for the root.
func (t Task) Parent() (Task, bool) {
	t.tree.mu.RLock()
	p := t.tree.nodes[t.idx].parent
	t.tree.mu.RUnlock()
	if p == noParent {
		return Task{}, false
	}
	return Task{tree: t.tree, idx: p}, true
}

// Root returns the root of the tree t belongs to.
func (t Task) Root() Task {
	return t.tree.Root()
}

// Children returns the direct children in sibling order.
func (t Task) Children() []Task {
	t.tree.mu.RLock()
	defer t.tree.mu.RUnlock()
	idxs := t.tree.nodes[t.idx].children
	children := make([]Task, len(idxs))
	for i, c := range idxs {
		children[i] = Task{tree: t.tree, idx: c}
	}
	return children
}

// HasChildren reports whether t has at least one child.
func (t Task) HasChildren() bool {
	t.tree.mu.RLock()
	defer t.tree.mu.RUnlock()
	return len(t.tree.nodes[t.idx].children) > 0
}

// All iterates the subtree rooted at t depth-first, left to right.
func (t Task) All() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		t.walk(yield)
	}
}

func (t Task) walk(yield func(Task) bool) bool {
	if !yield(t) {
		return false
	}
	for _, c := range t.Children() {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether t lies strictly beneath ancestor.
func (t Task) IsDescendantOf(ancestor Task) bool {
	if t.tree != ancestor.tree {
		return false
	}
	t.tree.mu.RLock()
	defer t.tree.mu.RUnlock()
	return t.tree.underLocked(t.idx, ancestor.idx) && t.idx != ancestor.idx
}

// underLocked reports whether idx is anc or lies beneath it. Tree.mu must be held.
func (tr *Tree) underLocked(idx, anc int) bool {
	for cur := idx; cur != noParent; cur = tr.nodes[cur].parent {
		if cur == anc {
			return true
		}
	}
	return false
}

// CreateAsLastChild appends a new task with the given attributes as the last
// child of t and returns it.
func (t Task) CreateAsLastChild(p *EditPermit, attr Attr) Task {
	p.check(t.tree)
	t.tree.mu.Lock()
	defer t.tree.mu.Unlock()
	idx := len(t.tree.nodes)
	t.tree.nodes = append(t.tree.nodes, &node{parent: t.idx, attr: attr})
	parent := t.tree.nodes[t.idx]
	parent.children = append(parent.children, idx)
	return Task{tree: t.tree, idx: idx}
}

// DetachInsertAsLastChildOf moves the subtree rooted at t so it becomes the
// last child of newParent. Remaining siblings keep their relative order.
//
// It panics with a CycleError if newParent is t or lies beneath it, and with a
// PermitError if p does not cover the tree or newParent is in another tree.
// Nothing is modified when it panics.
func (t Task) DetachInsertAsLastChildOf(p *EditPermit, newParent Task) {
	p.check(t.tree)
	if newParent.tree != t.tree {
		panic(PermitError{Reason: "new parent belongs to another tree"})
	}

	t.tree.mu.Lock()
	defer t.tree.mu.Unlock()
	if t.tree.underLocked(newParent.idx, t.idx) {
		panic(CycleError{Node: t.tree.nodes[t.idx].id(), Target: t.tree.nodes[newParent.idx].id()})
	}

	moved := t.tree.nodes[t.idx]
	old := t.tree.nodes[moved.parent]
	old.children = slices.DeleteFunc(old.children, func(c int) bool { return c == t.idx })

	dst := t.tree.nodes[newParent.idx]
	dst.children = append(dst.children, t.idx)
	moved.parent = newParent.idx
}

func (n *node) id() uuid.UUID {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attr.ID
}

// Equal reports whether the subtrees rooted at t and other hold the same
// attribute values in the same shape. IDs are ignored.
func (t Task) Equal(other Task) bool {
	if !t.Attr().Equal(other.Attr()) {
		return false
	}
	a, b := t.Children(), other.Children()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
