// Package leaf finds the actionable tasks of a project tree.
package leaf

import (
	"cmp"
	"slices"

	"github.com/abatilo/nextup/internal/task"
)

// Extract returns the actionable leaves beneath node in depth-first,
// left-to-right order.
//
// A Todo natural leaf (no children, or only Done children) is actionable.
// Done children are pruned with their whole subtree. Pending tasks are never
// returned but are still descended into, so Todo work beneath a deferred
// parent surfaces. Callers must sync the tree's clock first.
func Extract(node task.Task) []task.Task {
	if isNaturalLeaf(node) {
		if node.Status() == task.StatusTodo {
			return []task.Task{node}
		}
		return nil
	}
	return fromChildren(node)
}

// ExtractAll concatenates Extract over several roots.
func ExtractAll(roots []task.Task) []task.Task {
	var leaves []task.Task
	for _, r := range roots {
		leaves = append(leaves, Extract(r)...)
	}
	return leaves
}

// withPending returns the natural leaves beneath node that are not Done,
// Pending ones included.
func withPending(node task.Task) []task.Task {
	if isNaturalLeaf(node) {
		if node.Status() == task.StatusDone {
			return nil
		}
		return []task.Task{node}
	}
	return fromChildren(node)
}

func fromChildren(node task.Task) []task.Task {
	var leaves []task.Task
	for _, child := range node.Children() {
		if child.Status() == task.StatusDone {
			continue
		}
		for _, l := range withPending(child) {
			if l.Status() == task.StatusPending {
				continue
			}
			leaves = append(leaves, l)
		}
	}
	return leaves
}

func isNaturalLeaf(node task.Task) bool {
	for _, c := range node.Children() {
		if c.Status() != task.StatusDone {
			return false
		}
	}
	return true
}

// Next returns the most urgent leaf: highest priority first, extraction order
// breaking ties.
func Next(leaves []task.Task) (task.Task, bool) {
	if len(leaves) == 0 {
		return task.Task{}, false
	}
	return ByPriority(leaves)[0], true
}

// ByPriority returns a copy of leaves sorted by descending priority. The sort
// is stable, so equal priorities keep their traversal order.
func ByPriority(leaves []task.Task) []task.Task {
	sorted := slices.Clone(leaves)
	slices.SortStableFunc(sorted, func(a, b task.Task) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	return sorted
}
