package storage

import (
	"time"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/task"
)

// Project is one named task tree.
type Project struct {
	Name string
	Tree *task.Tree
}

// Repository holds every project loaded from a Store.
type Repository struct {
	store    *Store
	projects []Project
}

// Projects returns the loaded projects in name order.
func (r *Repository) Projects() []Project {
	return r.projects
}

// Project returns the project with the given name.
func (r *Repository) Project(name string) (Project, error) {
	want := SanitizeName(name)
	for _, p := range r.projects {
		if p.Name == want {
			return p, nil
		}
	}
	return Project{}, nextuperrors.ProjectNotFoundError{Name: name}
}

// Roots returns the root task of every project.
func (r *Repository) Roots() []task.Task {
	roots := make([]task.Task, len(r.projects))
	for i, p := range r.projects {
		roots[i] = p.Tree.Root()
	}
	return roots
}

// SyncClock evaluates every task of every project at now.
func (r *Repository) SyncClock(now time.Time) {
	for _, p := range r.projects {
		p.Tree.SyncClock(now)
	}
}

// Find resolves an ID prefix to exactly one task across all projects.
func (r *Repository) Find(prefix string) (Project, task.Task, error) {
	if len(prefix) < task.MinPrefixLength {
		return Project{}, task.Task{}, nextuperrors.ShortIDError{ID: prefix, Min: task.MinPrefixLength}
	}

	var (
		foundProject Project
		found        task.Task
		matches      []string
	)
	for _, p := range r.projects {
		for _, t := range p.Tree.FindPrefix(prefix) {
			foundProject, found = p, t
			matches = append(matches, t.ID().String())
		}
	}

	switch len(matches) {
	case 0:
		return Project{}, task.Task{}, nextuperrors.TaskNotFoundError{ID: prefix}
	case 1:
		return foundProject, found, nil
	default:
		return Project{}, task.Task{}, nextuperrors.AmbiguousIDError{ID: prefix, Matches: matches}
	}
}

// Save writes one project back to the store.
func (r *Repository) Save(p Project) error {
	return r.store.Save(p.Name, p.Tree)
}
