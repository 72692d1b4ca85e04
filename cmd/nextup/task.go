package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/focus"
	"github.com/abatilo/nextup/internal/leaf"
	"github.com/abatilo/nextup/internal/output"
	"github.com/abatilo/nextup/internal/storage"
	"github.com/abatilo/nextup/internal/task"
)

// addCmd implements 'nextup add'.
func addCmd() *cobra.Command {
	var parentID string
	var priority int
	cmd := &cobra.Command{
		Use:   "add <project> <name>",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			repo := openRepository(clock())
			project, parent, err := resolveParent(repo, args[0], parentID)
			if err != nil {
				printError(err)
			}

			attr := task.NewAttr(args[1])
			attr.Priority = priority

			p := project.Tree.BeginEdit()
			child := parent.CreateAsLastChild(p, attr)
			p.Release()

			if err = repo.Save(project); err != nil {
				printError(err)
			}
			logger.Printf("added %s %q under %s in %s", child.ID(), attr.Name, parent.ID(), project.Name)
			printOutput(formatter.FormatTask(output.Item{Project: project.Name, Task: child}))
		},
	}
	cmd.Flags().StringVar(&parentID, "parent", "", "ID of the parent task (default: project root)")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority (higher is more urgent)")
	return cmd
}

// resolveParent finds the task a new child goes under: the project root, or
// the task matching parentID, which must live in the same project.
func resolveParent(repo *storage.Repository, projectName, parentID string) (storage.Project, task.Task, error) {
	project, err := repo.Project(projectName)
	if err != nil {
		return storage.Project{}, task.Task{}, err
	}
	if parentID == "" {
		return project, project.Tree.Root(), nil
	}

	owner, parent, err := repo.Find(parentID)
	if err != nil {
		return storage.Project{}, task.Task{}, err
	}
	if owner.Name != project.Name {
		return storage.Project{}, task.Task{}, nextuperrors.TaskNotFoundError{ID: parentID + " in project " + project.Name}
	}
	return project, parent, nil
}

// showCmd implements 'nextup show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's task tree",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			repo := openRepository(clock())
			project, err := repo.Project(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTree(project.Name, project.Tree.Root()))
		},
	}
}

// nextCmd implements 'nextup next'.
func nextCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the most urgent actionable task",
		Run: func(_ *cobra.Command, _ []string) {
			repo := openRepository(clock())
			printOutput(formatter.FormatNext(nextItems(repo, all)))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every actionable task by priority")
	return cmd
}

// nextItems extracts actionable leaves from every project. With all unset
// only the single most urgent one is returned.
func nextItems(repo *storage.Repository, all bool) []output.Item {
	owner := make(map[*task.Tree]string, len(repo.Projects()))
	for _, p := range repo.Projects() {
		owner[p.Tree] = p.Name
	}

	leaves := leaf.ExtractAll(repo.Roots())
	if all {
		leaves = leaf.ByPriority(leaves)
	} else if next, ok := leaf.Next(leaves); ok {
		leaves = []task.Task{next}
	}

	items := make([]output.Item, len(leaves))
	for i, l := range leaves {
		items[i] = output.Item{Project: owner[l.Tree()], Task: l}
	}
	return items
}

// doneCmd implements 'nextup done'.
func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			setStatus(args[0], task.StatusDone, time.Time{})
		},
	}
}

// todoCmd implements 'nextup todo'.
func todoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "todo <id>",
		Short: "Mark a task todo again",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			setStatus(args[0], task.StatusTodo, time.Time{})
		},
	}
}

// deferCmd implements 'nextup defer'.
func deferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defer <id> <until>",
		Short: "Mark a task pending until a time (YYYY/MM/DD [HH:MM[:SS]], HH:MM, 2h, 3d)",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			until, err := parseTime(args[1], clock())
			if err != nil {
				printError(err)
			}
			setStatus(args[0], task.StatusPending, until)
		},
	}
}

// setStatus applies a status change, saves the project and releases the
// focus if the task is finished.
func setStatus(id string, status task.Status, until time.Time) {
	now := clock()
	repo := openRepository(now)
	project, t, err := repo.Find(id)
	if err != nil {
		printError(err)
	}

	t.Update(func(a *task.Attr) {
		a.SetPendingUntil(until)
		a.SetOrigStatus(status)
		a.SyncClock(now)
	})
	if err = repo.Save(project); err != nil {
		printError(err)
	}
	logger.Printf("set %s %q to %s", t.ID(), t.Name(), status)

	if status == task.StatusDone {
		if released, releaseErr := focus.Release(getStore().BasePath(), t.ID().String()); releaseErr != nil {
			printError(releaseErr)
		} else if released != nil {
			logger.Printf("stopped %s after %s", released.TaskID, released.Elapsed(now))
		}
	}
	printOutput(formatter.FormatTask(output.Item{Project: project.Name, Task: t}))
}

// prioCmd implements 'nextup prio'.
func prioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prio <id> <priority>",
		Short: "Set a task's priority",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			priority, err := strconv.Atoi(args[1])
			if err != nil {
				printError(nextuperrors.InvalidPriorityError{Value: args[1]})
			}

			repo := openRepository(clock())
			project, t, err := repo.Find(args[0])
			if err != nil {
				printError(err)
			}
			t.SetPriority(priority)
			if err = repo.Save(project); err != nil {
				printError(err)
			}
			logger.Printf("set priority of %s to %d", t.ID(), priority)
			printOutput(formatter.FormatTask(output.Item{Project: project.Name, Task: t}))
		},
	}
}

// mvCmd implements 'nextup mv'.
func mvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <id> <new-parent-id>",
		Short: "Move a task (with its subtree) under another task",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			repo := openRepository(clock())
			project, t, newParent, err := validateMove(repo, args[0], args[1])
			if err != nil {
				printError(err)
			}

			p := project.Tree.BeginEdit()
			t.DetachInsertAsLastChildOf(p, newParent)
			p.Release()

			if err = repo.Save(project); err != nil {
				printError(err)
			}
			logger.Printf("moved %s under %s in %s", t.ID(), newParent.ID(), project.Name)
			printOutput(formatter.FormatTree(project.Name, project.Tree.Root()))
		},
	}
}

// validateMove resolves both ends of a move and rejects moves the tree would
// refuse: across projects, or under the task itself or its descendants.
func validateMove(repo *storage.Repository, id, parentID string) (storage.Project, task.Task, task.Task, error) {
	project, t, err := repo.Find(id)
	if err != nil {
		return storage.Project{}, task.Task{}, task.Task{}, err
	}
	parentProject, newParent, err := repo.Find(parentID)
	if err != nil {
		return storage.Project{}, task.Task{}, task.Task{}, err
	}
	if parentProject.Name != project.Name {
		return storage.Project{}, task.Task{}, task.Task{}, nextuperrors.CrossProjectMoveError{
			ID:          task.ShortID(t.ID()),
			FromProject: project.Name,
			ToProject:   parentProject.Name,
		}
	}
	if newParent.ID() == t.ID() || newParent.IsDescendantOf(t) {
		return storage.Project{}, task.Task{}, task.Task{}, nextuperrors.MoveIntoDescendantError{
			ID:     task.ShortID(t.ID()),
			Target: task.ShortID(newParent.ID()),
		}
	}
	return project, t, newParent, nil
}
