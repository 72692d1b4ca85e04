package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/focus"
	"github.com/abatilo/nextup/internal/task"
)

// startCmd implements 'nextup start'.
func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start working on a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			now := clock()
			repo := openRepository(now)
			project, t, err := repo.Find(args[0])
			if err != nil {
				printError(err)
			}

			f := focus.Focus{
				Project:   project.Name,
				TaskID:    t.ID().String(),
				Name:      t.Name(),
				StartedAt: now,
			}
			claimed, existing, err := focus.Claim(getStore().BasePath(), f)
			if err != nil {
				printError(err)
			}
			if !claimed {
				printError(nextuperrors.ActiveTaskExistsError{ID: shortID(existing.TaskID), Name: existing.Name})
			}
			logger.Printf("started %s %q", f.TaskID, f.Name)
			printOutput(formatter.FormatFocus(&f, now))
		},
	}
}

// stopCmd implements 'nextup stop'.
func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop working on the active task",
		Run: func(_ *cobra.Command, _ []string) {
			now := clock()
			released, err := focus.Release(getStore().BasePath(), "")
			if err != nil {
				printError(err)
			}
			if released == nil {
				printError(nextuperrors.NoActiveTaskError{})
			}
			elapsed := released.Elapsed(now).Truncate(time.Second)
			logger.Printf("stopped %s after %s", released.TaskID, elapsed)
			printOutput(formatter.FormatMessage(fmt.Sprintf("Stopped %s after %s", released.Name, elapsed)))
		},
	}
}

// currentCmd implements 'nextup current'.
func currentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active task",
		Run: func(_ *cobra.Command, _ []string) {
			f, err := focus.Load(getStore().BasePath())
			if err != nil && !os.IsNotExist(err) {
				printError(err)
			}
			printOutput(formatter.FormatFocus(f, clock()))
		},
	}
}

func shortID(id string) string {
	if parsed, ok := task.ParseID(id); ok {
		return task.ShortID(parsed)
	}
	return id
}
