package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abatilo/nextup/internal/leaf"
	"github.com/abatilo/nextup/internal/output"
	"github.com/abatilo/nextup/internal/storage"
)

// initCmd implements 'nextup init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the nextup data directory",
		Run: func(_ *cobra.Command, _ []string) {
			store := getStore()
			if err := store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized nextup at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// projectCmd implements the 'nextup project' command group.
func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		projectAddCmd(),
		projectListCmd(),
	)
	return cmd
}

// projectAddCmd implements 'nextup project add'.
func projectAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			tree, err := getStore().CreateProject(args[0])
			if err != nil {
				printError(err)
			}
			name := storage.SanitizeName(args[0])
			logger.Printf("created project %s (root %s)", name, tree.Root().ID())
			printOutput(formatter.FormatTree(name, tree.Root()))
		},
	}
}

// projectListCmd implements 'nextup project list'.
func projectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Run: func(_ *cobra.Command, _ []string) {
			repo := openRepository(clock())
			summaries := make([]output.ProjectSummary, len(repo.Projects()))
			for i, p := range repo.Projects() {
				summaries[i] = summarize(p)
			}
			printOutput(formatter.FormatProjects(summaries))
		},
	}
}

func summarize(p storage.Project) output.ProjectSummary {
	root := p.Tree.Root()
	return output.ProjectSummary{
		Name:       p.Name,
		Root:       root,
		Tasks:      p.Tree.Len(),
		Actionable: len(leaf.Extract(root)),
	}
}
