package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/nextup/internal/config"
	"github.com/abatilo/nextup/internal/logging"
	"github.com/abatilo/nextup/internal/output"
	"github.com/abatilo/nextup/internal/storage"
)

//nolint:gochecknoglobals // CLI flags, config and formatter are package-level by design
var (
	jsonOutput bool
	configPath string
	formatter  output.Formatter
	cfg        *config.Config
	logger     *logging.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nextup",
		Short: "A hierarchical task tracker that tells you what to do next",
		Long: "nextup - A hierarchical task tracker.\n\n" +
			"Projects are trees of tasks stored as YAML. 'nextup next' walks every tree\n" +
			"and picks the most urgent actionable leaf.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				printError(err)
			}
			logger = openLogger(cfg)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Close()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.nextup/config.yaml)")

	rootCmd.AddCommand(
		initCmd(),
		projectCmd(),
		addCmd(),
		showCmd(),
		nextCmd(),
		doneCmd(),
		todoCmd(),
		deferCmd(),
		prioCmd(),
		mvCmd(),
		startCmd(),
		stopCmd(),
		currentCmd(),
		freeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openLogger only logs once the data directory exists, so commands run
// before 'nextup init' leave nothing behind.
func openLogger(c *config.Config) *logging.Logger {
	if _, err := os.Stat(c.DataDir); err != nil {
		return nil
	}
	l, err := logging.New(c.LogDir())
	if err != nil {
		return nil
	}
	return l
}

func getStore() *storage.Store {
	return storage.NewStore(cfg.DataDir)
}

// clock returns the current time in the configured timezone.
func clock() time.Time {
	loc, err := cfg.Location()
	if err != nil {
		printError(err)
	}
	return time.Now().In(loc)
}

// openRepository loads every project and evaluates it at now.
func openRepository(now time.Time) *storage.Repository {
	repo, err := getStore().Open()
	if err != nil {
		printError(err)
	}
	repo.SyncClock(now)
	return repo
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	logger.Errorf("%v", err)
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}
