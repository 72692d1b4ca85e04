package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/freetime"
	"github.com/abatilo/nextup/internal/gcal"
	"github.com/abatilo/nextup/internal/output"
)

// freeCmd implements 'nextup free'.
func freeCmd() *cobra.Command {
	var from, to string
	var useCalendar bool
	cmd := &cobra.Command{
		Use:   "free",
		Short: "Show free time between now and the end of the day",
		Run: func(cmd *cobra.Command, _ []string) {
			now := clock()
			start := now
			if from != "" {
				var err error
				if start, err = parseTime(from, now); err != nil {
					printError(err)
				}
			}

			l := freetime.NewLedger()
			tpl, err := loadTemplate(l, cfg.BusyTemplate, start)
			if err != nil {
				printError(err)
			}

			end := tpl.EndOfDay(start)
			if to != "" {
				if end, err = parseTime(to, now); err != nil {
					printError(err)
				}
			}

			report := output.FreeTimeReport{From: start, To: end}
			if useCalendar {
				if report.Imported, err = importCalendar(cmd.Context(), l, start, end); err != nil {
					printError(err)
				}
			}
			report.Free = l.FreeMinutes(start, end)
			report.Busy = l.BusyMinutes(start, end)
			printOutput(formatter.FormatFreeTime(report))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start of the window (default now)")
	cmd.Flags().StringVar(&to, "to", "", "End of the window (default end of day from the busy template)")
	cmd.Flags().BoolVar(&useCalendar, "gcal", false, "Also mark Google Calendar events busy")
	return cmd
}

// loadTemplate registers the weekly busy template onto l. A missing template
// file is treated as an empty week.
func loadTemplate(l *freetime.Ledger, path string, now time.Time) (freetime.WeeklyTemplate, error) {
	tpl, err := l.LoadBusyTimeSlotsFromFile(path, now)
	if errors.Is(err, os.ErrNotExist) {
		return freetime.WeeklyTemplate{}, nil
	}
	if err != nil {
		return nil, err
	}
	logger.Printf("loaded busy template %s (%d weekdays)", path, len(tpl))
	return tpl, nil
}

func importCalendar(ctx context.Context, l *freetime.Ledger, from, to time.Time) (int, error) {
	switch {
	case cfg.Calendar.Credentials == "":
		return 0, nextuperrors.CalendarNotConfiguredError{Missing: "calendar.credentials"}
	case cfg.Calendar.Token == "":
		return 0, nextuperrors.CalendarNotConfiguredError{Missing: "calendar.token"}
	}

	ts, err := gcal.TokenSource(ctx, cfg.Calendar.Credentials, cfg.Calendar.Token)
	if err != nil {
		return 0, err
	}
	client, err := gcal.NewClient(ctx, ts, cfg.Calendar.ID)
	if err != nil {
		return 0, err
	}
	events, err := client.Events(ctx, from, to)
	if err != nil {
		return 0, err
	}
	n, err := gcal.RegisterEvents(l, events, from.Location())
	if err != nil {
		return 0, err
	}
	logger.Printf("imported %d calendar events from %s", n, cfg.Calendar.ID)
	return n, nil
}
