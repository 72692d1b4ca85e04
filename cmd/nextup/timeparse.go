package main

import (
	"strconv"
	"strings"
	"time"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/storage"
)

const hoursPerDay = 24

// parseTime reads a CLI time argument relative to now: a duration ("90m",
// "2h"), a day count ("3d"), a clock time today ("17:30"), or one of the
// pending_until layouts.
func parseTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(d), nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return now.Add(time.Duration(n) * hoursPerDay * time.Hour), nil
		}
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	for _, layout := range []string{storage.PendingLayout, "2006/01/02 15:04", "2006/01/02"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, nextuperrors.InvalidTimeError{Value: s}
}
