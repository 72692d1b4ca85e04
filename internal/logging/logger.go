// Package logging appends timestamped lines to <data_dir>/logs/nextup.log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Level tags a log line.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger appends timestamped lines to a log file. A nil Logger discards
// everything, so callers never need to check for one.
type Logger struct {
	w   io.WriteCloser
	now func() time.Time
}

// New creates (or reuses) nextup.log in logDir.
func New(logDir string) (*Logger, error) {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible log directory
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "nextup.log")
	//nolint:gosec // G302: 0644 is appropriate for user-readable log files
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{w: f, now: time.Now}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

// Printf writes a single INFO line.
func (l *Logger) Printf(format string, args ...any) {
	l.Logf(LevelInfo, format, args...)
}

// Warnf writes a single WARN line.
func (l *Logger) Warnf(format string, args ...any) {
	l.Logf(LevelWarn, format, args...)
}

// Errorf writes a single ERROR line.
func (l *Logger) Errorf(format string, args ...any) {
	l.Logf(LevelError, format, args...)
}

// Logf writes a single timestamped line at level.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	timestamp := l.now().Format(time.RFC3339)
	fmt.Fprintf(l.w, "[%s] %s %s\n", timestamp, level, line)
}
