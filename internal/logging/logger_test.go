//nolint:testpackage // Tests require internal access for thorough testing
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesLines(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	l, err := New(logDir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	l.Printf("moved %s under %s\n", "abc", "def")
	l.Warnf("skipped %d events", 2)
	l.Errorf("load failed")
	if err = l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "nextup.log"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{
		"[2024-03-01T09:00:00Z] INFO moved abc under def",
		"[2024-03-01T09:00:00Z] WARN skipped 2 events",
		"[2024-03-01T09:00:00Z] ERROR load failed",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLoggerAppends(t *testing.T) {
	logDir := t.TempDir()
	for _, msg := range []string{"first", "second"} {
		l, err := New(logDir)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		l.Printf("%s", msg)
		_ = l.Close()
	}

	data, err := os.ReadFile(filepath.Join(logDir, "nextup.log"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Errorf("log = %q, want two lines", data)
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Printf("ignored")
	l.Errorf("ignored")
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil logger = %v, want nil", err)
	}
}
