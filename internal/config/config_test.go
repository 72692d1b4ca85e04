//nolint:testpackage // Tests require internal access for thorough testing
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantData := filepath.Join(home, Dir)
	if cfg.DataDir != wantData {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, wantData)
	}
	if want := filepath.Join(wantData, "busy.yaml"); cfg.BusyTemplate != want {
		t.Errorf("BusyTemplate = %q, want %q", cfg.BusyTemplate, want)
	}
	if cfg.Calendar.ID != "primary" {
		t.Errorf("Calendar.ID = %q, want primary", cfg.Calendar.ID)
	}
	if cfg.LogDir() != filepath.Join(wantData, "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir())
	}
}

func TestLoadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	content := `data_dir: ~/tasks
timezone: Europe/Berlin
calendar:
  id: work@example.com
  credentials: ~/secrets/client.json
  token: /etc/nextup/token.json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"data_dir", cfg.DataDir, filepath.Join(home, "tasks")},
		{"busy_template", cfg.BusyTemplate, filepath.Join(home, "tasks", "busy.yaml")},
		{"timezone", cfg.Timezone, "Europe/Berlin"},
		{"calendar.id", cfg.Calendar.ID, "work@example.com"},
		{"calendar.credentials", cfg.Calendar.Credentials, filepath.Join(home, "secrets", "client.json")},
		{"calendar.token", cfg.Calendar.Token, "/etc/nextup/token.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(path, []byte("calendar:\n  id: from-file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("NEXTUP_CALENDAR_ID", "from-env")
	t.Setenv("NEXTUP_BUSY_TEMPLATE", "/srv/busy.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Calendar.ID != "from-env" {
		t.Errorf("Calendar.ID = %q, want from-env", cfg.Calendar.ID)
	}
	if cfg.BusyTemplate != "/srv/busy.yaml" {
		t.Errorf("BusyTemplate = %q, want /srv/busy.yaml", cfg.BusyTemplate)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     *time.Location
		wantErr  bool
	}{
		{"empty is local", "", time.Local, false},
		{"local keyword", "Local", time.Local, false},
		{"utc", "UTC", time.UTC, false},
		{"unknown zone", "Mars/Olympus_Mons", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Timezone: tt.timezone}
			loc, err := cfg.Location()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Location() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && loc.String() != tt.want.String() {
				t.Errorf("Location() = %v, want %v", loc, tt.want)
			}
		})
	}
}
