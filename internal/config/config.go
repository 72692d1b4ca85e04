// Package config loads nextup settings from ~/.nextup/config.yaml and
// NEXTUP_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Dir is the default data directory name under the user's home.
const Dir = ".nextup"

// Config holds every setting nextup reads.
type Config struct {
	DataDir      string         `mapstructure:"data_dir"`
	BusyTemplate string         `mapstructure:"busy_template"`
	Timezone     string         `mapstructure:"timezone"`
	Calendar     CalendarConfig `mapstructure:"calendar"`
}

// CalendarConfig configures the Google Calendar busy-time import.
type CalendarConfig struct {
	ID          string `mapstructure:"id"`
	Credentials string `mapstructure:"credentials"`
	Token       string `mapstructure:"token"`
}

// DefaultPath returns ~/.nextup/config.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, Dir, "config.yaml")
}

func setDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()
	v.SetDefault("data_dir", filepath.Join(home, Dir))
	v.SetDefault("busy_template", "")
	v.SetDefault("timezone", "")
	v.SetDefault("calendar.id", "primary")
	v.SetDefault("calendar.credentials", "")
	v.SetDefault("calendar.token", "")
}

// Load reads the config file at path (DefaultPath when empty) and applies
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NEXTUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if readErr := v.ReadInConfig(); readErr != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, readErr)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.BusyTemplate = expandHome(cfg.BusyTemplate)
	if cfg.BusyTemplate == "" {
		cfg.BusyTemplate = filepath.Join(cfg.DataDir, "busy.yaml")
	}
	cfg.Calendar.Credentials = expandHome(cfg.Calendar.Credentials)
	cfg.Calendar.Token = expandHome(cfg.Calendar.Token)
	return cfg, nil
}

// Location resolves the configured timezone; empty or "Local" means the
// system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LogDir returns the directory log files are written to.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
