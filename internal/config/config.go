// Package config loads scalehouse settings: built-in defaults, then the
// TOML config file, then SCALEHOUSE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/alexanderramin/scalehouse/internal/timeline"
)

// Config holds all user-tunable settings.
type Config struct {
	DBPath             string  `toml:"db_path"`
	WeekStart          string  `toml:"week_start"`
	DefaultZoom        string  `toml:"default_zoom"`
	MinBarWidthPercent float64 `toml:"min_bar_width_percent"`
	ChangedBy          string  `toml:"changed_by"`
	LogUseCases        bool    `toml:"log_use_cases"`
	WatchDB            bool    `toml:"watch_db"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DBPath:             DefaultDBPath(),
		WeekStart:          "sunday",
		DefaultZoom:        string(domain.ZoomMonth),
		MinBarWidthPercent: timeline.DefaultMinWidthPercent,
		ChangedBy:          domain.CoalesceStr(os.Getenv("USER"), os.Getenv("USERNAME"), "scalehouse"),
		WatchDB:            true,
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if env := os.Getenv("SCALEHOUSE_CONFIG"); env != "" {
		return ExpandHome(env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scalehouse", "config.toml")
	}
	return filepath.Join(homeDir(), ".config", "scalehouse", "config.toml")
}

// DefaultDBPath returns ~/.scalehouse/scalehouse.db.
func DefaultDBPath() string {
	return filepath.Join(homeDir(), ".scalehouse", "scalehouse.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return os.TempDir()
	}
	return home
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file is not an error. Precedence is env > file > defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg)
	cfg.DBPath = ExpandHome(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCALEHOUSE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SCALEHOUSE_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SCALEHOUSE_WEEK_START"); v != "" {
		cfg.WeekStart = v
	}
	if v := os.Getenv("SCALEHOUSE_ZOOM"); v != "" {
		cfg.DefaultZoom = v
	}
	if v := os.Getenv("SCALEHOUSE_CHANGED_BY"); v != "" {
		cfg.ChangedBy = v
	}
	if v := os.Getenv("SCALEHOUSE_WATCH_DB"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.WatchDB = b
		}
	}
}

// Validate rejects values the rest of the program cannot interpret.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path must not be empty")
	}
	if _, ok := parseWeekday(c.WeekStart); !ok {
		return fmt.Errorf("config: week_start %q must be sunday or monday", c.WeekStart)
	}
	if _, ok := domain.ParseZoomLevel(c.DefaultZoom); !ok {
		return fmt.Errorf("config: default_zoom %q must be one of day, week, month, year", c.DefaultZoom)
	}
	if c.MinBarWidthPercent < 0 || c.MinBarWidthPercent > 100 {
		return fmt.Errorf("config: min_bar_width_percent %v must be between 0 and 100", c.MinBarWidthPercent)
	}
	return nil
}

// Weekday returns the configured first day of the week.
func (c *Config) Weekday() time.Weekday {
	d, _ := parseWeekday(c.WeekStart)
	return d
}

// Zoom returns the configured starting zoom level.
func (c *Config) Zoom() domain.ZoomLevel {
	z, ok := domain.ParseZoomLevel(c.DefaultZoom)
	if !ok {
		return domain.ZoomMonth
	}
	return z
}

func parseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	}
	return time.Sunday, false
}
