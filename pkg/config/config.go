package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	DataDir      string   `json:"data_dir,omitempty"`
	Term         string   `json:"term,omitempty"`
	Departments  []string `json:"departments,omitempty"`
	Majors       []string `json:"majors,omitempty"`
	DefaultMajor string   `json:"default_major,omitempty"`
	TermStart    string   `json:"term_start,omitempty"` // YYYY-MM-DD
	TermWeeks    int      `json:"term_weeks,omitempty"`
	Timezone     string   `json:"timezone,omitempty"`
	AccentColor  string   `json:"accent_color,omitempty"`
}

// Defaults used for every unset field
var (
	DefaultDepartments = []string{"AIAA", "DLED", "DSAA", "SMMG", "UCUG", "UFUG"}
	DefaultMajors      = []string{"AI", "DSBD", "SMMG"}
)

const (
	defaultDataDir   = "class"
	defaultTerm      = "2510"
	defaultTermStart = "2025-09-01"
	defaultTermWeeks = 15
	defaultTimezone  = "Asia/Shanghai"
	dateLayout       = "2006-01-02"
)

// getConfigPath returns the absolute path to ~/.coursectl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".coursectl.json"), nil
}

// Load reads the application configuration from disk.
// Returns the defaults if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Default returns a configuration with every field set to its default
func Default() *AppConfig {
	cfg := &AppConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *AppConfig) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.Term == "" {
		c.Term = defaultTerm
	}
	if len(c.Departments) == 0 {
		c.Departments = append([]string(nil), DefaultDepartments...)
	}
	if len(c.Majors) == 0 {
		c.Majors = append([]string(nil), DefaultMajors...)
	}
	if c.DefaultMajor == "" && len(c.Majors) > 0 {
		c.DefaultMajor = c.Majors[0]
	}
	if c.TermStart == "" {
		c.TermStart = defaultTermStart
	}
	if c.TermWeeks <= 0 {
		c.TermWeeks = defaultTermWeeks
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
}

// Location resolves the configured timezone
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// TermStartDate parses the configured first day of teaching
func (c *AppConfig) TermStartDate() (time.Time, error) {
	t, err := time.Parse(dateLayout, c.TermStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid term start %q (want YYYY-MM-DD): %w", c.TermStart, err)
	}
	return t, nil
}

// ValidateDate checks a YYYY-MM-DD date string
func ValidateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("must be a date like %s", defaultTermStart)
	}
	return nil
}
