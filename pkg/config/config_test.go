package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()

	// Override the home directory environment variable for testing
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected default config, got %+v", cfg)
	}

	// 2. Modify and Save the config
	cfg.DataDir = "/tmp/class"
	cfg.Term = "2530"
	cfg.Departments = []string{"AIAA"}
	cfg.DefaultMajor = "DSBD"
	cfg.TermStart = "2026-02-02"
	cfg.AccentColor = "205"

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".coursectl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigDefaultsFillGaps(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".coursectl.json")
	if err := os.WriteFile(configPath, []byte(`{"majors": ["SMMG"], "term_weeks": 12}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultMajor != "SMMG" {
		t.Errorf("expected default major to follow the configured majors, got %q", cfg.DefaultMajor)
	}
	if cfg.TermWeeks != 12 {
		t.Errorf("expected configured term weeks to be kept, got %d", cfg.TermWeeks)
	}
	if cfg.DataDir != "class" || len(cfg.Departments) != len(DefaultDepartments) {
		t.Errorf("expected defaults for unset fields, got %+v", cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".coursectl.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestTermStartDate(t *testing.T) {
	cfg := Default()
	start, err := cfg.TermStartDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format("2006-01-02") != "2025-09-01" {
		t.Errorf("unexpected default term start %s", start)
	}

	cfg.TermStart = "01.09.2025"
	if _, err := cfg.TermStartDate(); err == nil {
		t.Errorf("expected error for a malformed date")
	}
	if err := ValidateDate("2026-02-30"); err == nil {
		t.Errorf("expected error for an impossible date")
	}
}
