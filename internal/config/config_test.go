package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir, "home")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(cfg.TasksPath()); err != nil {
		t.Errorf("tasks dir not created: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Board.Name != "home" {
		t.Errorf("board name = %q", loaded.Board.Name)
	}
	if got := len(loaded.Categories); got != len(DefaultCategories) {
		t.Errorf("categories = %d, want %d", got, len(DefaultCategories))
	}
	if loaded.CategoryIndex("work") != 6 {
		t.Errorf("work index = %d", loaded.CategoryIndex("work"))
	}
	if loaded.RefreshInterval() != 30*time.Second {
		t.Errorf("refresh = %s", loaded.RefreshInterval())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(empty) err = %v, want ErrNotFound", err)
	}
}

func TestMigrateV1(t *testing.T) {
	dir := t.TempDir()
	v1 := `version: 1
board:
  name: old
tasks_dir: tasks
categories:
  - id: personal
    name: Personal
defaults:
  category: personal
  priority: medium
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != CurrentVersion || cfg.LocationName != DefaultLocation || cfg.TUI.Refresh != DefaultRefresh {
		t.Errorf("migrated = version %d location %q refresh %q", cfg.Version, cfg.LocationName, cfg.TUI.Refresh)
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version: 2") {
		t.Errorf("migrated config not persisted:\n%s", data)
	}
}

func TestMigrateNewerVersion(t *testing.T) {
	cfg := NewDefault("x")
	cfg.Version = CurrentVersion + 1
	if err := migrate(cfg); !errors.Is(err, ErrInvalid) {
		t.Errorf("migrate(newer) err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ok", func(*Config) {}, ""},
		{"no name", func(c *Config) { c.Board.Name = "" }, "board.name"},
		{"no categories", func(c *Config) { c.Categories = nil }, "at least 1 category"},
		{"duplicate category", func(c *Config) {
			c.Categories = append(c.Categories, CategoryConfig{ID: "work", Name: "Work again"})
		}, "duplicate"},
		{"bad default category", func(c *Config) { c.Defaults.Category = "gym" }, "default category"},
		{"bad default priority", func(c *Config) { c.Defaults.Priority = "critical" }, "default priority"},
		{"bad location", func(c *Config) { c.LocationName = "Mars/Olympus" }, "location"},
		{"refresh too fast", func(c *Config) { c.TUI.Refresh = "100ms" }, "tui.refresh"},
		{"refresh too slow", func(c *Config) { c.TUI.Refresh = "5m" }, "tui.refresh"},
		{"refresh garbage", func(c *Config) { c.TUI.Refresh = "soon" }, "tui.refresh"},
		{"utc location", func(c *Config) { c.LocationName = "UTC" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("board")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err does not wrap ErrInvalid: %v", err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := NewDefault("b")
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("default location = %v, %v", loc, err)
	}
	cfg.LocationName = "UTC"
	loc, err = cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("UTC location = %v, %v", loc, err)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(filepath.Join(root, DefaultDir), "b"); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := FindDir(nested)
	if err != nil {
		t.Fatalf("FindDir: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, DefaultDir))
	if got != want {
		t.Errorf("FindDir = %q, want %q", got, want)
	}
}
