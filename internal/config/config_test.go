package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SQLITE_PATH", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.Database.SQLitePath != "railtracker.db" {
		t.Errorf("expected default db path, got %q", cfg.Database.SQLitePath)
	}
	if cfg.Chart.Route != "Karlsruhe -> Munich" || cfg.Chart.Currency != "" {
		t.Errorf("unexpected chart defaults: %+v", cfg.Chart)
	}
	if cfg.Chart.Width != 1200 || cfg.Chart.Height != 600 {
		t.Errorf("unexpected size %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("expected UTC by default, got %s", cfg.Location())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railtracker.yaml")
	data := []byte(`database:
  sqlite_path: data/prices.db
chart:
  route: Berlin -> Hamburg
  width: 800
  timezone: Europe/Berlin
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SQLITE_PATH", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.SQLitePath != "data/prices.db" || cfg.Chart.Route != "Berlin -> Hamburg" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("unexpected location %s", cfg.Location())
	}

	t.Setenv("SQLITE_PATH", "/tmp/other.db")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.SQLitePath != "/tmp/other.db" {
		t.Errorf("env override not applied, got %q", cfg.Database.SQLitePath)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("chart: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Database.SQLitePath = "x.db"
	cfg.Chart.Width, cfg.Chart.Height = 100, 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero height")
	}
	cfg.Chart.Height = 100
	cfg.Chart.Timezone = "Nowhere/Special"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown time zone")
	}
}
