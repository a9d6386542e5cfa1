package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lodgenet/emissions-backend-go/internal/emissions"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("US_ZIP_PATH", "")

	cfg := Load()
	if cfg.DBPath != "./data/emissions.db" {
		t.Errorf("expected default db path, got %s", cfg.DBPath)
	}
	if cfg.USZipPath != "" {
		t.Errorf("expected empty gazetteer path, got %s", cfg.USZipPath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/other.db")
	cfg := Load()
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("expected env override, got %s", cfg.DBPath)
	}
}

func TestLoadScenariosDefaultSet(t *testing.T) {
	scs, err := LoadScenarios("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scs) != 4 {
		t.Errorf("expected 4 default scenarios, got %d", len(scs))
	}
}

func TestLoadScenariosFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	content := `scenarios:
  - name: ghg40
    ratio: 0.4
  - name: school
    ratio: 0.3
    bus: group
    parameters:
      group_types: ["school-trip"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}

	scs, err := LoadScenarios(path)
	if err != nil {
		t.Fatalf("failed to load scenarios: %v", err)
	}
	if len(scs) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(scs))
	}

	// Empty parameter blocks inherit the calibrated defaults
	defaults := emissions.DefaultParameters()
	if scs[0].Parameters.CarFactor != defaults.CarFactor {
		t.Errorf("expected default car factor, got %v", scs[0].Parameters.CarFactor)
	}
	if scs[0].Bus != emissions.BusModeNone {
		t.Errorf("expected default bus mode, got %s", scs[0].Bus)
	}

	// Custom group types survive the default inheritance
	if scs[1].Bus != emissions.BusModeGroup {
		t.Errorf("expected group bus mode, got %s", scs[1].Bus)
	}
	if len(scs[1].Parameters.GroupTypes) != 1 || scs[1].Parameters.GroupTypes[0] != "school-trip" {
		t.Errorf("expected custom group types kept, got %v", scs[1].Parameters.GroupTypes)
	}
}

func TestLoadScenariosRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	if err := os.WriteFile(path, []byte("scenarios: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	if _, err := LoadScenarios(path); err == nil {
		t.Error("expected error for empty scenario list")
	}

	if _, err := LoadScenarios(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
