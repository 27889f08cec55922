package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexpath.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "grid:\n  radius: 7\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Grid.Radius != 7 {
		t.Fatalf("radius = %d, want 7", cfg.Grid.Radius)
	}
	if cfg.Maze.Density != 0.45 {
		t.Fatalf("default density = %g, want 0.45", cfg.Maze.Density)
	}
	if cfg.Server.TickRate != 30 {
		t.Fatalf("default tick rate = %d, want 30", cfg.Server.TickRate)
	}
	if cfg.Visualizer.StepsPerTick != 1 {
		t.Fatalf("default steps per tick = %d, want 1", cfg.Visualizer.StepsPerTick)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"grid:\n  radius: 1\n",
		"maze:\n  density: 1.2\n",
		"server:\n  tick_rate: -5\n",
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("expected validation error for %q", body)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
