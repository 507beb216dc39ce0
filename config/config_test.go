package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Population.Initial != 50 {
		t.Errorf("population.initial = %d, want 50", cfg.Population.Initial)
	}
	if cfg.Neural.Hidden != 4 {
		t.Errorf("neural.hidden = %d, want 4", cfg.Neural.Hidden)
	}
	if cfg.Derived.WorldW != 1000 || cfg.Derived.WorldH != 700 {
		t.Errorf("derived world = %fx%f, want 1000x700", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if want := 2.0 * 1.8; cfg.Derived.MaxSpeed != want {
		t.Errorf("derived max speed = %f, want %f", cfg.Derived.MaxSpeed, want)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "neural:\n  hidden: 6\ngeneration:\n  food_limit: 10\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Neural.Hidden != 6 {
		t.Errorf("neural.hidden = %d, want 6", cfg.Neural.Hidden)
	}
	if cfg.Generation.FoodLimit != 10 {
		t.Errorf("generation.food_limit = %d, want 10", cfg.Generation.FoodLimit)
	}
	// Untouched fields keep their defaults
	if cfg.Generation.LengthFrames != 500 {
		t.Errorf("generation.length_frames = %d, want 500", cfg.Generation.LengthFrames)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("error = %q, want it to mention reading config file", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults ok", func(c *Config) {}, ""},
		{"selection zero", func(c *Config) { c.Generation.SelectionPercentage = 0 }, "selection_percentage"},
		{"selection above one", func(c *Config) { c.Generation.SelectionPercentage = 1.5 }, "selection_percentage"},
		{"selection one ok", func(c *Config) { c.Generation.SelectionPercentage = 1 }, ""},
		{"negative decay", func(c *Config) { c.Creature.EnergyDecay = -1 }, "energy_decay"},
		{"negative burst cost", func(c *Config) { c.Burst.EnergyCost = -0.5 }, "energy_cost"},
		{"zero hidden", func(c *Config) { c.Neural.Hidden = 0 }, "neural.hidden"},
		{"turn rate inverted", func(c *Config) { c.Steering.MinTurnRate = 20 }, "min_turn_rate"},
		{"mutation chance", func(c *Config) { c.Mutation.Chance = 2 }, "mutation.chance"},
		{"obstacle too big", func(c *Config) { c.Obstacles.Size = 5000 }, "fit inside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Neural.Hidden = 0
	cfg.Creature.MaxEnergy = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "neural.hidden") || !strings.Contains(msg, "max_energy") {
		t.Errorf("error %q should list both problems", msg)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Mutation.Chance = 0.25
	path := filepath.Join(t.TempDir(), "out.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Mutation.Chance != 0.25 {
		t.Errorf("mutation.chance = %f, want 0.25", loaded.Mutation.Chance)
	}
}
