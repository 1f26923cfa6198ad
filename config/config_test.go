package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validJSON = `{
	"foodRegen": 100,
	"maxFood": 5000,
	"initialFood": 2000,
	"swampWidth": 250,
	"swampLength": 250,
	"maturityAge": 20,
	"maxAge": 100,
	"minOffspring": 1,
	"maxOffspring": 3
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snailSim2.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMergesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.FoodRegen != 100 || cfg.MaxAge != 100 || cfg.MaxOffspring != 3 {
		t.Errorf("required fields not decoded: %+v", cfg)
	}
	if len(cfg.Regions) != 4 {
		t.Fatalf("expected 4 default regions, got %d", len(cfg.Regions))
	}
	if cfg.Regions[0].CenterX != 125 || cfg.Regions[0].CenterY != -125 || cfg.Regions[0].FoodShare != 30 {
		t.Errorf("region1 default = %+v", cfg.Regions[0])
	}
	if cfg.Predator.X != 125 || cfg.Predator.Y != 125 {
		t.Errorf("predator default = %+v", cfg.Predator)
	}
	if cfg.Sweep.ReproStart != 10 || cfg.Sweep.ReproEnd != 110 || cfg.Sweep.PredStart != 25 || cfg.Sweep.PredEnd != 125 {
		t.Errorf("sweep default = %+v", cfg.Sweep)
	}
	if got := cfg.Sweep.Combinations(); got != 100*100 {
		t.Errorf("Combinations() = %d, want 10000", got)
	}
}

func TestLoadMissingField(t *testing.T) {
	for _, key := range RequiredFields {
		t.Run(key, func(t *testing.T) {
			body := strings.Replace(validJSON, `"`+key+`"`, `"x_`+key+`"`, 1)
			_, err := Load(writeConfig(t, body))
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("Load without %s: err = %v, want ErrMissingField", key, err)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not name %s", err, key)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load(""); !errors.Is(err, ErrMissingField) {
		t.Fatalf("Load(\"\") err = %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(writeConfig(t, `{"foodRegen": `)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOverridesSection(t *testing.T) {
	body := strings.TrimSuffix(strings.TrimSpace(validJSON), "}") +
		`, "sweep": {"reproStart": 5, "reproEnd": 7, "predStart": 1, "predEnd": 2, "step": 1}}`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Sweep.Combinations(); got != 2 {
		t.Errorf("Combinations() = %d, want 2", got)
	}
	// Untouched sections keep their defaults
	if cfg.Snail.StarvationLimit != 10 {
		t.Errorf("StarvationLimit = %d, want 10", cfg.Snail.StarvationLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.SwampWidth = 0 }},
		{"zero max age", func(c *Config) { c.MaxAge = 0 }},
		{"inverted offspring", func(c *Config) { c.MinOffspring, c.MaxOffspring = 3, 1 }},
		{"negative food", func(c *Config) { c.InitialFood = -1 }},
		{"no regions", func(c *Config) { c.Regions = nil }},
		{"share over 100", func(c *Config) { c.Regions[0].FoodShare = 120 }},
		{"empty sweep", func(c *Config) { c.Sweep.ReproEnd = c.Sweep.ReproStart }},
		{"zero repro start", func(c *Config) { c.Sweep.ReproStart = 0 }},
		{"unknown store", func(c *Config) { c.Output.Store = "parquet" }},
		{"zero meal divisor", func(c *Config) { c.Snail.MealDivisor = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(validJSON))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(validJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if back.MaxFood != cfg.MaxFood || len(back.Regions) != len(cfg.Regions) {
		t.Errorf("snapshot mismatch: %+v vs %+v", back, cfg)
	}
}
