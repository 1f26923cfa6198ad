// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultPath is the configuration file read when no -config flag is given.
const DefaultPath = "snailSim2.json"

var (
	// ErrMissingField is returned when a required key is absent from the config file.
	ErrMissingField = errors.New("missing required config field")
	// ErrInvalid is returned when a loaded value is out of range.
	ErrInvalid = errors.New("invalid config")
)

// RequiredFields lists the keys every config file must define.
var RequiredFields = []string{
	"foodRegen",
	"maxFood",
	"initialFood",
	"swampWidth",
	"swampLength",
	"maturityAge",
	"maxAge",
	"minOffspring",
	"maxOffspring",
}

// Config holds all simulation configuration parameters.
// The flat camelCase fields match the JSON file; the nested sections are
// optional and fall back to embedded defaults.
type Config struct {
	FoodRegen    int `yaml:"foodRegen"`    // Swamp-wide food regrowth per tick, split by region share
	MaxFood      int `yaml:"maxFood"`      // Swamp-wide food cap, split by region share
	InitialFood  int `yaml:"initialFood"`  // Swamp-wide starting food, split by region share
	SwampWidth   int `yaml:"swampWidth"`   // Half-width of the world bounds
	SwampLength  int `yaml:"swampLength"`  // Half-length of the world bounds
	MaturityAge  int `yaml:"maturityAge"`  // Snails older than this may reproduce
	MaxAge       int `yaml:"maxAge"`       // Snails older than this die
	MinOffspring int `yaml:"minOffspring"` // Offspring range lower bound
	MaxOffspring int `yaml:"maxOffspring"` // Offspring range upper bound (scaled by health)

	Regions  []RegionConfig `yaml:"regions"`
	Predator PredatorConfig `yaml:"predator"`
	Snail    SnailConfig    `yaml:"snail"`
	Sweep    SweepConfig    `yaml:"sweep"`
	Output   OutputConfig   `yaml:"output"`
}

// RegionConfig describes one square food zone.
type RegionConfig struct {
	Name       string `yaml:"name"`
	CenterX    int    `yaml:"centerX"`
	CenterY    int    `yaml:"centerY"`
	HalfLength int    `yaml:"halfLength"`
	FoodShare  int    `yaml:"foodShare"` // Percent of the swamp-wide food figures this region receives
}

// PredatorConfig places the single predator.
type PredatorConfig struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	MaxAge int    `yaml:"maxAge"` // Carried for parity; no behavior reads it
}

// SnailConfig holds the snail lifecycle constants.
type SnailConfig struct {
	InitialHealth   int `yaml:"initialHealth"`
	MaxHealth       int `yaml:"maxHealth"`
	StarvationLimit int `yaml:"starvationLimit"` // Dies once consecutive starved ticks exceed this
	MealCap         int `yaml:"mealCap"`
	MealDivisor     int `yaml:"mealDivisor"` // Meal size = age / MealDivisor, capped at MealCap
}

// SweepConfig holds the parameter sweep ranges. End bounds are exclusive.
type SweepConfig struct {
	ReproStart int `yaml:"reproStart"`
	ReproEnd   int `yaml:"reproEnd"`
	PredStart  int `yaml:"predStart"`
	PredEnd    int `yaml:"predEnd"`
	Step       int `yaml:"step"`
}

// OutputConfig names the result files.
type OutputConfig struct {
	Results        string `yaml:"results"`
	Positions      string `yaml:"positions"`
	WritePositions bool   `yaml:"writePositions"`
	Trajectory     string `yaml:"trajectory"` // Empty disables the per-tick trajectory file
	Store          string `yaml:"store"`      // "csv" or "sqlite"
	SQLitePath     string `yaml:"sqlitePath"`
}

// Combinations returns the number of (reproProb, predProb) pairs the sweep visits.
func (s SweepConfig) Combinations() int {
	if s.Step <= 0 {
		return 0
	}
	repro := (s.ReproEnd - s.ReproStart + s.Step - 1) / s.Step
	pred := (s.PredEnd - s.PredStart + s.Step - 1) / s.Step
	if repro <= 0 || pred <= 0 {
		return 0
	}
	return repro * pred
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded optional sections with every required field zero.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load reads a JSON (or YAML) config file and merges it over the embedded defaults.
// Every key in RequiredFields must be present in the file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no config path given", ErrMissingField)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes config bytes the same way Load does.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	for _, key := range RequiredFields {
		if v, ok := raw[key]; !ok || v == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}
	// Unmarshal into same struct - only overwrites fields present in file
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the simulation relies on.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.SwampWidth <= 0 || c.SwampLength <= 0 {
		bad("swamp bounds must be positive, got %dx%d", c.SwampWidth, c.SwampLength)
	}
	if c.FoodRegen < 0 || c.MaxFood < 0 || c.InitialFood < 0 {
		bad("food values must be non-negative")
	}
	if c.MaxAge <= 0 {
		bad("maxAge must be positive, got %d", c.MaxAge)
	}
	if c.MaturityAge < 0 {
		bad("maturityAge must be non-negative, got %d", c.MaturityAge)
	}
	if c.MinOffspring < 0 || c.MaxOffspring < c.MinOffspring {
		bad("offspring range [%d, %d] is not valid", c.MinOffspring, c.MaxOffspring)
	}

	if len(c.Regions) == 0 {
		bad("at least one region is required")
	}
	for i, r := range c.Regions {
		if r.HalfLength < 0 {
			bad("region %d half-length must be non-negative", i)
		}
		if r.FoodShare < 0 || r.FoodShare > 100 {
			bad("region %d food share %d outside [0, 100]", i, r.FoodShare)
		}
	}

	s := c.Snail
	if s.InitialHealth < 1 || s.MaxHealth < s.InitialHealth {
		bad("snail health range [1, %d] with initial %d is not valid", s.MaxHealth, s.InitialHealth)
	}
	if s.StarvationLimit < 0 || s.MealCap < 0 || s.MealDivisor <= 0 {
		bad("snail feeding constants must be positive")
	}

	w := c.Sweep
	if w.Step <= 0 || w.ReproStart < 1 || w.PredStart < 1 || w.ReproStart >= w.ReproEnd || w.PredStart >= w.PredEnd {
		bad("sweep ranges repro [%d,%d) pred [%d,%d) step %d are not valid",
			w.ReproStart, w.ReproEnd, w.PredStart, w.PredEnd, w.Step)
	}

	switch c.Output.Store {
	case "", "csv", "sqlite":
	default:
		bad("unknown result store %q", c.Output.Store)
	}

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
