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

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Population PopulationConfig `yaml:"population"`
	Creature   CreatureConfig   `yaml:"creature"`
	Food       FoodConfig       `yaml:"food"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Neural     NeuralConfig     `yaml:"neural"`
	Steering   SteeringConfig   `yaml:"steering"`
	Generation GenerationConfig `yaml:"generation"`
	Burst      BurstConfig      `yaml:"burst"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Sensors    SensorsConfig    `yaml:"sensors"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Parallel   ParallelConfig   `yaml:"parallel"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Width and height are also the world bounds.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"` // presentation only
}

// PopulationConfig holds population sizing.
type PopulationConfig struct {
	Initial int `yaml:"initial"` // also the per-generation target size
}

// CreatureConfig holds per-creature physical parameters.
type CreatureConfig struct {
	Radius      float64 `yaml:"radius"`
	BaseSpeed   float64 `yaml:"base_speed"`
	EnergyDecay float64 `yaml:"energy_decay"` // energy lost per frame
	MaxEnergy   float64 `yaml:"max_energy"`
}

// FoodConfig holds food parameters.
type FoodConfig struct {
	Radius     float64 `yaml:"radius"`
	EnergyGain float64 `yaml:"energy_gain"`
	MaxCount   int     `yaml:"max_count"`
}

// MutationConfig holds per-gene mutation parameters.
type MutationConfig struct {
	Chance         float64 `yaml:"chance"`
	NNAmount       float64 `yaml:"nn_amount"`
	ColorAmount    float64 `yaml:"color_amount"`
	TurnRateAmount float64 `yaml:"turn_rate_amount"`
}

// NeuralConfig holds brain topology.
type NeuralConfig struct {
	Hidden int `yaml:"hidden"`
}

// SteeringConfig bounds the heritable turning-rate gene (degrees per frame).
type SteeringConfig struct {
	MinTurnRate float64 `yaml:"min_turn_rate"`
	MaxTurnRate float64 `yaml:"max_turn_rate"`
}

// GenerationConfig controls generation length and selection.
type GenerationConfig struct {
	LengthFrames        int     `yaml:"length_frames"`
	SelectionPercentage float64 `yaml:"selection_percentage"`
	FoodLimit           int     `yaml:"food_limit"`
}

// BurstConfig holds speed burst parameters.
type BurstConfig struct {
	EnergyCost      float64 `yaml:"energy_cost"`
	DurationFrames  int     `yaml:"duration_frames"`
	Threshold       float64 `yaml:"threshold"` // burst output must exceed this
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	FitnessBonus    float64 `yaml:"fitness_bonus"`
}

// ObstacleConfig holds obstacle layout and penalties.
type ObstacleConfig struct {
	Count            int     `yaml:"count"`
	Size             float64 `yaml:"size"`
	MinSpawnDistance float64 `yaml:"min_spawn_distance"` // clearance kept between spawns and obstacle edges
	EnergyPenalty    float64 `yaml:"energy_penalty"`
	FitnessPenalty   float64 `yaml:"fitness_penalty"`
}

// SensorsConfig holds sensor normalization parameters.
type SensorsConfig struct {
	ViewDistance float64 `yaml:"view_distance"`
}

// SpawnConfig bounds placement retries before falling back to unchecked positions.
type SpawnConfig struct {
	MaxAttempts       int `yaml:"max_attempts"`
	OffspringAttempts int `yaml:"offspring_attempts"`
}

// RenderConfig holds presentation-only parameters.
type RenderConfig struct {
	FadeStep float64 `yaml:"fade_step"` // alpha lost per frame while dying
}

// TelemetryConfig holds generation logging parameters.
type TelemetryConfig struct {
	Enabled         bool   `yaml:"enabled"`
	LogDir          string `yaml:"log_dir"`
	LogFile         string `yaml:"log_file"`
	SnapshotParents bool   `yaml:"snapshot_parents"`
	HallOfFameSize  int    `yaml:"hall_of_fame_size"` // best parents kept across the run, 0 disables
}

// ParallelConfig controls the sense/decide worker pool.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum creatures before using workers
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	WorldW   float64
	WorldH   float64
	MaxSpeed float64 // base speed while bursting
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Set replaces the global configuration. Used after CLI overrides.
func Set(cfg *Config) {
	global = cfg
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values.
// Call it again after mutating fields in place.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.computeDerived()
	return nil
}

// Validate reports every out-of-range parameter at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Population.Initial >= 1, "population.initial must be >= 1, got %d", c.Population.Initial)

	check(c.Creature.Radius > 0, "creature.radius must be positive, got %g", c.Creature.Radius)
	check(c.Creature.BaseSpeed >= 0, "creature.base_speed must be >= 0, got %g", c.Creature.BaseSpeed)
	check(c.Creature.EnergyDecay >= 0, "creature.energy_decay must be >= 0, got %g", c.Creature.EnergyDecay)
	check(c.Creature.MaxEnergy > 0, "creature.max_energy must be positive, got %g", c.Creature.MaxEnergy)

	check(c.Food.Radius > 0, "food.radius must be positive, got %g", c.Food.Radius)
	check(c.Food.EnergyGain >= 0, "food.energy_gain must be >= 0, got %g", c.Food.EnergyGain)
	check(c.Food.MaxCount >= 0, "food.max_count must be >= 0, got %d", c.Food.MaxCount)

	check(c.Mutation.Chance >= 0 && c.Mutation.Chance <= 1, "mutation.chance must be in [0,1], got %g", c.Mutation.Chance)
	check(c.Mutation.NNAmount >= 0, "mutation.nn_amount must be >= 0, got %g", c.Mutation.NNAmount)
	check(c.Mutation.ColorAmount >= 0, "mutation.color_amount must be >= 0, got %g", c.Mutation.ColorAmount)
	check(c.Mutation.TurnRateAmount >= 0, "mutation.turn_rate_amount must be >= 0, got %g", c.Mutation.TurnRateAmount)

	check(c.Neural.Hidden >= 1, "neural.hidden must be >= 1, got %d", c.Neural.Hidden)

	check(c.Steering.MinTurnRate >= 0, "steering.min_turn_rate must be >= 0, got %g", c.Steering.MinTurnRate)
	check(c.Steering.MinTurnRate <= c.Steering.MaxTurnRate,
		"steering.min_turn_rate (%g) must not exceed max_turn_rate (%g)", c.Steering.MinTurnRate, c.Steering.MaxTurnRate)

	check(c.Generation.LengthFrames >= 1, "generation.length_frames must be >= 1, got %d", c.Generation.LengthFrames)
	check(c.Generation.SelectionPercentage > 0 && c.Generation.SelectionPercentage <= 1,
		"generation.selection_percentage must be in (0,1], got %g", c.Generation.SelectionPercentage)
	check(c.Generation.FoodLimit >= 1, "generation.food_limit must be >= 1, got %d", c.Generation.FoodLimit)

	check(c.Burst.EnergyCost >= 0, "burst.energy_cost must be >= 0, got %g", c.Burst.EnergyCost)
	check(c.Burst.DurationFrames >= 0, "burst.duration_frames must be >= 0, got %d", c.Burst.DurationFrames)
	check(c.Burst.SpeedMultiplier >= 1, "burst.speed_multiplier must be >= 1, got %g", c.Burst.SpeedMultiplier)
	check(c.Burst.FitnessBonus >= 0, "burst.fitness_bonus must be >= 0, got %g", c.Burst.FitnessBonus)

	check(c.Obstacles.Count >= 0, "obstacles.count must be >= 0, got %d", c.Obstacles.Count)
	check(c.Obstacles.Size > 0, "obstacles.size must be positive, got %g", c.Obstacles.Size)
	check(c.Obstacles.Size < float64(c.Screen.Width) && c.Obstacles.Size < float64(c.Screen.Height),
		"obstacles.size (%g) must fit inside the world", c.Obstacles.Size)
	check(c.Obstacles.MinSpawnDistance >= 0, "obstacles.min_spawn_distance must be >= 0, got %g", c.Obstacles.MinSpawnDistance)
	check(c.Obstacles.EnergyPenalty >= 0, "obstacles.energy_penalty must be >= 0, got %g", c.Obstacles.EnergyPenalty)
	check(c.Obstacles.FitnessPenalty >= 0, "obstacles.fitness_penalty must be >= 0, got %g", c.Obstacles.FitnessPenalty)

	check(c.Sensors.ViewDistance > 0, "sensors.view_distance must be positive, got %g", c.Sensors.ViewDistance)
	check(c.Spawn.MaxAttempts >= 1, "spawn.max_attempts must be >= 1, got %d", c.Spawn.MaxAttempts)
	check(c.Spawn.OffspringAttempts >= 0, "spawn.offspring_attempts must be >= 0, got %d", c.Spawn.OffspringAttempts)
	check(c.Telemetry.HallOfFameSize >= 0, "telemetry.hall_of_fame_size must be >= 0, got %d", c.Telemetry.HallOfFameSize)
	check(c.Render.FadeStep > 0, "render.fade_step must be positive, got %g", c.Render.FadeStep)
	check(c.Parallel.Threshold >= 1, "parallel.threshold must be >= 1, got %d", c.Parallel.Threshold)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW = float64(c.Screen.Width)
	c.Derived.WorldH = float64(c.Screen.Height)
	c.Derived.MaxSpeed = c.Creature.BaseSpeed * c.Burst.SpeedMultiplier
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
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
