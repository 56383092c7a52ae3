package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every RunConfig environment variable.
const EnvPrefix = "DCSD_"

// RunConfig holds run parameters loadable from a YAML file and DCSD_* environment
// variables. Nil pointer fields mean "not set": they leave the EngineConfig default
// untouched. String fields use empty string for "not set".
type RunConfig struct {
	Input   string `yaml:"input" env:"INPUT"`
	Output  string `yaml:"output" env:"OUTPUT"`
	Summary string `yaml:"summary" env:"SUMMARY"`
	Trace   string `yaml:"trace" env:"TRACE"`

	Capacity        *uint64  `yaml:"capacity" env:"CAPACITY"`
	Delta           *float64 `yaml:"delta" env:"DELTA"`
	WarmupTicks     *int64   `yaml:"warmup_ticks" env:"WARMUP_TICKS"`
	SamplesPerCycle *int     `yaml:"samples_per_cycle" env:"SAMPLES_PER_CYCLE"`
	MaxCycles       *int     `yaml:"max_cycles" env:"MAX_CYCLES"`
	Distance        string   `yaml:"distance" env:"DISTANCE"`
	Seed            *int64   `yaml:"seed" env:"SEED"`
}

// LoadRunConfig reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// OverlayEnv overrides fields from DCSD_* environment variables. Unset variables
// leave the current value alone.
func (c *RunConfig) OverlayEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the distance mode and parameter ranges are valid.
func (c *RunConfig) Validate() error {
	if !IsValidDistanceMode(c.Distance) {
		return fmt.Errorf("unknown distance mode %q; valid: full, legacy", c.Distance)
	}
	if c.Delta != nil && (*c.Delta < 0 || math.IsNaN(*c.Delta) || math.IsInf(*c.Delta, 0)) {
		return fmt.Errorf("delta must be a non-negative finite number, got %v", *c.Delta)
	}
	if c.WarmupTicks != nil && *c.WarmupTicks < AutoWarmup {
		return fmt.Errorf("warmup_ticks must be >= 0 (or %d for auto), got %d", AutoWarmup, *c.WarmupTicks)
	}
	if c.SamplesPerCycle != nil && *c.SamplesPerCycle < 2 {
		return fmt.Errorf("samples_per_cycle must be >= 2, got %d", *c.SamplesPerCycle)
	}
	if c.MaxCycles != nil && *c.MaxCycles < 1 {
		return fmt.Errorf("max_cycles must be >= 1, got %d", *c.MaxCycles)
	}
	return nil
}

// Apply copies every set field onto cfg.
func (c *RunConfig) Apply(cfg *EngineConfig) {
	if c.Capacity != nil {
		cfg.Capacity = *c.Capacity
	}
	if c.Delta != nil {
		cfg.Delta = *c.Delta
	}
	if c.WarmupTicks != nil {
		cfg.WarmupTicks = *c.WarmupTicks
	}
	if c.SamplesPerCycle != nil {
		cfg.SamplesPerCycle = *c.SamplesPerCycle
	}
	if c.MaxCycles != nil {
		cfg.MaxCycles = *c.MaxCycles
	}
	if c.Distance != "" {
		cfg.DistanceMode = DistanceMode(c.Distance)
	}
}
