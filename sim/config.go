package sim

import (
	"fmt"
	"math"

	"github.com/inference-sim/dcsd/sim/trace"
)

// AutoWarmup asks the engine to warm up for as many ticks as the longest tenancy.
// After that many admissions every live tenancy was drawn from the stationary
// distribution, so the empty-start transient is gone.
const AutoWarmup int64 = -1

// Defaults match the reference estimator.
const (
	DefaultCapacity        uint64  = 10
	DefaultDelta           float64 = 0.005
	DefaultSamplesPerCycle int     = 1024
	DefaultMaxCycles       int     = 100001
)

// EngineConfig groups the SimulationEngine's run parameters. It is read-only
// once the engine is built.
type EngineConfig struct {
	Capacity        uint64           // fixed capacity used for excess accounting
	Delta           float64          // convergence threshold on successive-snapshot distance
	WarmupTicks     int64            // ticks discarded before measuring (AutoWarmup = longest tenancy)
	SamplesPerCycle int              // draws per cycle; each cycle admits SamplesPerCycle-1 tenancies
	MaxCycles       int              // hard bound on measurement cycles
	DistanceMode    DistanceMode     // "full" (default) or "legacy"
	TraceLevel      trace.TraceLevel // "none" (default) or "cycles"
}

// DefaultEngineConfig returns the configuration used when nothing is overridden.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Capacity:        DefaultCapacity,
		Delta:           DefaultDelta,
		WarmupTicks:     AutoWarmup,
		SamplesPerCycle: DefaultSamplesPerCycle,
		MaxCycles:       DefaultMaxCycles,
		DistanceMode:    DistanceFull,
		TraceLevel:      trace.TraceLevelNone,
	}
}

// NewEngineConfig creates an EngineConfig with tracing disabled.
func NewEngineConfig(capacity uint64, delta float64, warmupTicks int64, samplesPerCycle, maxCycles int, mode DistanceMode) EngineConfig {
	return EngineConfig{
		Capacity:        capacity,
		Delta:           delta,
		WarmupTicks:     warmupTicks,
		SamplesPerCycle: samplesPerCycle,
		MaxCycles:       maxCycles,
		DistanceMode:    mode,
		TraceLevel:      trace.TraceLevelNone,
	}
}

// Validate checks parameter ranges.
func (c EngineConfig) Validate() error {
	if math.IsNaN(c.Delta) || math.IsInf(c.Delta, 0) || c.Delta < 0 {
		return fmt.Errorf("delta must be a non-negative finite number, got %v", c.Delta)
	}
	if c.WarmupTicks < AutoWarmup {
		return fmt.Errorf("warmup ticks must be >= 0 (or %d for auto), got %d", AutoWarmup, c.WarmupTicks)
	}
	if c.SamplesPerCycle < 2 {
		return fmt.Errorf("samples per cycle must be >= 2, got %d", c.SamplesPerCycle)
	}
	if c.MaxCycles < 1 {
		return fmt.Errorf("max cycles must be >= 1, got %d", c.MaxCycles)
	}
	if !validDistanceModes[c.DistanceMode] {
		return fmt.Errorf("unknown distance mode %q; valid: full, legacy", c.DistanceMode)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q; valid: none, cycles", c.TraceLevel)
	}
	return nil
}
