package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/dcsd/sim/trace"
)

// Result is the outcome of one engine run.
type Result struct {
	Histogram []uint64                // raw occupancy counts, length max(histogramLength,1)+1
	Metrics   RunMetrics              // run-wide statistics
	Trace     *trace.ConvergenceTrace // per-cycle records; empty unless tracing is enabled
}

// Engine drives the tenancy-admission loop: one draw and one admission per tick,
// recording occupancy after each admission until successive cycle snapshots agree
// within Delta or MaxCycles is reached.
//
// An Engine holds no state between runs; each Run builds its own tracker and
// histogram, so a single Engine may be run repeatedly (but not concurrently,
// since the sampler is shared).
type Engine struct {
	sampler         Sampler
	cfg             EngineConfig
	histogramLength int
}

// NewEngine validates cfg and returns an engine whose histogram covers
// occupancies 0..=max(histogramLength, 1). Every admission holds its slot for at
// least one tick, so occupancy 1 is always reachable even for all-zero tables.
func NewEngine(sampler Sampler, cfg EngineConfig, histogramLength int) (*Engine, error) {
	if sampler == nil {
		return nil, fmt.Errorf("engine requires a sampler")
	}
	if histogramLength < 0 {
		return nil, fmt.Errorf("histogram length must be non-negative, got %d", histogramLength)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if cfg.DistanceMode == "" {
		cfg.DistanceMode = DistanceFull
	}
	return &Engine{sampler: sampler, cfg: cfg, histogramLength: max(histogramLength, 1)}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// WarmupTicks resolves AutoWarmup against the histogram length.
func (e *Engine) WarmupTicks() int64 {
	if e.cfg.WarmupTicks == AutoWarmup {
		return int64(e.histogramLength)
	}
	return e.cfg.WarmupTicks
}

// Run executes warm-up and measurement. Hitting MaxCycles is not an error: the
// histogram is returned as-is with Metrics.Converged false.
func (e *Engine) Run() (*Result, error) {
	tracker := NewOccupancyTracker()
	hist := NewHistogram(e.histogramLength)
	ct := trace.NewConvergenceTrace(trace.TraceConfig{Level: e.cfg.TraceLevel})

	warmup := e.WarmupTicks()
	logrus.Infof("Starting DCSD simulation: capacity=%d, delta=%g, warmup=%d ticks, samplesPerCycle=%d, maxCycles=%d, buckets=%d",
		e.cfg.Capacity, e.cfg.Delta, warmup, e.cfg.SamplesPerCycle, e.cfg.MaxCycles, hist.Len())

	for i := int64(0); i < warmup; i++ {
		if err := tracker.Admit(e.sampler.Sample()); err != nil {
			return nil, fmt.Errorf("warm-up: %w", err)
		}
	}
	logrus.Debugf("Warm-up done at step %d with occupancy %d", tracker.Step(), tracker.Size())

	metrics := RunMetrics{WarmupTicks: warmup, Capacity: e.cfg.Capacity}
	previous := make([]uint64, hist.Len())
	admissionsPerCycle := e.cfg.SamplesPerCycle - 1

	for cycle := 1; cycle <= e.cfg.MaxCycles; cycle++ {
		var cycleExcess uint64
		for range admissionsPerCycle {
			if err := tracker.Admit(e.sampler.Sample()); err != nil {
				return nil, fmt.Errorf("cycle %d: %w", cycle, err)
			}
			cycleExcess += tracker.Excess(e.cfg.Capacity)
			if err := hist.Record(tracker.Size(), tracker.Step()); err != nil {
				return nil, fmt.Errorf("cycle %d: %w", cycle, err)
			}
		}

		distance := hist.DistanceFrom(previous, e.cfg.DistanceMode)
		metrics.Cycles = cycle
		metrics.TotalExcess += cycleExcess
		metrics.FinalDistance = distance
		ct.Record(trace.CycleRecord{Cycle: cycle, Tick: tracker.Step(), Distance: distance, Excess: cycleExcess})
		logrus.Debugf("Cycle %d: step=%d occupancy=%d distance=%.6f", cycle, tracker.Step(), tracker.Size(), distance)

		if distance < e.cfg.Delta {
			metrics.Converged = true
			break
		}
		previous = hist.Snapshot()
	}

	if metrics.Converged {
		logrus.Infof("Converged after %d cycles (distance=%.6f < delta=%g)", metrics.Cycles, metrics.FinalDistance, e.cfg.Delta)
	} else {
		logrus.Warnf("Cycle cap %d reached without convergence (last distance=%.6f, delta=%g); returning best-effort histogram",
			e.cfg.MaxCycles, metrics.FinalDistance, e.cfg.Delta)
	}

	metrics.MeasuredTicks = hist.Total()
	if metrics.MeasuredTicks > 0 {
		metrics.MeanExcess = float64(metrics.TotalExcess) / float64(metrics.MeasuredTicks)
	}
	metrics.PeakOccupancy = hist.Peak()
	metrics.MeanOccupancy = hist.Mean()

	return &Result{Histogram: hist.Counts(), Metrics: metrics, Trace: ct}, nil
}

// RunSimulation estimates the occupancy distribution with default warm-up, cycle
// size and cycle cap. It returns the unnormalized histogram (length
// histogramLength+1) and does not report whether convergence was reached.
func RunSimulation(sampler Sampler, capacity uint64, delta float64, histogramLength int) ([]uint64, error) {
	cfg := DefaultEngineConfig()
	cfg.Capacity = capacity
	cfg.Delta = delta
	engine, err := NewEngine(sampler, cfg, histogramLength)
	if err != nil {
		return nil, err
	}
	result, err := engine.Run()
	if err != nil {
		return nil, err
	}
	return result.Histogram, nil
}
