// Package sim estimates the steady-state distribution of concurrently occupied
// slots (the Dynamic Concurrency/Cache-Size Distribution, DCSD) by discrete-event
// Monte Carlo simulation over an empirical tenancy-length distribution.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - sampler.go: WeightedSampler draws tenancy lengths from an EmpiricalDistribution
//   - tracker.go: OccupancyTracker, a sparse expiration schedule advanced one tick per admission
//   - engine.go: warm-up, measurement cycles and the convergence test
//
// # Architecture
//
// Each engine run owns one tracker and one histogram. On every tick the engine
// draws a tenancy, admits it (which first releases everything due at the new
// step) and records the resulting occupancy. After each cycle of
// SamplesPerCycle-1 ticks it compares the histogram with the previous cycle's
// snapshot using TotalVariationDistance and stops once the distance falls below
// Delta, or after MaxCycles cycles.
//
// Sub-packages:
//   - sim/workload/: CSV input of empirical tenancy tables, CSV/YAML output of results,
//     synthetic tenancy tables from parametric distributions
//   - sim/trace/: per-cycle convergence records
//
// Failures are reported through ErrInvalidDistribution, ErrMalformedInput and
// ErrInternalConsistency; none of them is retried.
package sim
