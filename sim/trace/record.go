// Package trace records per-cycle convergence data for a simulation run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// CycleRecord captures the state of the estimator at the end of one measurement cycle.
type CycleRecord struct {
	Cycle    int     // 1-based cycle number
	Tick     uint64  // tracker step at the end of the cycle
	Distance float64 // distance between this cycle's histogram and the previous snapshot
	Excess   uint64  // excess occupancy above capacity accumulated during the cycle
}
