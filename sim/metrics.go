// Tracks run-wide statistics of a DCSD estimation.

package sim

import (
	"fmt"
	"io"
)

// RunMetrics aggregates statistics about one simulation run for final reporting.
type RunMetrics struct {
	WarmupTicks   int64   `yaml:"warmup_ticks"`   // ticks admitted before measuring
	MeasuredTicks uint64  `yaml:"measured_ticks"` // ticks recorded into the histogram
	Cycles        int     `yaml:"cycles"`         // measurement cycles completed
	Converged     bool    `yaml:"converged"`      // false when the cycle cap ended the run
	FinalDistance float64 `yaml:"final_distance"` // distance observed after the last cycle
	Capacity      uint64  `yaml:"capacity"`
	TotalExcess   uint64  `yaml:"total_excess"` // sum over measured ticks of max(0, size-capacity)
	MeanExcess    float64 `yaml:"mean_excess"`
	PeakOccupancy int     `yaml:"peak_occupancy"`
	MeanOccupancy float64 `yaml:"mean_occupancy"`
}

// Print writes the metrics block in a human-readable form.
func (m *RunMetrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Warm-up Ticks        : %d\n", m.WarmupTicks)
	fmt.Fprintf(w, "Measured Ticks       : %d\n", m.MeasuredTicks)
	fmt.Fprintf(w, "Cycles               : %d\n", m.Cycles)
	fmt.Fprintf(w, "Converged            : %t\n", m.Converged)
	fmt.Fprintf(w, "Final Distance       : %.6f\n", m.FinalDistance)
	if m.MeasuredTicks > 0 {
		fmt.Fprintf(w, "Mean Occupancy       : %.4f\n", m.MeanOccupancy)
		fmt.Fprintf(w, "Peak Occupancy       : %d\n", m.PeakOccupancy)
		fmt.Fprintf(w, "Mean Excess (cap=%d) : %.6f\n", m.Capacity, m.MeanExcess)
	}
}
