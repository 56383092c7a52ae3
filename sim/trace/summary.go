package trace

import "math"

// TraceSummary aggregates statistics from a ConvergenceTrace.
type TraceSummary struct {
	TotalCycles   int     `yaml:"total_cycles"`
	FinalDistance float64 `yaml:"final_distance"`
	MinDistance   float64 `yaml:"min_distance"`
	MeanDistance  float64 `yaml:"mean_distance"`
	TotalExcess   uint64  `yaml:"total_excess"`
}

// Summarize computes aggregate statistics from a ConvergenceTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(ct *ConvergenceTrace) *TraceSummary {
	summary := &TraceSummary{}
	if ct == nil || len(ct.Cycles) == 0 {
		return summary
	}

	summary.TotalCycles = len(ct.Cycles)
	summary.MinDistance = math.Inf(1)
	total := 0.0
	for _, c := range ct.Cycles {
		total += c.Distance
		summary.TotalExcess += c.Excess
		if c.Distance < summary.MinDistance {
			summary.MinDistance = c.Distance
		}
	}
	summary.MeanDistance = total / float64(len(ct.Cycles))
	summary.FinalDistance = ct.Cycles[len(ct.Cycles)-1].Distance

	return summary
}
