package sim

import "fmt"

// Tenancy is one row of an empirical tenancy table: a tenancy length (in ticks)
// and its relative frequency.
type Tenancy struct {
	Value  uint64
	Weight float64
}

// EmpiricalDistribution is an ordered, immutable table of tenancy lengths and
// weights. Values are unique and at least one weight is positive.
type EmpiricalDistribution struct {
	entries []Tenancy
	max     uint64
}

// NewEmpiricalDistribution validates entries and returns a distribution that
// preserves their order.
func NewEmpiricalDistribution(entries []Tenancy) (EmpiricalDistribution, error) {
	weights := make([]float64, len(entries))
	seen := make(map[uint64]bool, len(entries))
	var maxValue uint64
	for i, e := range entries {
		if seen[e.Value] {
			return EmpiricalDistribution{}, fmt.Errorf("%w: duplicate value %d", ErrInvalidDistribution, e.Value)
		}
		seen[e.Value] = true
		weights[i] = e.Weight
		maxValue = max(maxValue, e.Value)
	}
	if err := validateWeights(weights); err != nil {
		return EmpiricalDistribution{}, err
	}
	owned := make([]Tenancy, len(entries))
	copy(owned, entries)
	return EmpiricalDistribution{entries: owned, max: maxValue}, nil
}

// Entries returns a copy of the table in construction order.
func (d EmpiricalDistribution) Entries() []Tenancy {
	out := make([]Tenancy, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of distinct tenancy values.
func (d EmpiricalDistribution) Len() int {
	return len(d.entries)
}

// MaxValue returns the largest tenancy value, which bounds occupancy and therefore
// sizes the histogram.
func (d EmpiricalDistribution) MaxValue() uint64 {
	return d.max
}
