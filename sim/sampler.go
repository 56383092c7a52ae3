package sim

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws tenancy lengths. WeightedSampler is the production implementation;
// tests substitute fixed sequences.
type Sampler interface {
	Sample() uint64
}

// WeightedSampler draws values from an empirical distribution with probability
// proportional to their weights.
//
// The random source is owned by the sampler and never exposed, so independent
// samplers can run on separate goroutines. A single sampler is NOT thread-safe.
type WeightedSampler struct {
	values []uint64
	dist   distuv.Categorical
}

// NewWeightedSampler builds a sampler over dist. Index order follows dist's
// entry order for the sampler's lifetime. A nil src gives the sampler a private
// unseeded source.
func NewWeightedSampler(dist EmpiricalDistribution, src rand.Source) (*WeightedSampler, error) {
	if dist.Len() == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidDistribution)
	}
	values := make([]uint64, 0, dist.Len())
	weights := make([]float64, 0, dist.Len())
	for _, e := range dist.entries {
		values = append(values, e.Value)
		weights = append(weights, e.Weight)
	}
	// dist is validated on construction, but a zero-value EmpiricalDistribution
	// bypasses that, so check again before handing weights to gonum (which panics).
	if err := validateWeights(weights); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &WeightedSampler{
		values: values,
		dist:   distuv.NewCategorical(weights, src),
	}, nil
}

// Sample returns one value drawn with probability weight[i] / sum(weights).
func (s *WeightedSampler) Sample() uint64 {
	return s.values[int(s.dist.Rand())]
}

// Values returns a copy of the sampled values in index order.
func (s *WeightedSampler) Values() []uint64 {
	out := make([]uint64, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of distinct values the sampler can return.
func (s *WeightedSampler) Len() int {
	return len(s.values)
}
