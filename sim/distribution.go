// sim/distribution.go
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMode selects the index range used by TotalVariationDistance.
type DistanceMode string

const (
	// DistanceFull sums over every shared index.
	DistanceFull DistanceMode = "full"
	// DistanceLegacy drops the last shared index from the sum, matching
	// histograms produced by the older estimator.
	DistanceLegacy DistanceMode = "legacy"
)

// validDistanceModes maps accepted distance mode strings ("" defaults to full).
var validDistanceModes = map[DistanceMode]bool{
	DistanceFull:   true,
	DistanceLegacy: true,
	"":             true,
}

// IsValidDistanceMode returns true if the given string names a distance mode.
func IsValidDistanceMode(mode string) bool {
	return validDistanceModes[DistanceMode(mode)]
}

// SafeSum returns the total of counts, or 1 when the total is zero so that it can
// always be used as a denominator.
func SafeSum(counts []uint64) float64 {
	sum := floats.Sum(toFloats(counts))
	if sum == 0 {
		return 1
	}
	return sum
}

// Normalize converts counts into probabilities. An all-zero input yields an
// all-zero output rather than NaNs.
func Normalize(counts []uint64) []float64 {
	probs := toFloats(counts)
	floats.Scale(1/SafeSum(counts), probs)
	return probs
}

// TotalVariationDistance returns the unhalved L1 distance between the normalized
// forms of a and b over their shared prefix. The result is symmetric and zero for
// identical inputs.
func TotalVariationDistance(a, b []uint64, mode DistanceMode) float64 {
	n := min(len(a), len(b))
	if mode == DistanceLegacy {
		n--
	}
	if n <= 0 {
		return 0
	}
	pa := Normalize(a)[:n]
	pb := Normalize(b)[:n]
	return floats.Distance(pa, pb, 1)
}

// ExpectedExcess returns the expected number of occupied slots above capacity
// under the occupancy distribution described by counts (bucket i = occupancy i).
func ExpectedExcess(counts []uint64, capacity uint64) float64 {
	return ExpectedExcessProbabilities(Normalize(counts), capacity)
}

// ExpectedExcessProbabilities is ExpectedExcess for an already-normalized distribution.
func ExpectedExcessProbabilities(probs []float64, capacity uint64) float64 {
	area := 0.0
	for i, p := range probs {
		if uint64(i) > capacity {
			area += float64(uint64(i)-capacity) * p
		}
	}
	return area
}

// validateWeights checks that weights can define a categorical distribution.
func validateWeights(weights []float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidDistribution)
	}
	positive := false
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight %d is not finite (%v)", ErrInvalidDistribution, i, w)
		}
		if w < 0 {
			return fmt.Errorf("%w: weight %d is negative (%v)", ErrInvalidDistribution, i, w)
		}
		if w > 0 {
			positive = true
		}
	}
	if !positive {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidDistribution)
	}
	return nil
}

func toFloats(counts []uint64) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}
