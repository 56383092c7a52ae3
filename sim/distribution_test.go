package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		counts []uint64
		want   []float64
	}{
		{"empty", []uint64{}, []float64{}},
		{"all zero", []uint64{0, 0, 0}, []float64{0, 0, 0}},
		{"single bucket", []uint64{0, 7}, []float64{0, 1}},
		{"mixed", []uint64{1, 3, 4}, []float64{0.125, 0.375, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.counts)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	counts := []uint64{2, 2}
	_ = Normalize(counts)
	assert.Equal(t, []uint64{2, 2}, counts)
}

func TestSafeSum_ZeroBecomesOne(t *testing.T) {
	assert.Equal(t, 1.0, SafeSum(nil))
	assert.Equal(t, 1.0, SafeSum([]uint64{0, 0}))
	assert.Equal(t, 9.0, SafeSum([]uint64{4, 5}))
}

func TestTotalVariationDistance_IdenticalIsZero(t *testing.T) {
	x := []uint64{3, 9, 0, 14, 1}
	for _, mode := range []DistanceMode{DistanceFull, DistanceLegacy} {
		assert.Equal(t, 0.0, TotalVariationDistance(x, x, mode), "mode %s", mode)
	}
}

func TestTotalVariationDistance_ScaleInvariant(t *testing.T) {
	// Histograms with the same shape but different totals are at distance zero.
	a := []uint64{1, 2, 1}
	b := []uint64{100, 200, 100}
	assert.InDelta(t, 0.0, TotalVariationDistance(a, b, DistanceFull), 1e-12)
}

func TestTotalVariationDistance_Symmetric(t *testing.T) {
	a := []uint64{5, 0, 3, 2}
	b := []uint64{1, 1, 1, 7}
	for _, mode := range []DistanceMode{DistanceFull, DistanceLegacy} {
		ab := TotalVariationDistance(a, b, mode)
		ba := TotalVariationDistance(b, a, mode)
		assert.Equal(t, ab, ba, "mode %s", mode)
	}
}

func TestTotalVariationDistance_FullVersusLegacy(t *testing.T) {
	// GIVEN two histograms that differ only in the last bucket
	a := []uint64{1, 1, 0}
	b := []uint64{1, 1, 2}

	// WHEN compared over the full range
	full := TotalVariationDistance(a, b, DistanceFull)
	// THEN every bucket contributes: |.5-.25| + |.5-.25| + |0-.5| = 1
	assert.InDelta(t, 1.0, full, 1e-12)

	// WHEN compared in legacy mode
	legacy := TotalVariationDistance(a, b, DistanceLegacy)
	// THEN the last bucket is skipped: 0.25 + 0.25
	assert.InDelta(t, 0.5, legacy, 1e-12)
}

func TestTotalVariationDistance_DisjointIsTwo(t *testing.T) {
	a := []uint64{4, 0}
	b := []uint64{0, 9}
	assert.InDelta(t, 2.0, TotalVariationDistance(a, b, DistanceFull), 1e-12)
}

func TestTotalVariationDistance_AgainstZeroHistogram(t *testing.T) {
	// An empty previous snapshot normalizes to zeros, so the distance is the
	// total probability mass of the other side.
	prev := []uint64{0, 0, 0}
	cur := []uint64{2, 5, 3}
	assert.InDelta(t, 1.0, TotalVariationDistance(prev, cur, DistanceFull), 1e-12)
}

func TestTotalVariationDistance_ShortInputs(t *testing.T) {
	assert.Equal(t, 0.0, TotalVariationDistance(nil, nil, DistanceFull))
	assert.Equal(t, 0.0, TotalVariationDistance([]uint64{1}, []uint64{0}, DistanceLegacy))
}

func TestExpectedExcess(t *testing.T) {
	tests := []struct {
		name     string
		counts   []uint64
		capacity uint64
		want     float64
	}{
		{"all below capacity", []uint64{1, 1, 1}, 5, 0},
		{"at capacity counts zero", []uint64{0, 0, 4}, 2, 0},
		{"above capacity", []uint64{0, 0, 1, 1}, 1, 0.5*1 + 0.5*2},
		{"zero capacity is the mean", []uint64{1, 2, 1}, 0, 1},
		{"empty histogram", []uint64{0, 0, 0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExpectedExcess(tt.counts, tt.capacity), 1e-12)
		})
	}
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantErr bool
	}{
		{"empty", nil, true},
		{"all zero", []float64{0, 0}, true},
		{"negative", []float64{1, -0.5}, true},
		{"NaN", []float64{math.NaN(), 1}, true},
		{"Inf", []float64{math.Inf(1)}, true},
		{"one positive", []float64{0, 0, 0.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWeights(tt.weights)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDistribution)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidDistanceMode(t *testing.T) {
	assert.True(t, IsValidDistanceMode(""))
	assert.True(t, IsValidDistanceMode("full"))
	assert.True(t, IsValidDistanceMode("legacy"))
	assert.False(t, IsValidDistanceMode("l2"))
}
