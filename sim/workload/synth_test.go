package workload

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/dcsd/sim"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestNewLengthSampler_Validation(t *testing.T) {
	tests := []struct {
		name string
		spec TenancySpec
	}{
		{"unknown type", TenancySpec{Type: "zipf"}},
		{"missing mean", TenancySpec{Type: "exponential"}},
		{"non-positive mean", TenancySpec{Type: "exponential", Params: map[string]float64{"mean": 0}}},
		{"inverted gaussian bounds", TenancySpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": 1, "min": 9, "max": 2}}},
		{"mix weight above one", TenancySpec{Type: "pareto_lognormal", Params: map[string]float64{
			"alpha": 1, "xm": 1, "mu": 0, "sigma": 1, "mix_weight": 1.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLengthSampler(tt.spec, newTestRNG(1))
			assert.Error(t, err)
		})
	}
}

func TestLengthSampler_DrawsStayInRange(t *testing.T) {
	specs := []TenancySpec{
		{Type: "gaussian", Params: map[string]float64{"mean": 10, "std_dev": 4, "min": 2, "max": 20}},
		{Type: "exponential", Params: map[string]float64{"mean": 5}},
		{Type: "pareto_lognormal", Params: map[string]float64{"alpha": 1.2, "xm": 2, "mu": 1, "sigma": 0.5, "mix_weight": 0.3}},
	}
	for _, spec := range specs {
		t.Run(spec.Type, func(t *testing.T) {
			s, err := NewLengthSampler(spec, newTestRNG(7))
			require.NoError(t, err)
			for range 1000 {
				v := s.Sample()
				assert.GreaterOrEqual(t, v, uint64(1))
				assert.LessOrEqual(t, v, uint64(MaxSynthTenancy))
			}
		})
	}
}

func TestGaussianSampler_Clamped(t *testing.T) {
	s, err := NewLengthSampler(TenancySpec{Type: "gaussian", Params: map[string]float64{
		"mean": 100, "std_dev": 50, "min": 3, "max": 6}}, newTestRNG(3))
	require.NoError(t, err)
	for range 500 {
		v := s.Sample()
		assert.True(t, v >= 3 && v <= 6, "draw %d outside [3, 6]", v)
	}
}

func TestSynthesizeTable_Constant(t *testing.T) {
	// GIVEN a constant tenancy of 4 ticks
	s, err := NewLengthSampler(TenancySpec{Type: "constant", Params: map[string]float64{"value": 4}}, newTestRNG(1))
	require.NoError(t, err)

	// WHEN 50 draws are tallied
	dist, err := SynthesizeTable(s, 50)
	require.NoError(t, err)

	// THEN the table has one row weighted by the draw count
	assert.Equal(t, []sim.Tenancy{{Value: 4, Weight: 50}}, dist.Entries())
}

func TestSynthesizeTable_SortedAndReproducible(t *testing.T) {
	spec := TenancySpec{Type: "exponential", Params: map[string]float64{"mean": 3}}
	build := func() sim.EmpiricalDistribution {
		s, err := NewLengthSampler(spec, newTestRNG(11))
		require.NoError(t, err)
		dist, err := SynthesizeTable(s, 2000)
		require.NoError(t, err)
		return dist
	}

	a, b := build(), build()
	assert.Equal(t, a.Entries(), b.Entries(), "same seed must give the same table")

	var total float64
	entries := a.Entries()
	for i, e := range entries {
		total += e.Weight
		if i > 0 {
			assert.Less(t, entries[i-1].Value, e.Value)
		}
	}
	assert.Equal(t, 2000.0, total)
}

func TestSynthesizeTable_NoDraws(t *testing.T) {
	_, err := SynthesizeTable(&ConstantSampler{value: 1}, 0)
	assert.True(t, errors.Is(err, sim.ErrInvalidDistribution))
}

func TestWriteEmpiricalCSV_RoundTrip(t *testing.T) {
	dist, err := sim.NewEmpiricalDistribution([]sim.Tenancy{{Value: 2, Weight: 3}, {Value: 5, Weight: 0.5}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteEmpiricalCSV(&buf, dist))
	assert.Equal(t, "value,weight\n2,3\n5,0.5\n", buf.String())

	loaded, err := LoadEmpiricalCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, dist.Entries(), loaded.Entries())
}
