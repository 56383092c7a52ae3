// Package testutil provides shared test infrastructure for the DCSD simulator.
// It consolidates deterministic samplers and assertion helpers used across
// sim/, sim/workload/ and sim/trace/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// SequenceSampler returns Values in order, wrapping around at the end.
// It satisfies sim.Sampler.
type SequenceSampler struct {
	Values []uint64
	next   int
}

// Sample returns the next value of the sequence.
func (s *SequenceSampler) Sample() uint64 {
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws returns how many values have been sampled.
func (s *SequenceSampler) Draws() int {
	return s.next
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertProbabilitiesNear checks element-wise absolute closeness of two
// probability vectors of equal length.
func AssertProbabilitiesNear(t *testing.T, name string, want, got []float64, absTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: length %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(want[i]-got[i]) > absTol {
			t.Errorf("%s[%d]: got %.4f, want %.4f (±%.4f)", name, i, got[i], want[i], absTol)
		}
	}
}

// WriteTempFile writes content to name inside a per-test temp directory and
// returns the full path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
