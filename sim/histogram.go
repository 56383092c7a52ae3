package sim

import "math"

// Histogram counts how often each occupancy level was observed. Bucket i holds
// the number of ticks that ended with exactly i slots occupied.
type Histogram struct {
	counts []uint64
	total  uint64
}

// NewHistogram returns a histogram with buckets 0..=maxIndex.
func NewHistogram(maxIndex int) *Histogram {
	return &Histogram{counts: make([]uint64, maxIndex+1)}
}

// Record increments the bucket for occupancy index. An index outside the
// allocated range means the caller undersized the histogram.
func (h *Histogram) Record(index uint64, tick uint64) error {
	if index >= uint64(len(h.counts)) {
		return &ConsistencyError{
			Tick:   tick,
			Index:  int(min(index, uint64(math.MaxInt))),
			Reason: "occupancy exceeds histogram bound",
		}
	}
	h.counts[index]++
	h.total++
	return nil
}

// Counts returns a copy of the raw bucket counts.
func (h *Histogram) Counts() []uint64 {
	return h.Snapshot()
}

// Snapshot copies the current counts for later comparison.
func (h *Histogram) Snapshot() []uint64 {
	out := make([]uint64, len(h.counts))
	copy(out, h.counts)
	return out
}

// Normalized returns the counts as probabilities.
func (h *Histogram) Normalized() []float64 {
	return Normalize(h.counts)
}

// DistanceFrom returns the total variation distance between prev and the
// current counts without copying them.
func (h *Histogram) DistanceFrom(prev []uint64, mode DistanceMode) float64 {
	return TotalVariationDistance(prev, h.counts, mode)
}

// Total returns the number of recorded observations.
func (h *Histogram) Total() uint64 { return h.total }

// Len returns the number of buckets.
func (h *Histogram) Len() int { return len(h.counts) }

// Mean returns the average recorded occupancy, or 0 when empty.
func (h *Histogram) Mean() float64 {
	if h.total == 0 {
		return 0
	}
	var sum float64
	for i, c := range h.counts {
		sum += float64(i) * float64(c)
	}
	return sum / float64(h.total)
}

// Peak returns the highest occupancy with a non-zero count.
func (h *Histogram) Peak() int {
	for i := len(h.counts) - 1; i > 0; i-- {
		if h.counts[i] > 0 {
			return i
		}
	}
	return 0
}
