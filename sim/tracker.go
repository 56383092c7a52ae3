package sim

// OccupancyTracker counts concurrently occupied slots on a discrete clock.
//
// Expirations are kept in a sparse map keyed by absolute step: a single-level
// timer wheel with an unbounded horizon. Only steps with at least one pending
// expiration have an entry.
type OccupancyTracker struct {
	size     uint64
	step     uint64
	schedule map[uint64]uint64 // absolute step → expirations due
}

// NewOccupancyTracker returns an empty tracker at step 0.
func NewOccupancyTracker() *OccupancyTracker {
	return &OccupancyTracker{
		schedule: make(map[uint64]uint64),
	}
}

// Advance moves the clock forward one step and releases every tenancy due at the
// new step. Releasing more tenancies than are held is a scheduling defect and is
// reported, never clamped.
func (t *OccupancyTracker) Advance() error {
	t.step++
	due, ok := t.schedule[t.step]
	if !ok {
		return nil
	}
	delete(t.schedule, t.step)
	if due > t.size {
		return &ConsistencyError{
			Tick:   t.step,
			Index:  -1,
			Reason: "expirations exceed occupancy",
		}
	}
	t.size -= due
	return nil
}

// Admit runs one tick: it advances the clock, then occupies a slot for duration
// steps. A duration of 0 is held for one step, like a duration of 1, so the
// tenancy is released on the next Advance.
func (t *OccupancyTracker) Admit(duration uint64) error {
	if err := t.Advance(); err != nil {
		return err
	}
	t.size++
	t.schedule[t.step+max(duration, 1)]++
	return nil
}

// Excess returns how far occupancy is above capacity, or 0.
func (t *OccupancyTracker) Excess(capacity uint64) uint64 {
	if t.size <= capacity {
		return 0
	}
	return t.size - capacity
}

// Size returns the current occupancy.
func (t *OccupancyTracker) Size() uint64 { return t.size }

// Step returns the current clock value.
func (t *OccupancyTracker) Step() uint64 { return t.step }

// Pending returns the number of scheduled, not yet applied, expirations.
// It always equals Size.
func (t *OccupancyTracker) Pending() uint64 {
	var n uint64
	for _, c := range t.schedule {
		n += c
	}
	return n
}
