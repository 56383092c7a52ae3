package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDistribution is returned when an empirical tenancy table cannot be sampled:
	// it is empty, carries a negative or non-finite weight, or every weight is zero.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrMalformedInput is returned by input adapters for unparsable records.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInternalConsistency signals a scheduling or sizing defect detected mid-run.
	// It is never transient; runs that hit it are aborted.
	ErrInternalConsistency = errors.New("internal consistency failure")
)

// ConsistencyError carries the tick (and histogram index, when relevant) at which
// an internal-consistency check failed. Index is -1 when no histogram bucket is involved.
type ConsistencyError struct {
	Tick   uint64
	Index  int
	Reason string
}

func (e *ConsistencyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v at tick %d (index %d): %s", ErrInternalConsistency, e.Tick, e.Index, e.Reason)
	}
	return fmt.Sprintf("%v at tick %d: %s", ErrInternalConsistency, e.Tick, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrInternalConsistency).
func (e *ConsistencyError) Unwrap() error {
	return ErrInternalConsistency
}
