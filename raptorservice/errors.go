package raptorservice

import "fmt"

// ErrInvariantViolation wraps an internal bug caught at the Service.Route
// recover boundary (§7): it signals a worker invariant was violated (a
// negative travel time, a best-time regression), never something a
// well-formed request should trigger. Configuration errors never become
// this - those are returned directly by NewRequest and the worker never
// starts.
type ErrInvariantViolation struct {
	Profile Profile
	Reason  any
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("raptorservice: invariant violation in %s worker: %v", e.Profile, e.Reason)
}
