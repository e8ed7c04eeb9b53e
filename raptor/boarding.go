// Package raptor implements the Range-RAPTOR worker state machines (spec
// §4.7 standard/frequency worker, §4.8 multi-criteria worker), grounded on
// batched/onetomany's ISolver/CreateSolver() split: one worker type per
// search flavour, sharing the calculator/state/pareto/tripsearch components.
package raptor

// BoardingMode selects which of the three frequency-boarding assumptions a
// sweep evaluates (spec §4.7's "2 + monte_carlo_draws_per_minute inner
// iterations").
type BoardingMode byte

const (
	// ScheduledOnly is used when the network has no frequency entries at
	// all; no boarding-mode choice is meaningful.
	ScheduledOnly BoardingMode = iota
	BestCase
	WorstCase
	Random
)

func (m BoardingMode) String() string {
	switch m {
	case BestCase:
		return "best_case"
	case WorstCase:
		return "worst_case"
	case Random:
		return "random"
	default:
		return "scheduled_only"
	}
}
