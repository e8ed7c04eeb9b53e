package raptorservice

import (
	"github.com/rangeraptor/transitcore/path"
	"github.com/rangeraptor/transitcore/raptor"
)

// Response is what a Service.Route call returns for one Request (§6).
// Exactly one of Iterations / Paths is populated, matching the worker the
// request's Profile dispatched to.
type Response struct {
	Profile Profile

	// Iterations holds one entry per departure minute (and, for frequency
	// networks, per boarding mode) for the standard/range_raptor profiles.
	Iterations []raptor.IterationResult

	// Paths holds every pareto-optimal itinerary found for the
	// multi_criteria profile.
	Paths []path.Path
}
