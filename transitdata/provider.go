// Package transitdata exposes the read-only view of patterns, stops,
// transfers and calendar that the Range-RAPTOR workers consume (spec §4.1).
// It is the core's only dependency on "where did this data come from" -
// GTFS ingestion, street-network access/egress computation, and any
// persistence layer are external collaborators that merely have to produce
// the slices an InMemoryProvider is built from.
package transitdata

import (
	"github.com/rangeraptor/transitcore/model"
)

// Provider is the interface the worker package depends on. Implementations
// must be safe for concurrent read access (§5) - no internal mutation, no
// lazy initialization races - since the service layer dispatches forward and
// reverse workers against the same provider from a fixed-size thread pool.
type Provider interface {
	NumStops() int
	TransfersFrom(stop model.Stop) Cursor[model.TransferLeg]
	PatternsForStop(stop model.Stop) Cursor[int32]
	Pattern(patternIndex int32) *model.TripPattern
	NumPatterns() int
	IsServiceActive(serviceID string, date string) bool
}
