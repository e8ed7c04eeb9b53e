// Package model holds the plain data structures of the transit network: stops,
// trip patterns, trip schedules, transfer/access/egress legs. No behaviour
// lives here, matching structs/items.go in the teacher repo - callers
// (transitdata, tripsearch, raptor) supply the logic.
package model

// Stop is identified purely by its position, a contiguous non-negative
// integer in [0, N). The type carries no further state in the core; names,
// coordinates and other metadata belong to the caller's own index.
type Stop = int32

// TransferLeg is a walking (or other out-of-vehicle) connection between two
// stops, used both for the transfer adjacency relaxed every round and,
// conceptually, for access/egress legs (AccessEgressLeg) which share the same
// shape but are keyed by a single stop.
type TransferLeg struct {
	FromStop       Stop
	ToStop         Stop
	DurationSeconds int32
	Cost           int32
}

// AccessEgressLeg seeds the initial state (access) or is evaluated every
// round to produce a candidate destination arrival (egress).
type AccessEgressLeg struct {
	Stop            Stop
	DurationSeconds int32
	Cost            int32
}
