// Package calculator encapsulates all direction-dependent time arithmetic
// (spec §4.6) so the Range-RAPTOR worker code is symmetric for forward and
// reverse searches. Grounded on original_source's TransitCalculator.java
// interface and on graph/enums.go's Direction enum idiom.
package calculator

import "github.com/rangeraptor/transitcore/model"

type Direction byte

const (
	Forward Direction = iota
	Reverse
)

// IntIterator walks a sequence of ints one step at a time; direction is
// baked into the iterator so worker code never branches on it.
type IntIterator interface {
	HasNext() bool
	Next() int32
}

// Calculator is the direction-aware arithmetic contract the worker and the
// stop-arrival state share.
type Calculator interface {
	Add(t, delta int32) int32
	Sub(t, delta int32) int32

	// EarliestBoardTime returns the earliest possible board time given an
	// arrival (forward) or board (reverse) time: t+boardSlack forward, t
	// unchanged in reverse.
	EarliestBoardTime(t int32) int32

	// LatestArrivalTime returns, for the trip boarded, the relevant
	// time bound at stopPos: trip arrival time forward; trip departure
	// minus boardSlack in reverse.
	LatestArrivalTime(trip *model.TripSchedule, stopPos int) int32

	ExceedsTimeLimit(t int32) bool
	ExceedsTimeLimitReason() string

	// IsBest reports whether subject is strictly better than candidate:
	// subject < candidate forward, subject > candidate reverse.
	IsBest(subject, candidate int32) bool

	UnreachedTime() int32

	// RangeRaptorMinutes iterates departure minutes from latest to earliest
	// (forward) or earliest to latest (reverse), inclusive, stepping by
	// iterationStep.
	RangeRaptorMinutes(earliest, latest, iterationStep int32) IntIterator

	// PatternStopIterator iterates stop positions [0, numStops) forward or
	// (numStops-1, -1] reverse.
	PatternStopIterator(numStops int) IntIterator

	// PatternStopIteratorFrom iterates stop positions strictly after
	// onTripStopPos (forward) or strictly before it (reverse), up to the
	// pattern bound.
	PatternStopIteratorFrom(onTripStopPos, numStops int) IntIterator

	Direction() Direction
}

const maxDuration = int32(1) << 30
