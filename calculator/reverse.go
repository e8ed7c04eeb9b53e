package calculator

import (
	"fmt"

	"github.com/rangeraptor/transitcore/model"
)

// ReverseCalculator implements Calculator for a backward (latest-departure)
// search: time moves backward, "boarding" slack is already folded into the
// stored departure time, a pattern is walked from its last stop to its
// first. Mirrors ForwardCalculator so worker code stays unchanged between
// directions (spec §9's "direction polymorphism").
type ReverseCalculator struct {
	boardSlackSeconds int32
	maxTravelSeconds  int32
}

func NewReverseCalculator(boardSlackSeconds, maxTravelSeconds int32) *ReverseCalculator {
	return &ReverseCalculator{boardSlackSeconds: boardSlackSeconds, maxTravelSeconds: maxTravelSeconds}
}

var _ Calculator = (*ReverseCalculator)(nil)

func (self *ReverseCalculator) Add(t, delta int32) int32 { return t - delta }
func (self *ReverseCalculator) Sub(t, delta int32) int32 { return t + delta }

func (self *ReverseCalculator) EarliestBoardTime(t int32) int32 {
	return t
}

func (self *ReverseCalculator) LatestArrivalTime(trip *model.TripSchedule, stopPos int) int32 {
	return trip.DepartureAt(stopPos) - self.boardSlackSeconds
}

func (self *ReverseCalculator) ExceedsTimeLimit(t int32) bool {
	return self.maxTravelSeconds > 0 && t < -self.maxTravelSeconds
}

func (self *ReverseCalculator) ExceedsTimeLimitReason() string {
	return fmt.Sprintf("exceeds max travel duration of %ds (reverse search)", self.maxTravelSeconds)
}

func (self *ReverseCalculator) IsBest(subject, candidate int32) bool {
	return subject > candidate
}

func (self *ReverseCalculator) UnreachedTime() int32 {
	return -maxDuration
}

func (self *ReverseCalculator) RangeRaptorMinutes(earliest, latest, step int32) IntIterator {
	return newRangeIterator(earliest, latest, step)
}

func (self *ReverseCalculator) PatternStopIterator(numStops int) IntIterator {
	return newRangeIterator(int32(numStops-1), 0, -1)
}

func (self *ReverseCalculator) PatternStopIteratorFrom(onTripStopPos, numStops int) IntIterator {
	return newRangeIterator(int32(onTripStopPos-1), 0, -1)
}

func (self *ReverseCalculator) Direction() Direction {
	return Reverse
}
