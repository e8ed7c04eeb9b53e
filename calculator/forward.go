package calculator

import (
	"fmt"

	"github.com/rangeraptor/transitcore/model"
)

// ForwardCalculator implements Calculator for the normal earliest-arrival
// direction: time moves forward, boarding requires board slack after
// arrival, a pattern is walked from its first stop to its last.
type ForwardCalculator struct {
	boardSlackSeconds int32
	maxTravelSeconds  int32
}

func NewForwardCalculator(boardSlackSeconds, maxTravelSeconds int32) *ForwardCalculator {
	return &ForwardCalculator{boardSlackSeconds: boardSlackSeconds, maxTravelSeconds: maxTravelSeconds}
}

var _ Calculator = (*ForwardCalculator)(nil)

func (self *ForwardCalculator) Add(t, delta int32) int32 { return t + delta }
func (self *ForwardCalculator) Sub(t, delta int32) int32 { return t - delta }

func (self *ForwardCalculator) EarliestBoardTime(t int32) int32 {
	return t + self.boardSlackSeconds
}

func (self *ForwardCalculator) LatestArrivalTime(trip *model.TripSchedule, stopPos int) int32 {
	return trip.ArrivalAt(stopPos)
}

func (self *ForwardCalculator) ExceedsTimeLimit(t int32) bool {
	return self.maxTravelSeconds > 0 && t > self.maxTravelSeconds
}

func (self *ForwardCalculator) ExceedsTimeLimitReason() string {
	return fmt.Sprintf("exceeds max travel duration of %ds (forward search)", self.maxTravelSeconds)
}

func (self *ForwardCalculator) IsBest(subject, candidate int32) bool {
	return subject < candidate
}

func (self *ForwardCalculator) UnreachedTime() int32 {
	return maxDuration
}

func (self *ForwardCalculator) RangeRaptorMinutes(earliest, latest, step int32) IntIterator {
	return newRangeIterator(latest, earliest, -step)
}

func (self *ForwardCalculator) PatternStopIterator(numStops int) IntIterator {
	return newRangeIterator(0, int32(numStops-1), 1)
}

func (self *ForwardCalculator) PatternStopIteratorFrom(onTripStopPos, numStops int) IntIterator {
	return newRangeIterator(int32(onTripStopPos+1), int32(numStops-1), 1)
}

func (self *ForwardCalculator) Direction() Direction {
	return Forward
}
