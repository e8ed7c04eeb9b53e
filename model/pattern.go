package model

// TripPattern is an ordered sequence of stops traversed by a set of trips
// that all stop at exactly the same stops in the same order. Trips inside a
// pattern are sorted by their first departure.
type TripPattern struct {
	ID    int32
	Stops []Stop

	// ActiveServices is the set of service ids with at least one trip
	// running on this pattern; used as a fast pre-filter before consulting
	// the calendar via TransitDataProvider.IsServiceActive.
	ActiveServices []string

	Trips []TripSchedule

	// StopTimeIndex[pos] is just pos itself for a dense schedule; kept
	// explicit (rather than implied) because a pattern's stop-time arrays
	// are always indexed by position, never by stop id - this field exists
	// so callers never have to guess which indexing scheme is in play.
	StopTimeIndex []int
}

func NewTripPattern(id int32, stops []Stop) *TripPattern {
	index := make([]int, len(stops))
	for i := range index {
		index[i] = i
	}
	return &TripPattern{
		ID:            id,
		Stops:         stops,
		StopTimeIndex: index,
	}
}

func (self *TripPattern) NumStops() int {
	return len(self.Stops)
}

func (self *TripPattern) StopAt(pos int) Stop {
	return self.Stops[pos]
}

func (self *TripPattern) NumTrips() int {
	return len(self.Trips)
}

func (self *TripPattern) TripAt(index int) *TripSchedule {
	return &self.Trips[index]
}
