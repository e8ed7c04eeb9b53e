package model

// Frequency describes one GTFS-style frequency entry: a trip whose service is
// defined by a start/end window and a headway rather than explicit per-stop
// departures.
type Frequency struct {
	StartTime      int32
	EndTime        int32
	HeadwaySeconds int32
	ExactTimes     bool
}

// TripSchedule is one trip running on a pattern: per-stop-position arrival
// and departure times (monotonically non-decreasing), a service id used to
// check calendar activity, and an optional RouteID kept for diagnostics.
//
// A trip is either a scheduled trip (Frequencies is empty, Arrivals/Departures
// are absolute seconds-since-midnight) or a frequency trip (Frequencies is
// non-empty; Arrivals/Departures hold the *offsets from the start of a trip*
// relative to stop position 0, added to a sampled start time at boarding).
type TripSchedule struct {
	RouteID     string
	ServiceID   string
	Arrivals    []int32
	Departures  []int32
	Frequencies []Frequency
}

// IsFrequencyBased reports whether this schedule is headway-defined rather
// than a fixed timetable entry - the trip-search component (§4.2) skips
// these; the worker's frequency boarding rules (§4.7) handle them instead.
func (self *TripSchedule) IsFrequencyBased() bool {
	return len(self.Frequencies) > 0
}

func (self *TripSchedule) ArrivalAt(pos int) int32 {
	return self.Arrivals[pos]
}

func (self *TripSchedule) DepartureAt(pos int) int32 {
	return self.Departures[pos]
}

// FirstDeparture is the key trips within a pattern are sorted by.
func (self *TripSchedule) FirstDeparture() int32 {
	return self.Departures[0]
}
