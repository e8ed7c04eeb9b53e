// Package tripsearch implements the trip-search component (spec §4.2): given
// a pattern, a stop position and an earliest-board time, find the earliest
// boardable scheduled trip.
package tripsearch

import (
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/util"
)

// BinarySearchThreshold is the scheduled_trip_binary_search_threshold tuning
// parameter (default 50): below this many candidate trips a linear scan is
// used, at or above it a binary search is used. Grounded on
// original_source/TuningParameters.java's documented default.
const BinarySearchThreshold = 50

// ServiceActive reports whether a service id runs on the given date; callers
// inject this rather than tripsearch depending on transitdata directly, so
// the search stays a pure function of the pattern and a predicate.
type ServiceActive func(serviceID string, date string) bool

// Search finds the earliest trip on pattern departing stopPos at or after
// earliestBoardTime, restricted to trips active on date. Frequency-based
// trip schedules are always skipped (handled by the worker's frequency
// boarding rules instead). Ties are broken by lowest trip index.
//
// If currentTripIndex is present, the search also checks whether a strictly
// earlier boardable trip exists below that index (a rider who reached this
// stop sooner via a different route may be able to catch an earlier run of
// the same pattern) - this refines, never worsens, the result.
func Search(pattern *model.TripPattern, stopPos int, earliestBoardTime int32, date string, active ServiceActive, currentTripIndex util.Optional[int]) (trip *model.TripSchedule, tripIndex int, boardTime int32, found bool) {
	n := pattern.NumTrips()
	if n == 0 {
		return nil, -1, 0, false
	}

	idx, ok := findEarliest(pattern, stopPos, earliestBoardTime, date, active, 0, n)
	if !ok {
		return nil, -1, 0, false
	}

	if currentTripIndex.HasValue() && idx >= currentTripIndex.Value {
		// Already riding something at least as good; look strictly below the
		// current trip for an earlier boardable run of the same pattern.
		if earlier, ok := findEarliest(pattern, stopPos, earliestBoardTime, date, active, 0, currentTripIndex.Value); ok {
			idx = earlier
		}
	}

	t := pattern.TripAt(idx)
	return t, idx, t.DepartureAt(stopPos), true
}

// findEarliest scans trip indices in [lo, hi) and returns the lowest index
// whose departure at stopPos is >= earliestBoardTime and whose service is
// active, skipping frequency-based schedules entirely.
func findEarliest(pattern *model.TripPattern, stopPos int, earliestBoardTime int32, date string, active ServiceActive, lo, hi int) (int, bool) {
	if hi-lo < BinarySearchThreshold {
		for i := lo; i < hi; i++ {
			t := pattern.TripAt(i)
			if t.IsFrequencyBased() {
				continue
			}
			if t.DepartureAt(stopPos) >= earliestBoardTime && active(t.ServiceID, date) {
				return i, true
			}
		}
		return 0, false
	}

	// Binary search for the first index whose departure at stopPos is >=
	// earliestBoardTime (trips are sorted by FirstDeparture, which implies
	// monotone departures at every position since trips within a pattern
	// never overtake one another).
	i, j := lo, hi
	for i < j {
		mid := (i + j) / 2
		if pattern.TripAt(mid).DepartureAt(stopPos) >= earliestBoardTime {
			j = mid
		} else {
			i = mid + 1
		}
	}
	for k := i; k < hi; k++ {
		t := pattern.TripAt(k)
		if t.IsFrequencyBased() {
			continue
		}
		if active(t.ServiceID, date) {
			return k, true
		}
	}
	return 0, false
}
