// Package gtfsingest builds the transitdata/model types the Range-RAPTOR
// core runs against from a directory of standard GTFS CSV files. Nothing
// in raptor/, state/ or tripsearch/ imports this package - GTFS ingestion
// is the external collaborator spec section 1 places out of scope for the
// core itself - but cmd/ and the example fixtures need somewhere to get
// real trip patterns from. Grounded on parser/gtfs_parser.go's role (turn a
// transit feed into the network types the worker runs against), generalized
// from its external-process+JSON shape to a pure-Go reader built on
// util.ReadCSVFromFile.
package gtfsingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/slog"

	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/transitdata"
	"github.com/rangeraptor/transitcore/util"
)

// Feed is a loaded GTFS directory: the Provider the worker consumes plus the
// stop_id <-> index mapping callers need to translate their own stop ids
// into model.Stop positions for access/egress legs.
type Feed struct {
	Provider  transitdata.Provider
	StopID    []string              // index -> GTFS stop_id
	StopIndex map[string]model.Stop // GTFS stop_id -> index
}

// LoadFeed reads stops.txt, trips.txt and stop_times.txt (required) plus
// calendar.txt, calendar_dates.txt, frequencies.txt and transfers.txt
// (read if present) from dir and builds a ready-to-query Feed.
func LoadFeed(dir string) (*Feed, error) {
	stopIndex, stopIDs, err := loadStops(filepath.Join(dir, "stops.txt"))
	if err != nil {
		return nil, err
	}

	trips, err := loadTrips(filepath.Join(dir, "trips.txt"))
	if err != nil {
		return nil, err
	}

	patterns, locations, err := loadPatterns(filepath.Join(dir, "stop_times.txt"), stopIndex, trips)
	if err != nil {
		return nil, err
	}

	attachFrequencies(filepath.Join(dir, "frequencies.txt"), patterns, locations)

	for _, pattern := range patterns {
		sort.Slice(pattern.Trips, func(i, j int) bool {
			return pattern.Trips[i].FirstDeparture() < pattern.Trips[j].FirstDeparture()
		})
	}

	calendar, err := loadCalendar(filepath.Join(dir, "calendar.txt"), filepath.Join(dir, "calendar_dates.txt"))
	if err != nil {
		return nil, err
	}

	transfers := loadTransfers(filepath.Join(dir, "transfers.txt"), stopIndex)

	provider := transitdata.NewInMemoryProvider(len(stopIDs), patterns, transfers, calendar)
	return &Feed{Provider: provider, StopID: stopIDs, StopIndex: stopIndex}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func loadStops(path string) (map[string]model.Stop, []string, error) {
	if !exists(path) {
		return nil, nil, fmt.Errorf("gtfsingest: %s is required", path)
	}
	index := make(map[string]model.Stop)
	var ids []string
	for row := range util.ReadCSVFromFile[stopRow](path, ',') {
		if _, dup := index[row.ID]; dup {
			continue
		}
		index[row.ID] = model.Stop(len(ids))
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return nil, nil, fmt.Errorf("gtfsingest: %s has no stops", path)
	}
	return index, ids, nil
}

func loadTrips(path string) (map[string]tripRow, error) {
	if !exists(path) {
		return nil, fmt.Errorf("gtfsingest: %s is required", path)
	}
	trips := make(map[string]tripRow)
	for row := range util.ReadCSVFromFile[tripRow](path, ',') {
		trips[row.ID] = row
	}
	return trips, nil
}

// tripLocation is where a trip ended up after pattern assignment: which
// pattern, and which index into that pattern's Trips slice. Recorded before
// the final sort-by-first-departure pass, which is why attachFrequencies
// runs before that pass - its lookups would otherwise go stale.
type tripLocation struct {
	pattern int
	trip    int
}

func loadPatterns(path string, stopIndex map[string]model.Stop, trips map[string]tripRow) ([]*model.TripPattern, map[string]tripLocation, error) {
	if !exists(path) {
		return nil, nil, fmt.Errorf("gtfsingest: %s is required", path)
	}

	type visit struct {
		pos       int
		stop      model.Stop
		arrival   int32
		departure int32
	}
	visitsByTrip := make(map[string][]visit)
	tripOrder := make([]string, 0)
	for row := range util.ReadCSVFromFile[stopTimeRow](path, ',') {
		stop, ok := stopIndex[row.StopID]
		if !ok {
			slog.Warn("gtfsingest: stop_times references unknown stop", "stop_id", row.StopID)
			continue
		}
		arrival, err := parseTime(row.ArrivalTime)
		if err != nil {
			slog.Warn("gtfsingest: skipping stop_time", "trip_id", row.TripID, "err", err)
			continue
		}
		departure, err := parseTime(row.DepartureTime)
		if err != nil {
			slog.Warn("gtfsingest: skipping stop_time", "trip_id", row.TripID, "err", err)
			continue
		}
		if _, seen := visitsByTrip[row.TripID]; !seen {
			tripOrder = append(tripOrder, row.TripID)
		}
		visitsByTrip[row.TripID] = append(visitsByTrip[row.TripID], visit{pos: row.StopSequence, stop: stop, arrival: arrival, departure: departure})
	}

	patternIndex := make(map[string]int)
	activeServices := make(map[int]map[string]bool)
	var patterns []*model.TripPattern
	locations := make(map[string]tripLocation, len(tripOrder))

	for _, tripID := range tripOrder {
		visits := visitsByTrip[tripID]
		sort.Slice(visits, func(i, j int) bool { return visits[i].pos < visits[j].pos })

		stops := make([]model.Stop, len(visits))
		arrivals := make([]int32, len(visits))
		departures := make([]int32, len(visits))
		for i, v := range visits {
			stops[i] = v.stop
			arrivals[i] = v.arrival
			departures[i] = v.departure
		}

		key := patternKey(stops)
		idx, ok := patternIndex[key]
		if !ok {
			idx = len(patterns)
			patternIndex[key] = idx
			patterns = append(patterns, model.NewTripPattern(int32(idx), stops))
			activeServices[idx] = make(map[string]bool)
		}

		trip := trips[tripID]
		pattern := patterns[idx]
		pattern.Trips = append(pattern.Trips, model.TripSchedule{
			RouteID: trip.RouteID, ServiceID: trip.ServiceID, Arrivals: arrivals, Departures: departures,
		})
		activeServices[idx][trip.ServiceID] = true
		locations[tripID] = tripLocation{pattern: idx, trip: len(pattern.Trips) - 1}
	}

	for idx, pattern := range patterns {
		services := activeServices[idx]
		pattern.ActiveServices = make([]string, 0, len(services))
		for id := range services {
			pattern.ActiveServices = append(pattern.ActiveServices, id)
		}
		sort.Strings(pattern.ActiveServices)
	}

	return patterns, locations, nil
}

func patternKey(stops []model.Stop) string {
	var b strings.Builder
	for _, s := range stops {
		fmt.Fprintf(&b, "%d,", s)
	}
	return b.String()
}

// attachFrequencies turns the template trip a frequencies.txt row points at
// into a frequency-based schedule: its Arrivals/Departures are rewritten as
// offsets from the trip's own first departure (model.TripSchedule's
// documented frequency-trip convention) and the Frequency window is
// appended. Must run before trips are sorted by FirstDeparture, since it
// looks trips up by their pre-sort location.
func attachFrequencies(path string, patterns []*model.TripPattern, locations map[string]tripLocation) {
	if !exists(path) {
		return
	}
	for row := range util.ReadCSVFromFile[frequencyRow](path, ',') {
		loc, ok := locations[row.TripID]
		if !ok {
			continue
		}
		start, err := parseTime(row.StartTime)
		if err != nil {
			slog.Warn("gtfsingest: skipping frequency", "trip_id", row.TripID, "err", err)
			continue
		}
		end, err := parseTime(row.EndTime)
		if err != nil {
			slog.Warn("gtfsingest: skipping frequency", "trip_id", row.TripID, "err", err)
			continue
		}

		trip := &patterns[loc.pattern].Trips[loc.trip]
		if !trip.IsFrequencyBased() {
			base := trip.Departures[0]
			for i := range trip.Arrivals {
				trip.Arrivals[i] -= base
			}
			for i := range trip.Departures {
				trip.Departures[i] -= base
			}
		}
		trip.Frequencies = append(trip.Frequencies, model.Frequency{
			StartTime: start, EndTime: end, HeadwaySeconds: int32(row.HeadwaySecs), ExactTimes: row.ExactTimes != 0,
		})
	}
}

func loadCalendar(calendarPath, calendarDatesPath string) (*transitdata.Calendar, error) {
	calendar := transitdata.NewCalendar()

	if exists(calendarPath) {
		for row := range util.ReadCSVFromFile[calendarRow](calendarPath, ',') {
			// GTFS column order is Monday..Sunday; Calendar.IsActive indexes
			// by time.Weekday (Sunday=0..Saturday=6).
			pattern := [7]bool{row.Sunday, row.Monday, row.Tuesday, row.Wednesday, row.Thursday, row.Friday, row.Saturday}
			calendar.SetWeeklyPattern(row.ServiceID, pattern, row.StartDate, row.EndDate)
		}
	}

	if exists(calendarDatesPath) {
		for row := range util.ReadCSVFromFile[calendarDateRow](calendarDatesPath, ',') {
			calendar.AddException(row.ServiceID, row.Date, row.ExceptionType == 1)
		}
	}

	return calendar, nil
}

func loadTransfers(path string, stopIndex map[string]model.Stop) []model.TransferLeg {
	if !exists(path) {
		return nil
	}
	var legs []model.TransferLeg
	for row := range util.ReadCSVFromFile[transferRow](path, ',') {
		if row.TransferType == 3 { // not possible
			continue
		}
		from, ok := stopIndex[row.FromStopID]
		if !ok {
			continue
		}
		to, ok := stopIndex[row.ToStopID]
		if !ok {
			continue
		}
		legs = append(legs, model.TransferLeg{FromStop: from, ToStop: to, DurationSeconds: int32(row.MinTransferTime)})
	}
	return legs
}
