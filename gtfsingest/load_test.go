package gtfsingest

import "testing"

func TestLoadFeedBuildsStopIndex(t *testing.T) {
	feed, err := LoadFeed("testdata")
	if err != nil {
		t.Fatalf("LoadFeed returned an error: %v", err)
	}
	if feed.Provider.NumStops() != 3 {
		t.Fatalf("NumStops() = %d; want 3", feed.Provider.NumStops())
	}
	for _, id := range []string{"s1", "s2", "s3"} {
		if _, ok := feed.StopIndex[id]; !ok {
			t.Errorf("StopIndex missing %q", id)
		}
	}
	if len(feed.StopID) != 3 || feed.StopID[feed.StopIndex["s2"]] != "s2" {
		t.Errorf("StopID does not round-trip through StopIndex: %+v", feed.StopID)
	}
}

func TestLoadFeedBuildsOneScheduledPattern(t *testing.T) {
	feed, err := LoadFeed("testdata")
	if err != nil {
		t.Fatalf("LoadFeed returned an error: %v", err)
	}
	if feed.Provider.NumPatterns() != 1 {
		t.Fatalf("NumPatterns() = %d; want 1 (t1 and t2 share the same stop sequence)", feed.Provider.NumPatterns())
	}
	pattern := feed.Provider.Pattern(0)
	if pattern.NumStops() != 3 {
		t.Fatalf("NumStops() = %d; want 3", pattern.NumStops())
	}
	if pattern.NumTrips() != 2 {
		t.Fatalf("NumTrips() = %d; want 2 (t1 scheduled, t2 frequency-based)", pattern.NumTrips())
	}
}

func TestLoadFeedConvertsScheduledTimesToAbsoluteSeconds(t *testing.T) {
	feed, err := LoadFeed("testdata")
	if err != nil {
		t.Fatalf("LoadFeed returned an error: %v", err)
	}
	pattern := feed.Provider.Pattern(0)
	var found bool
	for i := 0; i < pattern.NumTrips(); i++ {
		trip := pattern.TripAt(i)
		if trip.IsFrequencyBased() {
			continue
		}
		found = true
		if trip.DepartureAt(0) != 8*3600 {
			t.Errorf("first departure = %d; want %d (08:00:00)", trip.DepartureAt(0), 8*3600)
		}
		if trip.ArrivalAt(2) != 8*3600+20*60 {
			t.Errorf("last arrival = %d; want %d (08:20:00)", trip.ArrivalAt(2), 8*3600+20*60)
		}
	}
	if !found {
		t.Fatalf("expected a scheduled (non frequency-based) trip in the pattern")
	}
}

func TestLoadFeedRewritesFrequencyTripAsOffsets(t *testing.T) {
	feed, err := LoadFeed("testdata")
	if err != nil {
		t.Fatalf("LoadFeed returned an error: %v", err)
	}
	pattern := feed.Provider.Pattern(0)
	var found bool
	for i := 0; i < pattern.NumTrips(); i++ {
		trip := pattern.TripAt(i)
		if !trip.IsFrequencyBased() {
			continue
		}
		found = true
		if trip.DepartureAt(0) != 0 {
			t.Errorf("frequency trip's first departure offset = %d; want 0", trip.DepartureAt(0))
		}
		if trip.DepartureAt(2) != 12*60 {
			t.Errorf("frequency trip's last departure offset = %d; want %d (06:12:00 - 06:00:00)", trip.DepartureAt(2), 12*60)
		}
		if len(trip.Frequencies) != 1 || trip.Frequencies[0].HeadwaySeconds != 600 {
			t.Errorf("Frequencies = %+v; want one entry with a 600s headway", trip.Frequencies)
		}
	}
	if !found {
		t.Fatalf("expected a frequency-based trip in the pattern")
	}
}

func TestLoadFeedAppliesCalendarAndTransfers(t *testing.T) {
	feed, err := LoadFeed("testdata")
	if err != nil {
		t.Fatalf("LoadFeed returned an error: %v", err)
	}
	if !feed.Provider.IsServiceActive("weekday", "20260803") {
		t.Errorf("weekday service should be active on 2026-08-03 (a Monday)")
	}
	if feed.Provider.IsServiceActive("weekday", "20261225") {
		t.Errorf("calendar_dates.txt removes weekday service on 2026-12-25")
	}

	cur := feed.Provider.TransfersFrom(feed.StopIndex["s2"])
	count := 0
	for cur.Next() {
		leg := cur.Value()
		if leg.ToStop != feed.StopIndex["s3"] {
			t.Errorf("transfer leg goes to stop %d; want s3's index", leg.ToStop)
		}
		count++
	}
	if count != 1 {
		t.Errorf("TransfersFrom(s2) returned %d legs; want 1 (the transfer_type=3 s1->s3 row must be dropped)", count)
	}
}
