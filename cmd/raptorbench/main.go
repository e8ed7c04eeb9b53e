// Command raptorbench loads a GTFS feed from disk and times a Range-RAPTOR
// search across it, printing the per-iteration elapsed travel time to one stop (or
// every pareto-optimal path, for the multi_criteria profile).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/exp/slog"

	"github.com/rangeraptor/transitcore/gtfsingest"
	"github.com/rangeraptor/transitcore/logging"
	"github.com/rangeraptor/transitcore/metrics"
	"github.com/rangeraptor/transitcore/raptorservice"
)

func main() {
	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, nil)))

	feedDir := flag.String("feed", "", "directory containing a GTFS feed (stops.txt, trips.txt, stop_times.txt, ...)")
	fromStop := flag.String("from", "", "GTFS stop_id to depart from")
	toStop := flag.String("to", "", "GTFS stop_id to arrive at")
	date := flag.String("date", "", "service date, YYYYMMDD")
	earliest := flag.Int("earliest", 0, "earliest departure time, seconds since midnight")
	latest := flag.Int("latest", 3600, "latest departure time, seconds since midnight (range_raptor/std_range_raptor_with_heuristics profiles)")
	profile := flag.String("profile", "range_raptor", "standard|range_raptor|std_range_raptor_with_heuristics|multi_criteria")
	flag.Parse()

	if *feedDir == "" || *fromStop == "" || *toStop == "" || *date == "" {
		fmt.Fprintln(os.Stderr, "usage: raptorbench -feed DIR -from STOP_ID -to STOP_ID -date YYYYMMDD")
		os.Exit(2)
	}

	feed, err := gtfsingest.LoadFeed(*feedDir)
	if err != nil {
		slog.Error("raptorbench: loading feed", "err", err)
		os.Exit(1)
	}

	from, ok := feed.StopIndex[*fromStop]
	if !ok {
		slog.Error("raptorbench: unknown from stop", "stop_id", *fromStop)
		os.Exit(1)
	}
	to, ok := feed.StopIndex[*toStop]
	if !ok {
		slog.Error("raptorbench: unknown to stop", "stop_id", *toStop)
		os.Exit(1)
	}

	svc := raptorservice.NewService(feed.Provider, raptorservice.DefaultConfig(), metrics.NewCollector())

	req := raptorservice.Request{
		EarliestDepartureTime: int32(*earliest),
		LatestDepartureTime:   int32(*latest),
		AccessLegs:            []raptorservice.Leg{{Stop: from}},
		EgressLegs:            []raptorservice.Leg{{Stop: to}},
		Profile:               raptorservice.Profile(*profile),
		Date:                  *date,
	}

	start := time.Now()
	resp, err := svc.Route(req)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("raptorbench: route failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("searched %d stops, %d patterns in %s\n", feed.Provider.NumStops(), feed.Provider.NumPatterns(), elapsed)
	switch {
	case len(resp.Paths) > 0:
		for _, p := range resp.Paths {
			fmt.Printf("arrival=%d cost=%.1f transits=%d legs=%d\n", p.ArrivalTime, p.Cost, p.NumTransits, len(p.Legs))
		}
	default:
		for _, it := range resp.Iterations {
			fmt.Printf("departure=%d elapsed=%d\n", it.DepartureTime, it.ArrivalTimes[0])
		}
	}
}
