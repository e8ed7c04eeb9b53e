// Package path reconstructs Path objects from a destination pareto-set
// arrival by walking back-links (spec §4.9), grounded on
// routing/transit_dijkstra.go's GetShortestPath: walk ref pointers to the
// origin, then reverse.
package path

import (
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/state"
)

type LegKind byte

const (
	Access LegKind = iota
	Transit
	Transfer
	Egress
)

// Leg is one self-contained hop of a Path: start/end times and stops are
// always consistent (start + duration = end), independent of any worker
// state this Path was derived from.
type Leg struct {
	Kind         LegKind
	FromStop     model.Stop
	ToStop       model.Stop
	StartTime    int32
	EndTime      int32
	PatternIndex int32 // only meaningful for Transit legs
	TripIndex    int32 // only meaningful for Transit legs
}

// Path is a freshly allocated, self-contained itinerary: access, then
// alternating transit/transfer, then egress. It holds no reference into any
// reused worker state (spec §4.9).
type Path struct {
	Legs        []Leg
	ArrivalTime int32
	Cost        float64
	NumTransits int32
}

// FromDestinationArrival walks arrival's back-link chain to the origin and
// returns the legs in travel order (reversing the walk, which proceeds
// backward from destination to origin).
func FromDestinationArrival(arrival *state.StopArrival, egress model.AccessEgressLeg) Path {
	var legs []Leg

	egressStart := arrival.ArrivalTime - arrival.LegDuration
	legs = append(legs, Leg{
		Kind:      Egress,
		FromStop:  egress.Stop,
		ToStop:    egress.Stop,
		StartTime: egressStart,
		EndTime:   arrival.ArrivalTime,
	})

	cur := arrival.Predecessor
	for cur != nil {
		legs = append(legs, legFor(cur))
		cur = cur.Predecessor
	}

	// legs were appended destination-first; reverse into travel order.
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}

	return Path{
		Legs:        legs,
		ArrivalTime: arrival.ArrivalTime,
		Cost:        arrival.Cost,
		NumTransits: arrival.NumTransits,
	}
}

// legFor builds the leg that produced arrival a, self-contained from a's own
// fields: its end time is always a.ArrivalTime, the time that arrival was
// recorded in the pareto set.
func legFor(a *state.StopArrival) Leg {
	switch {
	case a.IsAccess:
		return Leg{
			Kind:      Access,
			FromStop:  a.Stop,
			ToStop:    a.Stop,
			StartTime: a.ArrivalTime - a.WalkSeconds,
			EndTime:   a.ArrivalTime,
		}
	case a.ArrivedByTransit:
		return Leg{
			Kind:         Transit,
			FromStop:     a.BoardStop,
			ToStop:       a.Stop,
			StartTime:    a.BoardTime,
			EndTime:      a.ArrivalTime,
			PatternIndex: a.PatternIndex,
			TripIndex:    a.TripIndex,
		}
	default:
		return Leg{
			Kind:      Transfer,
			FromStop:  a.TransferFromStop,
			ToStop:    a.Stop,
			StartTime: a.ArrivalTime - a.LegDuration,
			EndTime:   a.ArrivalTime,
		}
	}
}
