package raptor

import (
	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/path"
	"github.com/rangeraptor/transitcore/state"
	"github.com/rangeraptor/transitcore/transitdata"
	"github.com/rangeraptor/transitcore/tripsearch"
	"github.com/rangeraptor/transitcore/util"
)

// MultiCriteriaWorker runs the pareto-optimal (arrival time, cost) sweep
// (spec §4.8). Same outer IDLE/PER_MINUTE/ROUND shape as StandardWorker but
// every stop holds a pareto set instead of a scalar best time, and a round's
// input is the previous round's newly added arrivals rather than a touched
// bitset alone.
type MultiCriteriaWorker struct {
	provider  transitdata.Provider
	calc      calculator.Calculator
	state     *state.MultiCriteriaState
	maxRounds int
}

func NewMultiCriteriaWorker(provider transitdata.Provider, calc calculator.Calculator, maxRounds int, factors state.CostFactors) *MultiCriteriaWorker {
	return &MultiCriteriaWorker{
		provider:  provider,
		calc:      calc,
		state:     state.NewMultiCriteriaState(provider.NumStops(), provider.NumPatterns(), calc, factors),
		maxRounds: maxRounds,
	}
}

// Run sweeps one request (a single departure-minute window collapsed to one
// multi-criteria search, since cost accumulates across the whole journey and
// does not admit the scalar range-RAPTOR reuse standard search uses) and
// returns every pareto-optimal Path found at the destination.
func (self *MultiCriteriaWorker) Run(accessLegs []model.AccessEgressLeg, egressLegs []model.AccessEgressLeg, departureTime int32, date string, active tripsearch.ServiceActive) []path.Path {
	self.state.ResetPerIteration()

	for _, leg := range accessLegs {
		arrival := self.calc.Add(departureTime, leg.DurationSeconds)
		if self.state.AddAccessArrival(leg.Stop, arrival, leg.DurationSeconds, 0) {
			self.markPatternsTouched(leg.Stop)
		}
	}
	// Round 0: relax transfers and check egress reachable directly from
	// access legs, before any pattern has been boarded.
	self.relaxTransfers(0)
	self.relaxEgress(egressLegs)
	self.state.MarkRoundEnd()
	self.state.ClearTouchedStops()
	self.state.AdvanceRound()

	for round := 1; round <= self.maxRounds && self.state.HasTouchedPatterns(); round++ {
		self.sweepPatterns(round, date, active)
		self.relaxTransfers(round)
		self.relaxEgress(egressLegs)
		self.state.MarkRoundEnd()
		self.state.ClearTouchedStops()
		self.state.AdvanceRound()
	}

	var results []path.Path
	self.state.Destination().All(func(arrival *state.StopArrival) {
		egress := egressLegFor(egressLegs, arrival.Stop)
		results = append(results, path.FromDestinationArrival(arrival, egress))
	})
	return results
}

func egressLegFor(egressLegs []model.AccessEgressLeg, stop model.Stop) model.AccessEgressLeg {
	for _, l := range egressLegs {
		if l.Stop == stop {
			return l
		}
	}
	return model.AccessEgressLeg{Stop: stop}
}

// sweepPatterns boards from every arrival the previous round added to a
// touched stop (via ForEachBoardableArrival / mark_at_end, spec §4.8),
// rather than rescanning the whole per-stop pareto set.
func (self *MultiCriteriaWorker) sweepPatterns(round int, date string, active tripsearch.ServiceActive) {
	self.state.TouchedPatterns().ForEachSet(func(p int32) {
		pattern := self.provider.Pattern(p)
		for pos := 0; pos < pattern.NumStops(); pos++ {
			stop := pattern.StopAt(pos)
			self.state.ForEachBoardableArrival(stop, func(boarded *state.StopArrival) {
				self.boardAndRide(pattern, p, pos, boarded, round, date, active)
			})
		}
	})
}

// boardAndRide finds the earliest trip boardable from boarded's arrival time
// at pos and propagates transit arrivals forward to every later stop of the
// pattern, producing one pareto candidate per downstream stop.
func (self *MultiCriteriaWorker) boardAndRide(pattern *model.TripPattern, patternIndex int32, pos int, boarded *state.StopArrival, round int, date string, active tripsearch.ServiceActive) {
	earliestBoard := self.calc.EarliestBoardTime(boarded.ArrivalTime)
	trip, tripIndex, boardTime, found := tripsearch.Search(pattern, pos, earliestBoard, date, active, util.None[int]())
	if !found {
		return
	}
	waitSeconds := boardTime - earliestBoard

	it := self.calc.PatternStopIteratorFrom(pos, pattern.NumStops())
	for it.HasNext() {
		downstreamPos := int(it.Next())
		alight := self.calc.LatestArrivalTime(trip, downstreamPos)
		stop := pattern.StopAt(downstreamPos)
		inVehicle := alight - boardTime
		if inVehicle < 0 {
			inVehicle = -inVehicle
		}
		if self.state.AddTransitArrival(stop, alight, boarded.Stop, boardTime, patternIndex, int32(tripIndex), round, boarded, waitSeconds, inVehicle) {
			self.markPatternsTouched(stop)
		}
		waitSeconds = 0 // wait is only charged once, at boarding
	}
}

func (self *MultiCriteriaWorker) relaxTransfers(round int) {
	self.state.ForEachTouchedStop(func(stop model.Stop) {
		self.state.ForEachNewArrival(stop, func(from *state.StopArrival) {
			cur := self.provider.TransfersFrom(stop)
			for cur.Next() {
				leg := cur.Value()
				arrival := self.calc.Add(from.ArrivalTime, leg.DurationSeconds)
				if self.state.AddTransferArrival(stop, leg, arrival, round, from) {
					self.markPatternsTouched(leg.ToStop)
				}
			}
		})
	})
}

func (self *MultiCriteriaWorker) relaxEgress(egressLegs []model.AccessEgressLeg) {
	for _, leg := range egressLegs {
		self.state.ForEachNewArrival(leg.Stop, func(from *state.StopArrival) {
			arrival := self.calc.Add(from.ArrivalTime, leg.DurationSeconds)
			self.state.AddEgressArrival(leg, arrival, from.Round, from)
		})
	}
}

func (self *MultiCriteriaWorker) markPatternsTouched(stop model.Stop) {
	cur := self.provider.PatternsForStop(stop)
	for cur.Next() {
		self.state.MarkPatternTouched(cur.Value())
	}
}
