package state

import (
	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/pareto"
	"github.com/rangeraptor/transitcore/util"
)

// CostFactors weighs the non-time legs of a multi-criteria cost (spec §9
// MultiCriteriaCostFactors): cost = board_cost*n_transits +
// walk_reluctance*walk_time + wait_reluctance*wait_time + in_vehicle_time.
type CostFactors struct {
	BoardCostPerTransit float64
	WalkReluctance      float64
	WaitReluctance      float64
}

type CostFactorsOption func(*CostFactors)

func WithBoardCost(cost float64) CostFactorsOption {
	return func(c *CostFactors) { c.BoardCostPerTransit = cost }
}

func WithWalkReluctance(r float64) CostFactorsOption {
	return func(c *CostFactors) { c.WalkReluctance = r }
}

func WithWaitReluctance(r float64) CostFactorsOption {
	return func(c *CostFactors) { c.WaitReluctance = r }
}

func NewCostFactors(opts ...CostFactorsOption) CostFactors {
	c := CostFactors{BoardCostPerTransit: 300, WalkReluctance: 4.0, WaitReluctance: 1.0}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// StopArrival is one pareto-optimal (arrival_time, cost) candidate at a stop,
// back-linked to its predecessor so a full path can be walked without
// touching any other worker state (spec §4.5, §4.9).
type StopArrival struct {
	Stop             model.Stop
	ArrivalTime      int32
	Cost             float64
	Round            int
	ArrivedByTransit bool
	Predecessor      *StopArrival

	// Leg detail needed to reconstruct the leg that produced this arrival.
	IsAccess         bool
	IsEgress         bool
	BoardStop        model.Stop
	BoardTime        int32
	PatternIndex     int32
	TripIndex        int32
	TransferFromStop model.Stop
	LegDuration      int32

	// Cumulative totals, carried forward and extended leg by leg, used to
	// recompute cost when a new leg is appended.
	NumTransits      int32
	WalkSeconds      int32
	WaitSeconds      int32
	InVehicleSeconds int32
}

func (a *StopArrival) cost(factors CostFactors) float64 {
	return factors.BoardCostPerTransit*float64(a.NumTransits) +
		factors.WalkReluctance*float64(a.WalkSeconds) +
		factors.WaitReluctance*float64(a.WaitSeconds) +
		float64(a.InVehicleSeconds)
}

// MultiCriteriaState holds one pareto-optimal arrival set per stop plus a
// destination-wide set fed by egress-annotated arrivals. Sets accumulate
// across the whole search (every round, every range-RAPTOR minute); each
// set keeps a pair of insertion-sequence marks (pareto.Set.MarkAtEnd) so the
// window between them - exactly what the round that just finished produced
// - can be read back (StreamMarkedRound) without rescanning the whole set,
// to seed the next round's boarding search.
type MultiCriteriaState struct {
	numStops    int
	calc        calculator.Calculator
	factors     CostFactors
	perStop     []*pareto.Set[*StopArrival]
	destination *pareto.Set[*StopArrival]

	touchedStops        util.BitSet
	touchedPatterns     util.BitSet
	nextTouchedPatterns util.BitSet
}

func NewMultiCriteriaState(numStops, numPatterns int, calc calculator.Calculator, factors CostFactors) *MultiCriteriaState {
	s := &MultiCriteriaState{
		numStops:            numStops,
		calc:                calc,
		factors:             factors,
		perStop:             make([]*pareto.Set[*StopArrival], numStops),
		touchedStops:        util.NewBitSet(int32(numStops)),
		touchedPatterns:     util.NewBitSet(int32(numPatterns)),
		nextTouchedPatterns: util.NewBitSet(int32(numPatterns)),
	}
	for i := 0; i < numStops; i++ {
		s.perStop[i] = pareto.New[*StopArrival](pareto.ComparatorFunc[*StopArrival](s.leftDominates))
	}
	s.destination = pareto.New[*StopArrival](pareto.ComparatorFunc[*StopArrival](s.leftDominates))
	return s
}

// leftDominates implements the pareto order over (arrival_time, cost) with
// an arrived-by-transit tiebreak for exact ties: a genuine ride is kept over
// a same-time, same-cost transfer-only duplicate.
func (self *MultiCriteriaState) leftDominates(a, b *StopArrival) bool {
	if a.ArrivalTime == b.ArrivalTime && a.Cost == b.Cost {
		return a.ArrivedByTransit && !b.ArrivedByTransit
	}
	timeAtLeastAsGood := !self.calc.IsBest(b.ArrivalTime, a.ArrivalTime)
	costAtLeastAsGood := a.Cost <= b.Cost
	strictlyBetter := self.calc.IsBest(a.ArrivalTime, b.ArrivalTime) || a.Cost < b.Cost
	return timeAtLeastAsGood && costAtLeastAsGood && strictlyBetter
}

func (self *MultiCriteriaState) ResetPerIteration() {
	self.touchedPatterns.ClearAll()
	self.nextTouchedPatterns.ClearAll()
}

func (self *MultiCriteriaState) StopSet(stop model.Stop) *pareto.Set[*StopArrival] {
	return self.perStop[stop]
}

func (self *MultiCriteriaState) Destination() *pareto.Set[*StopArrival] {
	return self.destination
}

// AddAccessArrival seeds a stop's pareto set from an access leg (round 0).
func (self *MultiCriteriaState) AddAccessArrival(stop model.Stop, arrivalTime int32, walkSeconds int32, round int) bool {
	cand := &StopArrival{
		Stop:        stop,
		ArrivalTime: arrivalTime,
		Round:       round,
		IsAccess:    true,
		WalkSeconds: walkSeconds,
	}
	cand.Cost = cand.cost(self.factors)
	return self.addToStop(stop, cand)
}

// AddTransitArrival extends a predecessor pareto arrival by one transit leg.
func (self *MultiCriteriaState) AddTransitArrival(stop model.Stop, arrivalTime int32, boardStop model.Stop, boardTime int32, patternIndex, tripIndex int32, round int, predecessor *StopArrival, waitSeconds, inVehicleSeconds int32) bool {
	cand := &StopArrival{
		Stop:             stop,
		ArrivalTime:      arrivalTime,
		Round:            round,
		ArrivedByTransit: true,
		Predecessor:      predecessor,
		BoardStop:        boardStop,
		BoardTime:        boardTime,
		PatternIndex:     patternIndex,
		TripIndex:        tripIndex,
		TransferFromStop: noStop,
		NumTransits:      predecessor.NumTransits + 1,
		WalkSeconds:      predecessor.WalkSeconds,
		WaitSeconds:      predecessor.WaitSeconds + waitSeconds,
		InVehicleSeconds: predecessor.InVehicleSeconds + inVehicleSeconds,
	}
	cand.Cost = cand.cost(self.factors)
	return self.addToStop(stop, cand)
}

// AddTransferArrival extends a predecessor pareto arrival by one transfer leg.
func (self *MultiCriteriaState) AddTransferArrival(fromStop model.Stop, leg model.TransferLeg, arrivalTime int32, round int, predecessor *StopArrival) bool {
	cand := &StopArrival{
		Stop:             leg.ToStop,
		ArrivalTime:      arrivalTime,
		Round:            round,
		ArrivedByTransit: false,
		Predecessor:      predecessor,
		TransferFromStop: fromStop,
		LegDuration:      leg.DurationSeconds,
		NumTransits:      predecessor.NumTransits,
		WalkSeconds:      predecessor.WalkSeconds + leg.DurationSeconds,
		WaitSeconds:      predecessor.WaitSeconds,
		InVehicleSeconds: predecessor.InVehicleSeconds,
	}
	cand.Cost = cand.cost(self.factors)
	return self.addToStop(leg.ToStop, cand)
}

// AddEgressArrival extends a predecessor pareto arrival by an egress leg and
// feeds the destination-wide pareto set rather than a per-stop one.
func (self *MultiCriteriaState) AddEgressArrival(leg model.AccessEgressLeg, arrivalTime int32, round int, predecessor *StopArrival) bool {
	cand := &StopArrival{
		Stop:             leg.Stop,
		ArrivalTime:      arrivalTime,
		Round:            round,
		ArrivedByTransit: predecessor.ArrivedByTransit,
		Predecessor:      predecessor,
		IsEgress:         true,
		LegDuration:      leg.DurationSeconds,
		NumTransits:      predecessor.NumTransits,
		WalkSeconds:      predecessor.WalkSeconds + leg.DurationSeconds,
		WaitSeconds:      predecessor.WaitSeconds,
		InVehicleSeconds: predecessor.InVehicleSeconds,
	}
	cand.Cost = cand.cost(self.factors)
	return self.destination.Add(cand)
}

func (self *MultiCriteriaState) addToStop(stop model.Stop, cand *StopArrival) bool {
	added := self.perStop[stop].Add(cand)
	if added {
		self.touchedStops.Set(stop)
	}
	return added
}

// MarkRoundEnd snapshots every per-stop set's insertion marker so the round
// just finished can be told apart from the round before it: boarding reads
// ForEachBoardableArrival (strictly the round that just ended), while a
// later step in the same round reads ForEachNewArrival (everything that
// round has added so far).
func (self *MultiCriteriaState) MarkRoundEnd() {
	for _, set := range self.perStop {
		set.MarkAtEnd()
	}
}

// ForEachNewArrival iterates the arrivals added to stop's pareto set at or
// after the last MarkRoundEnd call - a round's own productions so far, used
// once that round has already started boarding (relaxing transfers, egress).
func (self *MultiCriteriaState) ForEachNewArrival(stop model.Stop, f func(*StopArrival)) {
	self.perStop[stop].StreamAfterMarker(f)
}

// ForEachBoardableArrival iterates exactly the arrivals the previous round
// added - the window between the two most recent MarkRoundEnd calls - used
// to seed the current round's boarding search.
func (self *MultiCriteriaState) ForEachBoardableArrival(stop model.Stop, f func(*StopArrival)) {
	self.perStop[stop].StreamMarkedRound(f)
}

func (self *MultiCriteriaState) ForEachTouchedStop(f func(stop model.Stop)) {
	self.touchedStops.ForEachSet(func(i int32) { f(i) })
}

func (self *MultiCriteriaState) ClearTouchedStops() {
	self.touchedStops.ClearAll()
}

func (self *MultiCriteriaState) MarkPatternTouched(pattern int32) {
	self.nextTouchedPatterns.Set(pattern)
}

func (self *MultiCriteriaState) TouchedPatterns() *util.BitSet {
	return &self.touchedPatterns
}

func (self *MultiCriteriaState) AdvanceRound() {
	self.touchedPatterns, self.nextTouchedPatterns = self.nextTouchedPatterns, self.touchedPatterns
	self.nextTouchedPatterns.ClearAll()
}

func (self *MultiCriteriaState) HasTouchedPatterns() bool {
	return self.touchedPatterns.Any()
}
