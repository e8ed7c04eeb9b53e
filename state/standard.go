// Package state implements the per-(round, stop) arrival bookkeeping for
// both worker variants (spec §4.4 standard, §4.5 multi-criteria). Grounded on
// original_source's StdRangeRaptorWorkerState.java/Stops.java for the
// round/back-link shape, using the teacher's self-receiver idiom
// (comps/weighting.go).
package state

import (
	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/util"
)

const noStop = int32(-1)

// Arrival is one (round, stop) entry of the standard state: the best time
// reached and, if this round itself produced the improvement, enough to walk
// one step back towards the origin.
type Arrival struct {
	Time             int32
	Reached          bool
	ArrivedByTransit bool
	BoardStop        int32
	BoardTime        int32
	AlightTime       int32
	PatternIndex     int32
	TripIndex        int32
	TransferFromStop int32
}

// StandardState is the single-criterion (earliest arrival time only) stop
// arrival state: one best time per (round, stop), O(R*N_stops) as specified
// in §5. Best times persist across rounds (monotone, carried forward) and
// across range-RAPTOR iterations (departure minutes) within one worker call.
type StandardState struct {
	rounds   int
	numStops int
	calc     calculator.Calculator

	bestTime [][]int32
	arrivals [][]Arrival

	// bestNonTransferTime and touchedStopsForTransfer are current-round-only
	// scratch, reset at the start of every round (never carried), per §4.4.
	bestNonTransferTime   []int32
	touchedStopsForTransfer util.BitSet

	touchedPatterns     util.BitSet
	nextTouchedPatterns util.BitSet
}

func NewStandardState(rounds, numStops, numPatterns int, calc calculator.Calculator) *StandardState {
	s := &StandardState{
		rounds:                rounds,
		numStops:              numStops,
		calc:                  calc,
		bestTime:              make([][]int32, rounds+1),
		arrivals:              make([][]Arrival, rounds+1),
		bestNonTransferTime:   make([]int32, numStops),
		touchedStopsForTransfer: util.NewBitSet(int32(numStops)),
		touchedPatterns:       util.NewBitSet(int32(numPatterns)),
		nextTouchedPatterns:   util.NewBitSet(int32(numPatterns)),
	}
	for k := 0; k <= rounds; k++ {
		s.bestTime[k] = make([]int32, numStops)
		s.arrivals[k] = make([]Arrival, numStops)
		for i := 0; i < numStops; i++ {
			s.bestTime[k][i] = calc.UnreachedTime()
			s.arrivals[k][i].BoardStop = noStop
			s.arrivals[k][i].TransferFromStop = noStop
		}
	}
	return s
}

func (self *StandardState) Rounds() int    { return self.rounds }
func (self *StandardState) NumStops() int  { return self.numStops }

// SnapshotBestTime copies the carried-forward best-time arrays so a caller
// can run a hypothetical sweep (e.g. a WORST_CASE/RANDOM frequency mode)
// and then restore the pre-sweep baseline, keeping only one mode's results
// as the upper bound carried into the next departure minute.
func (self *StandardState) SnapshotBestTime() [][]int32 {
	snap := make([][]int32, len(self.bestTime))
	for k, row := range self.bestTime {
		snap[k] = append([]int32(nil), row...)
	}
	return snap
}

func (self *StandardState) RestoreBestTime(snap [][]int32) {
	for k, row := range snap {
		copy(self.bestTime[k], row)
	}
}

// ResetPerIteration clears round-local scratch for a fresh departure minute
// while preserving the carried-over best times, the range-RAPTOR upper
// bound (spec: "init_new_departure_for_minute resets per-minute scratch...
// but preserves carried-over best times").
func (self *StandardState) ResetPerIteration() {
	self.touchedPatterns.ClearAll()
	self.nextTouchedPatterns.ClearAll()
	self.touchedStopsForTransfer.ClearAll()
	for s := range self.bestNonTransferTime {
		self.bestNonTransferTime[s] = self.calc.UnreachedTime()
	}
}

// SetInitialTime seeds round 0 from an access leg; only improves, never
// regresses, an existing value (so later, earlier-departure minutes can
// only make round 0 better, matching the range-RAPTOR invariant).
func (self *StandardState) SetInitialTime(stop model.Stop, arrivalTime int32, durationSeconds int32) bool {
	if !self.calc.IsBest(arrivalTime, self.bestTime[0][stop]) {
		return false
	}
	self.bestTime[0][stop] = arrivalTime
	self.bestNonTransferTime[stop] = arrivalTime
	a := &self.arrivals[0][stop]
	a.Time = arrivalTime
	a.Reached = true
	a.ArrivedByTransit = false
	a.BoardStop = noStop
	a.TransferFromStop = noStop
	a.AlightTime = arrivalTime
	self.touchedStopsForTransfer.Set(stop)
	return true
}

// BeginRound carries the previous round's best times forward (never
// regressing round k below round k-1, per the monotone-improvement
// invariant) and resets this round's transient best-non-transfer-time
// scratch. Must be called once per round before sweeping patterns.
func (self *StandardState) BeginRound(round int) {
	if round > 0 {
		prev := self.bestTime[round-1]
		cur := self.bestTime[round]
		for s := 0; s < self.numStops; s++ {
			if self.calc.IsBest(prev[s], cur[s]) {
				cur[s] = prev[s]
				self.arrivals[round][s] = self.arrivals[round-1][s]
			}
		}
	}
	for s := range self.bestNonTransferTime {
		self.bestNonTransferTime[s] = self.calc.UnreachedTime()
	}
	self.touchedStopsForTransfer.ClearAll()
}

func (self *StandardState) BestTime(round int, stop model.Stop) int32 {
	return self.bestTime[round][stop]
}

func (self *StandardState) BestTimePreviousRound(round int, stop model.Stop) int32 {
	return self.bestTime[round-1][stop]
}

func (self *StandardState) BestNonTransferTime(stop model.Stop) int32 {
	return self.bestNonTransferTime[stop]
}

func (self *StandardState) Arrival(round int, stop model.Stop) Arrival {
	return self.arrivals[round][stop]
}

// TransitToStop applies a candidate transit (board/ride/alight) arrival
// discovered while sweeping a pattern in the given round. Returns true iff
// it improved the round's overall best time at stop (not merely the
// round-local best-non-transfer-time).
func (self *StandardState) TransitToStop(round int, stop model.Stop, alightTime int32, boardStop model.Stop, boardTime int32, patternIndex, tripIndex int32) bool {
	if !self.calc.IsBest(alightTime, self.bestNonTransferTime[stop]) {
		return false
	}
	self.bestNonTransferTime[stop] = alightTime
	self.touchedStopsForTransfer.Set(stop)

	if !self.calc.IsBest(alightTime, self.bestTime[round][stop]) {
		return false
	}
	self.bestTime[round][stop] = alightTime
	a := &self.arrivals[round][stop]
	a.Time = alightTime
	a.Reached = true
	a.ArrivedByTransit = true
	a.BoardStop = boardStop
	a.BoardTime = boardTime
	a.AlightTime = alightTime
	a.PatternIndex = patternIndex
	a.TripIndex = tripIndex
	a.TransferFromStop = noStop
	return true
}

// TransferToStop applies a candidate transfer arrival. Returns true iff it
// improved the round's best time at the transfer's destination stop.
func (self *StandardState) TransferToStop(round int, fromStop model.Stop, leg model.TransferLeg, arrivalTime int32) bool {
	stop := leg.ToStop
	if !self.calc.IsBest(arrivalTime, self.bestTime[round][stop]) {
		return false
	}
	self.bestTime[round][stop] = arrivalTime
	a := &self.arrivals[round][stop]
	a.Time = arrivalTime
	a.Reached = true
	a.ArrivedByTransit = false
	a.BoardStop = noStop
	a.TransferFromStop = fromStop
	a.AlightTime = arrivalTime
	return true
}

func (self *StandardState) MarkPatternTouched(pattern int32) {
	self.nextTouchedPatterns.Set(pattern)
}

func (self *StandardState) TouchedPatterns() *util.BitSet {
	return &self.touchedPatterns
}

// AdvanceRound swaps the next-round touched-pattern set into place for the
// upcoming round and clears the (now free) other buffer.
func (self *StandardState) AdvanceRound() {
	self.touchedPatterns, self.nextTouchedPatterns = self.nextTouchedPatterns, self.touchedPatterns
	self.nextTouchedPatterns.ClearAll()
}

func (self *StandardState) HasTouchedPatterns() bool {
	return self.touchedPatterns.Any()
}

// ForEachTouchedStopForTransfer calls f with every stop whose
// best-non-transfer-time improved during the current round - the set to
// relax transfers from (spec §4.7 step 2).
func (self *StandardState) ForEachTouchedStopForTransfer(f func(stop model.Stop)) {
	self.touchedStopsForTransfer.ForEachSet(func(i int32) { f(i) })
}
