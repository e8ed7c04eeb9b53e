package raptor

import (
	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/state"
	"github.com/rangeraptor/transitcore/transitdata"
	"github.com/rangeraptor/transitcore/tripsearch"
	"github.com/rangeraptor/transitcore/util"
)

// Unreached is the sentinel elapsed-time value for an egress stop that was
// never reached within the search, per spec §6's response format.
const Unreached = int32(1<<31 - 1)

// rideKind tags which of the two boarding mechanisms a pattern walk is
// currently riding, the "tagged-variant implementation" spec §9 calls for so
// the hot loop stays monomorphic.
type rideKind byte

const (
	rideNone rideKind = iota
	rideScheduled
	rideFrequency
)

type ride struct {
	kind      rideKind
	tripIndex int
	boardStop model.Stop
	boardTime int32
	boardPos  int
}

// IterationResult is one departure-minute's (and, for frequency networks,
// one boarding-mode's) outcome: elapsed seconds to each egress leg in the
// request, Unreached where no path exists.
type IterationResult struct {
	DepartureTime int32
	Mode          BoardingMode
	ArrivalTimes  []int32
}

// StandardWorker runs the single-criterion (earliest arrival only)
// Range-RAPTOR sweep (spec §4.7). One instance is single-threaded and
// non-suspending (§5); it owns its state exclusively and reuses it across
// every departure minute of one RunRangeRaptor call.
type StandardWorker struct {
	provider transitdata.Provider
	calc     calculator.Calculator
	state    *state.StandardState
	maxRounds int

	frequenciesEnabled      bool
	rng                     *util.FrequencyRandom
	monteCarloDrawsPerMinute int
}

func NewStandardWorker(provider transitdata.Provider, calc calculator.Calculator, maxRounds int, frequenciesEnabled bool, rng *util.FrequencyRandom, monteCarloDrawsPerMinute int) *StandardWorker {
	return &StandardWorker{
		provider:                 provider,
		calc:                     calc,
		state:                    state.NewStandardState(maxRounds, provider.NumStops(), provider.NumPatterns(), calc),
		maxRounds:                maxRounds,
		frequenciesEnabled:       frequenciesEnabled,
		rng:                      rng,
		monteCarloDrawsPerMinute: monteCarloDrawsPerMinute,
	}
}

// RunRangeRaptor sweeps every departure minute in [earliestDeparture,
// latestDeparture] (direction-ordered by the calculator), reusing best-time
// state as an upper bound across minutes per the range-RAPTOR reuse rule.
func (self *StandardWorker) RunRangeRaptor(accessLegs, egressLegs []model.AccessEgressLeg, earliestDeparture, latestDeparture, iterationStep int32, date string, active tripsearch.ServiceActive) []IterationResult {
	var results []IterationResult

	minutes := self.calc.RangeRaptorMinutes(earliestDeparture, latestDeparture, iterationStep)
	for minutes.HasNext() {
		minute := minutes.Next()

		if !self.frequenciesEnabled {
			self.state.ResetPerIteration()
			self.sweepOneIteration(minute, ScheduledOnly, date, accessLegs, active)
			results = append(results, self.extract(minute, ScheduledOnly, egressLegs))
			continue
		}

		baseline := self.state.SnapshotBestTime()
		modes := make([]BoardingMode, 0, 2+self.monteCarloDrawsPerMinute)
		modes = append(modes, BestCase, WorstCase)
		for i := 0; i < self.monteCarloDrawsPerMinute; i++ {
			modes = append(modes, Random)
		}

		var bestCaseSnapshot [][]int32
		for i, mode := range modes {
			if i > 0 {
				self.state.RestoreBestTime(baseline)
			}
			self.state.ResetPerIteration()
			self.sweepOneIteration(minute, mode, date, accessLegs, active)
			results = append(results, self.extract(minute, mode, egressLegs))
			if mode == BestCase {
				bestCaseSnapshot = self.state.SnapshotBestTime()
			}
		}
		// BEST_CASE is the optimistic, admissible bound: carry only its
		// resulting best times forward into the next (earlier) minute.
		self.state.RestoreBestTime(bestCaseSnapshot)
	}
	return results
}

func (self *StandardWorker) sweepOneIteration(minute int32, mode BoardingMode, date string, accessLegs []model.AccessEgressLeg, active tripsearch.ServiceActive) {
	for _, leg := range accessLegs {
		arrival := self.calc.Add(minute, leg.DurationSeconds)
		if self.state.SetInitialTime(leg.Stop, arrival, leg.DurationSeconds) {
			self.markPatternsTouched(leg.Stop)
		}
	}
	// Round 0: relax transfers reachable directly from access legs, before
	// any pattern has been boarded.
	self.relaxTransfers(0)
	self.state.AdvanceRound()

	round := 1
	forcedExtraRound := false
	for round <= self.maxRounds {
		if !self.state.HasTouchedPatterns() {
			if !self.frequenciesEnabled || forcedExtraRound {
				break
			}
			// spec §4.7: frequency rounds continue for at least
			// scheduled-rounds + 1 once scheduled exploration is exhausted.
			forcedExtraRound = true
		}

		self.state.BeginRound(round)
		self.sweepPatterns(round, mode, date, active)
		self.relaxTransfers(round)
		self.state.AdvanceRound()
		round++
	}
}

func (self *StandardWorker) sweepPatterns(round int, mode BoardingMode, date string, active tripsearch.ServiceActive) {
	self.state.TouchedPatterns().ForEachSet(func(p int32) {
		self.sweepPattern(p, round, mode, date, active)
	})
}

func (self *StandardWorker) sweepPattern(patternIndex int32, round int, mode BoardingMode, date string, active tripsearch.ServiceActive) {
	pattern := self.provider.Pattern(patternIndex)
	it := self.calc.PatternStopIterator(pattern.NumStops())

	var r ride
	riddenFrequencyThisRound := false

	for it.HasNext() {
		pos := int(it.Next())
		stop := pattern.StopAt(pos)

		if r.kind != rideNone {
			alight := self.alightTime(pattern, r, pos)
			if !self.calc.ExceedsTimeLimit(alight) {
				if self.state.TransitToStop(round, stop, alight, r.boardStop, r.boardTime, patternIndex, int32(r.tripIndex)) {
					self.markPatternsTouched(stop)
				}
			}
		}

		prevBest := self.state.BestTimePreviousRound(round, stop)
		if prevBest == self.calc.UnreachedTime() {
			continue
		}
		earliestBoard := self.calc.EarliestBoardTime(prevBest)

		if !riddenFrequencyThisRound {
			var current util.Optional[int]
			if r.kind == rideScheduled {
				current = util.Some(r.tripIndex)
			}
			skipReboard := false
			if r.kind == rideScheduled && round > 0 {
				prevArr := self.state.Arrival(round-1, stop)
				skipReboard = prevArr.ArrivedByTransit && prevArr.PatternIndex == patternIndex && prevArr.BoardStop == r.boardStop
			}
			if !skipReboard {
				if _, idx, boardTime, found := tripsearch.Search(pattern, pos, earliestBoard, date, active, current); found {
					if r.kind != rideScheduled || idx != r.tripIndex {
						r = ride{kind: rideScheduled, tripIndex: idx, boardStop: stop, boardTime: boardTime, boardPos: pos}
					}
				}
			}
		}

		if self.frequenciesEnabled && mode != ScheduledOnly {
			if idx, boardTime, ok := self.findFrequencyBoarding(pattern, pos, earliestBoard, date, mode, active); ok {
				switchTo := r.kind == rideNone || self.calc.IsBest(boardTime, r.boardTime)
				if switchTo {
					r = ride{kind: rideFrequency, tripIndex: idx, boardStop: stop, boardTime: boardTime, boardPos: pos}
					riddenFrequencyThisRound = true
				}
			}
		}
	}
}

func (self *StandardWorker) alightTime(pattern *model.TripPattern, r ride, pos int) int32 {
	trip := pattern.TripAt(r.tripIndex)
	if r.kind == rideScheduled {
		return self.calc.LatestArrivalTime(trip, pos)
	}
	delta := trip.ArrivalAt(pos) - trip.DepartureAt(r.boardPos)
	return r.boardTime + delta
}

// findFrequencyBoarding looks for a frequency entry on pattern that can be
// boarded at pos no earlier than earliestBoard, sampling the actual board
// time per mode (spec §4.7's BEST_CASE/WORST_CASE/RANDOM assumptions).
func (self *StandardWorker) findFrequencyBoarding(pattern *model.TripPattern, pos int, earliestBoard int32, date string, mode BoardingMode, active tripsearch.ServiceActive) (tripIndex int, boardTime int32, ok bool) {
	for i := 0; i < pattern.NumTrips(); i++ {
		trip := pattern.TripAt(i)
		if !trip.IsFrequencyBased() || !active(trip.ServiceID, date) {
			continue
		}
		for _, f := range trip.Frequencies {
			neededStart := earliestBoard - trip.DepartureAt(pos)
			lowStart := f.StartTime
			if neededStart > lowStart {
				lowStart = neededStart
			}
			if lowStart > f.EndTime {
				continue
			}
			var tripStart int32
			switch mode {
			case BestCase:
				tripStart = lowStart
			case WorstCase:
				tripStart = lowStart + f.HeadwaySeconds
			case Random:
				tripStart = lowStart + self.rng.UniformOffset(f.HeadwaySeconds)
			}
			if tripStart > f.EndTime {
				continue
			}
			return i, tripStart + trip.DepartureAt(pos), true
		}
	}
	return 0, 0, false
}

func (self *StandardWorker) relaxTransfers(round int) {
	self.state.ForEachTouchedStopForTransfer(func(stop model.Stop) {
		fromTime := self.state.BestNonTransferTime(stop)
		cur := self.provider.TransfersFrom(stop)
		for cur.Next() {
			leg := cur.Value()
			arrival := self.calc.Add(fromTime, leg.DurationSeconds)
			if self.calc.ExceedsTimeLimit(arrival) {
				continue
			}
			if self.state.TransferToStop(round, stop, leg, arrival) {
				self.markPatternsTouched(leg.ToStop)
			}
		}
	})
}

func (self *StandardWorker) markPatternsTouched(stop model.Stop) {
	cur := self.provider.PatternsForStop(stop)
	for cur.Next() {
		self.state.MarkPatternTouched(cur.Value())
	}
}

func (self *StandardWorker) extract(minute int32, mode BoardingMode, egressLegs []model.AccessEgressLeg) IterationResult {
	arrivals := make([]int32, len(egressLegs))
	for i, leg := range egressLegs {
		// The round loop stops early once no pattern is touched, so the last
		// round's array may not have been carried forward: take the best
		// time over every round.
		stopBest := self.calc.UnreachedTime()
		for k := 0; k <= self.maxRounds; k++ {
			if t := self.state.BestTime(k, leg.Stop); self.calc.IsBest(t, stopBest) {
				stopBest = t
			}
		}
		if stopBest == self.calc.UnreachedTime() {
			arrivals[i] = Unreached
			continue
		}
		arrival := self.calc.Add(stopBest, leg.DurationSeconds)
		arrivals[i] = self.elapsed(minute, arrival)
	}
	return IterationResult{DepartureTime: minute, Mode: mode, ArrivalTimes: arrivals}
}

func (self *StandardWorker) elapsed(minute, arrival int32) int32 {
	if self.calc.Direction() == calculator.Forward {
		return arrival - minute
	}
	return minute - arrival
}
