package raptorservice

import (
	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/raptor"
	"github.com/rangeraptor/transitcore/state"
	"github.com/rangeraptor/transitcore/transitdata"
	"github.com/rangeraptor/transitcore/tripsearch"
	"github.com/rangeraptor/transitcore/util"
)

// maxTravelSeconds bounds a single search's elapsed time; large enough that
// no well-formed request legitimately hits it, just a backstop against a
// calculator walking forever on malformed transit data.
const maxTravelSeconds = int32(24 * 60 * 60)

// WorkerFactory is the stateless, concurrency-safe counterpart to a
// worker instance (batched/onetomany's IOneToMany/CreateSolver() split):
// it is built once per Provider and handed to every pool goroutine, each of
// which calls NewStandardWorker/NewMultiCriteriaWorker to get its own
// exclusively-owned, non-suspending worker (§5).
type WorkerFactory struct {
	provider transitdata.Provider
	config   Config
}

func NewWorkerFactory(provider transitdata.Provider, config Config) *WorkerFactory {
	return &WorkerFactory{provider: provider, config: config}
}

func (self *WorkerFactory) activeFunc() tripsearch.ServiceActive {
	return self.provider.IsServiceActive
}

// NewStandardWorker builds a fresh StandardWorker for one Route call's
// forward or reverse sweep.
func (self *WorkerFactory) NewStandardWorker(r Request, dir calculator.Direction, rng *util.FrequencyRandom) *raptor.StandardWorker {
	calc := self.calculatorFor(r, dir)
	rounds := int(r.MaxNumberOfTransfers) + 1
	return raptor.NewStandardWorker(self.provider, calc, rounds, r.FrequenciesEnabled, rng, r.MonteCarloDrawsPerMinute)
}

// NewMultiCriteriaWorker builds a fresh MultiCriteriaWorker for one Route
// call. Multi-criteria search is always forward: cost accumulates over the
// whole journey and has no reverse-search analogue in this core.
func (self *WorkerFactory) NewMultiCriteriaWorker(r Request) *raptor.MultiCriteriaWorker {
	calc := self.calculatorFor(r, calculator.Forward)
	rounds := int(r.MaxNumberOfTransfers) + 1
	factors := state.NewCostFactors()
	if r.CostFactors != nil {
		factors = *r.CostFactors
	}
	return raptor.NewMultiCriteriaWorker(self.provider, calc, rounds, factors)
}

func (self *WorkerFactory) calculatorFor(r Request, dir calculator.Direction) calculator.Calculator {
	if dir == calculator.Reverse {
		return calculator.NewReverseCalculator(r.BoardSlackSeconds, maxTravelSeconds)
	}
	return calculator.NewForwardCalculator(r.BoardSlackSeconds, maxTravelSeconds)
}
