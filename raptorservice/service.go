package raptorservice

import (
	"runtime/debug"
	"time"

	"golang.org/x/exp/slog"

	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/metrics"
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/path"
	"github.com/rangeraptor/transitcore/raptor"
	"github.com/rangeraptor/transitcore/transitdata"
	"github.com/rangeraptor/transitcore/util"
)

// Service is the process-level entry point a caller embeds: it owns the
// transit data view, the tuning config, the worker factory and the fixed
// size thread pool, and recovers from worker panics at its single call
// boundary (§7).
type Service struct {
	factory *WorkerFactory
	pool    *WorkerPool
	metrics *metrics.Collector
}

func NewService(provider transitdata.Provider, config Config, metricsCollector *metrics.Collector) *Service {
	return &Service{
		factory: NewWorkerFactory(provider, config),
		pool:    NewWorkerPool(config.SearchThreadPoolSize),
		metrics: metricsCollector,
	}
}

// Route validates req, dispatches it to the profile-appropriate worker(s)
// and returns the Response. Configuration errors come back as a plain error
// from NewRequest; an invariant violation inside a worker is recovered here
// and turned into *ErrInvariantViolation so a caller embedding this core as
// a library is never crashed by an internal bug.
func (self *Service) Route(req Request) (resp Response, err error) {
	validated, err := NewRequest(req)
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	defer func() {
		outcome := "ok"
		if r := recover(); r != nil {
			slog.Error("raptorservice: invariant violation",
				"profile", string(validated.Profile),
				"reason", r,
				"stack", string(debug.Stack()))
			err = &ErrInvariantViolation{Profile: validated.Profile, Reason: r}
			outcome = "invariant_violation"
		} else if err != nil {
			outcome = "config_error"
		}
		self.metrics.RequestsTotal.WithLabelValues(string(validated.Profile), outcome).Inc()
		self.metrics.RequestDuration.WithLabelValues(string(validated.Profile)).Observe(time.Since(start).Seconds())
	}()

	resp = self.route(validated)
	return resp, nil
}

func (self *Service) route(req Request) Response {
	switch req.Profile {
	case MultiCriteria:
		paths := self.runMultiCriteria(req)
		self.metrics.PathsFound.Observe(float64(len(paths)))
		return Response{Profile: req.Profile, Paths: paths}
	case Standard:
		iterations := self.runStandard(req, req.EarliestDepartureTime, req.EarliestDepartureTime)
		self.metrics.IterationsPerRequest.Observe(float64(len(iterations)))
		return Response{Profile: req.Profile, Iterations: iterations}
	case StdRangeRaptorWithHeuristics:
		self.runHeuristicPass(req)
		iterations := self.runStandard(req, req.EarliestDepartureTime, req.LatestDepartureTime)
		self.metrics.IterationsPerRequest.Observe(float64(len(iterations)))
		return Response{Profile: req.Profile, Iterations: iterations}
	default: // RangeRaptor
		iterations := self.runStandard(req, req.EarliestDepartureTime, req.LatestDepartureTime)
		self.metrics.IterationsPerRequest.Observe(float64(len(iterations)))
		return Response{Profile: req.Profile, Iterations: iterations}
	}
}

func (self *Service) runStandard(req Request, earliest, latest int32) []raptor.IterationResult {
	var result []raptor.IterationResult
	self.pool.Run(func() {
		rng := util.NewFrequencyRandom(req.RandomSeed)
		worker := self.factory.NewStandardWorker(req, calculator.Forward, rng)
		result = worker.RunRangeRaptor(legsOf(req.AccessLegs), legsOf(req.EgressLegs), earliest, latest, req.IterationDepartureStepSeconds, req.Date, self.factory.activeFunc())
	})
	self.metrics.RoundsPerCall.WithLabelValues(string(req.Profile)).Observe(float64(req.MaxNumberOfTransfers + 1))
	return result
}

// runHeuristicPass runs a reverse-direction search from the egress legs back
// towards the access legs through the pool and discards its result. pool.Run
// blocks until the pass is done, so it always completes before the forward
// sweep is submitted; the two never run concurrently, and the reverse
// arrival times are not used to prune the forward sweep.
func (self *Service) runHeuristicPass(req Request) {
	self.pool.Run(func() {
		rng := util.NewFrequencyRandom(req.RandomSeed)
		worker := self.factory.NewStandardWorker(req, calculator.Reverse, rng)
		worker.RunRangeRaptor(legsOf(req.EgressLegs), legsOf(req.AccessLegs), req.EarliestDepartureTime, req.LatestDepartureTime, req.IterationDepartureStepSeconds, req.Date, self.factory.activeFunc())
	})
}

func (self *Service) runMultiCriteria(req Request) []path.Path {
	var result []path.Path
	self.pool.Run(func() {
		worker := self.factory.NewMultiCriteriaWorker(req)
		result = worker.Run(legsOf(req.AccessLegs), legsOf(req.EgressLegs), req.EarliestDepartureTime, req.Date, self.factory.activeFunc())
	})
	return result
}

func legsOf(legs []Leg) []model.AccessEgressLeg {
	out := make([]model.AccessEgressLeg, len(legs))
	for i, l := range legs {
		out[i] = l.toModel()
	}
	return out
}
