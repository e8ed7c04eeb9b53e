package raptorservice

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rangeraptor/transitcore/model"
	"github.com/rangeraptor/transitcore/state"
)

// Profile selects which worker flavour (§6) answers a Request.
type Profile string

const (
	Standard                     Profile = "standard"
	MultiCriteria                Profile = "multi_criteria"
	RangeRaptor                  Profile = "range_raptor"
	StdRangeRaptorWithHeuristics Profile = "std_range_raptor_with_heuristics"
)

func (p Profile) usesMultiCriteria() bool {
	return p == MultiCriteria
}

// DebugFlags are non-behavioural diagnostic toggles (§6): they never change
// which paths are found, only what the caller additionally gets told about.
type DebugFlags struct {
	StopFilter []model.Stop
	PathFilter bool
}

// Leg is the request-side access/egress leg shape, validated then converted
// to model.AccessEgressLeg once the request is accepted.
type Leg struct {
	Stop            model.Stop `validate:"gte=0"`
	DurationSeconds int32      `validate:"gte=0"`
	Cost            int32      `validate:"gte=0"`
}

func (l Leg) toModel() model.AccessEgressLeg {
	return model.AccessEgressLeg{Stop: l.Stop, DurationSeconds: l.DurationSeconds, Cost: l.Cost}
}

// Request is the value object external callers build (§6). All fields are
// required unless noted; validation happens once, at construction, so a
// malformed request never reaches a worker.
type Request struct {
	EarliestDepartureTime int32
	LatestDepartureTime   int32 `validate:"gtefield=EarliestDepartureTime"`

	MaxNumberOfTransfers int32 `validate:"gte=0"`
	BoardSlackSeconds    int32 `validate:"gte=0"`

	IterationDepartureStepSeconds int32 `validate:"gte=60"`

	AccessLegs []Leg `validate:"required,min=1,dive"`
	EgressLegs []Leg `validate:"required,min=1,dive"`

	Profile Profile `validate:"required,oneof=standard multi_criteria range_raptor std_range_raptor_with_heuristics"`

	CostFactors *state.CostFactors

	Date string `validate:"required"`

	// FrequenciesEnabled and RandomSeed only matter for networks that carry
	// frequency-based trips; a scheduled-only network ignores them.
	FrequenciesEnabled       bool
	RandomSeed               int64
	MonteCarloDrawsPerMinute int

	Debug DebugFlags
}

var validate = validator.New()

// NewRequest validates the caller-supplied fields and fills in the
// board-slack / step defaults from §6, returning a configuration error (never
// a panic) when the request is malformed - the worker never starts on bad
// input.
func NewRequest(r Request) (Request, error) {
	if r.BoardSlackSeconds == 0 {
		r.BoardSlackSeconds = 60
	}
	if r.IterationDepartureStepSeconds == 0 {
		r.IterationDepartureStepSeconds = 60
	}
	if r.MaxNumberOfTransfers == 0 {
		r.MaxNumberOfTransfers = 12
	}
	if r.Profile.usesMultiCriteria() && r.CostFactors == nil {
		factors := state.NewCostFactors()
		r.CostFactors = &factors
	}

	if err := validate.Struct(r); err != nil {
		return Request{}, fmt.Errorf("raptorservice: invalid request: %w", err)
	}
	return r, nil
}
