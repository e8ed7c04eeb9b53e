package state

import (
	"testing"

	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/model"
)

func newMultiCriteriaState(numStops, numPatterns int) *MultiCriteriaState {
	calc := calculator.NewForwardCalculator(60, 0)
	return NewMultiCriteriaState(numStops, numPatterns, calc, NewCostFactors())
}

func TestAddAccessArrivalSeedsStopSet(t *testing.T) {
	s := newMultiCriteriaState(2, 1)
	if !s.AddAccessArrival(0, 100, 100, 0) {
		t.Fatalf("first AddAccessArrival must be inserted")
	}
	if s.StopSet(0).Size() != 1 {
		t.Errorf("StopSet(0).Size() = %d; want 1", s.StopSet(0).Size())
	}
}

func TestAddTransitArrivalAccumulatesCost(t *testing.T) {
	s := newMultiCriteriaState(3, 1)
	s.AddAccessArrival(0, 0, 0, 0)
	var access *StopArrival
	s.StopSet(0).All(func(a *StopArrival) { access = a })

	s.AddTransitArrival(1, 600, 0, 100, 0, 0, 1, access, 100, 500)

	var got *StopArrival
	s.StopSet(1).All(func(a *StopArrival) { got = a })
	if got == nil {
		t.Fatalf("transit arrival was not added to stop 1's set")
	}
	if got.NumTransits != 1 {
		t.Errorf("NumTransits = %d; want 1", got.NumTransits)
	}
	if got.WaitSeconds != 100 || got.InVehicleSeconds != 500 {
		t.Errorf("WaitSeconds=%d InVehicleSeconds=%d; want 100/500", got.WaitSeconds, got.InVehicleSeconds)
	}
	wantCost := NewCostFactors().BoardCostPerTransit*1 + NewCostFactors().WaitReluctance*100 + 500
	if got.Cost != wantCost {
		t.Errorf("Cost = %v; want %v", got.Cost, wantCost)
	}
}

func TestParetoSetKeepsIncomparableArrivals(t *testing.T) {
	s := newMultiCriteriaState(2, 1)
	s.AddAccessArrival(0, 0, 0, 0)
	var access *StopArrival
	s.StopSet(0).All(func(a *StopArrival) { access = a })

	// faster but costlier
	s.AddTransitArrival(1, 500, 0, 100, 0, 0, 1, access, 0, 400)
	// slower but cheaper
	s.AddTransitArrival(1, 900, 0, 100, 1, 0, 1, access, 0, 10)

	if s.StopSet(1).Size() != 2 {
		t.Errorf("StopSet(1).Size() = %d; want 2 (neither dominates)", s.StopSet(1).Size())
	}
}

func TestAddEgressArrivalFeedsDestinationNotStopSet(t *testing.T) {
	s := newMultiCriteriaState(2, 1)
	s.AddAccessArrival(0, 0, 0, 0)
	var access *StopArrival
	s.StopSet(0).All(func(a *StopArrival) { access = a })

	leg := model.AccessEgressLeg{Stop: 1, DurationSeconds: 60}
	if !s.AddEgressArrival(leg, 60, 0, access) {
		t.Fatalf("AddEgressArrival must be inserted into an empty destination set")
	}
	if s.Destination().Size() != 1 {
		t.Errorf("Destination().Size() = %d; want 1", s.Destination().Size())
	}
	if s.StopSet(1).Size() != 0 {
		t.Errorf("StopSet(1).Size() = %d; want 0 (egress must not touch the per-stop set)", s.StopSet(1).Size())
	}
}

func TestMarkRoundEndAndForEachNewArrival(t *testing.T) {
	s := newMultiCriteriaState(2, 1)
	s.AddAccessArrival(0, 100, 100, 0)
	s.MarkRoundEnd()

	s.AddAccessArrival(0, 50, 50, 0)

	var seen []*StopArrival
	s.ForEachNewArrival(0, func(a *StopArrival) { seen = append(seen, a) })
	if len(seen) != 1 || seen[0].ArrivalTime != 50 {
		t.Errorf("ForEachNewArrival = %v; want only the arrival added after MarkRoundEnd", seen)
	}
}

func TestTouchedStopsTracksAddToStop(t *testing.T) {
	s := newMultiCriteriaState(3, 1)
	s.AddAccessArrival(1, 100, 100, 0)

	var touched []model.Stop
	s.ForEachTouchedStop(func(stop model.Stop) { touched = append(touched, stop) })
	if len(touched) != 1 || touched[0] != 1 {
		t.Errorf("ForEachTouchedStop = %v; want [1]", touched)
	}

	s.ClearTouchedStops()
	touched = nil
	s.ForEachTouchedStop(func(stop model.Stop) { touched = append(touched, stop) })
	if len(touched) != 0 {
		t.Errorf("ForEachTouchedStop after ClearTouchedStops = %v; want []", touched)
	}
}
