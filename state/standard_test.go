package state

import (
	"testing"

	"github.com/rangeraptor/transitcore/calculator"
	"github.com/rangeraptor/transitcore/model"
)

func newForwardState(rounds, numStops, numPatterns int) (*StandardState, calculator.Calculator) {
	calc := calculator.NewForwardCalculator(60, 0)
	return NewStandardState(rounds, numStops, numPatterns, calc), calc
}

func TestSetInitialTimeOnlyImproves(t *testing.T) {
	s, _ := newForwardState(2, 3, 1)

	if !s.SetInitialTime(0, 500, 500) {
		t.Fatalf("first SetInitialTime must improve an unreached stop")
	}
	if s.SetInitialTime(0, 600, 600) {
		t.Errorf("SetInitialTime with a later time = true; want false (must not regress)")
	}
	if s.BestTime(0, 0) != 500 {
		t.Errorf("BestTime(0,0) = %d; want 500", s.BestTime(0, 0))
	}
	if s.BestNonTransferTime(0) != 500 {
		t.Errorf("BestNonTransferTime(0) = %d; want 500", s.BestNonTransferTime(0))
	}
}

func TestTransitToStopImprovesRoundBest(t *testing.T) {
	s, _ := newForwardState(2, 3, 1)
	s.SetInitialTime(0, 100, 100)
	s.BeginRound(1)

	if !s.TransitToStop(1, 1, 300, 0, 200, 0, 0) {
		t.Fatalf("TransitToStop must improve stop 1's unreached round-1 best")
	}
	if s.BestTime(1, 1) != 300 {
		t.Errorf("BestTime(1,1) = %d; want 300", s.BestTime(1, 1))
	}
	arr := s.Arrival(1, 1)
	if !arr.ArrivedByTransit || arr.BoardStop != 0 || arr.BoardTime != 200 {
		t.Errorf("Arrival(1,1) = %+v; want ArrivedByTransit BoardStop=0 BoardTime=200", arr)
	}

	if s.TransitToStop(1, 1, 400, 0, 200, 0, 0) {
		t.Errorf("TransitToStop with a later alight time = true; want false")
	}
}

func TestBeginRoundCarriesForwardMonotonically(t *testing.T) {
	s, calc := newForwardState(2, 3, 1)
	s.SetInitialTime(0, 100, 100)
	s.BeginRound(1)
	s.TransitToStop(1, 2, 500, 0, 200, 0, 0)
	s.BeginRound(2)

	if got := s.BestTime(2, 2); got != 500 {
		t.Errorf("BestTime(2,2) = %d; want 500 (carried forward from round 1)", got)
	}
	if s.BestTime(2, 2) > s.BestTime(1, 2) {
		t.Errorf("monotone improvement violated: BestTime(2,2)=%d > BestTime(1,2)=%d", s.BestTime(2, 2), s.BestTime(1, 2))
	}
	_ = calc
}

func TestTransferToStopRespectsExistingBest(t *testing.T) {
	s, _ := newForwardState(2, 3, 1)
	s.SetInitialTime(0, 100, 100)
	s.BeginRound(1)
	s.TransitToStop(1, 1, 200, 0, 150, 0, 0)

	leg := model.TransferLeg{FromStop: 1, ToStop: 2, DurationSeconds: 50}
	if !s.TransferToStop(1, 1, leg, 250) {
		t.Fatalf("TransferToStop must improve stop 2's unreached round-1 best")
	}
	if s.BestTime(1, 2) != 250 {
		t.Errorf("BestTime(1,2) = %d; want 250", s.BestTime(1, 2))
	}
	arr := s.Arrival(1, 2)
	if arr.ArrivedByTransit || arr.TransferFromStop != 1 {
		t.Errorf("Arrival(1,2) = %+v; want a transfer arrival from stop 1", arr)
	}
}

func TestResetPerIterationClearsRoundLocalScratchOnly(t *testing.T) {
	s, _ := newForwardState(1, 2, 1)
	s.SetInitialTime(0, 100, 100)
	s.ResetPerIteration()

	if s.BestNonTransferTime(0) != s.calc.UnreachedTime() {
		t.Errorf("ResetPerIteration must reset bestNonTransferTime scratch")
	}
	if s.BestTime(0, 0) != 100 {
		t.Errorf("ResetPerIteration must preserve carried-over best times, got BestTime(0,0)=%d", s.BestTime(0, 0))
	}
}

func TestAdvanceRoundSwapsTouchedPatterns(t *testing.T) {
	s, _ := newForwardState(1, 2, 2)
	s.MarkPatternTouched(1)
	if s.HasTouchedPatterns() {
		t.Fatalf("a pattern marked via MarkPatternTouched must not be visible before AdvanceRound")
	}
	s.AdvanceRound()
	if !s.HasTouchedPatterns() {
		t.Fatalf("AdvanceRound must make the marked pattern visible")
	}
	seen := false
	s.TouchedPatterns().ForEachSet(func(p int32) {
		if p == 1 {
			seen = true
		}
	})
	if !seen {
		t.Errorf("TouchedPatterns() did not contain pattern 1")
	}
}
