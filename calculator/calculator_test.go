package calculator

import "testing"

func TestForwardCalculatorArithmetic(t *testing.T) {
	c := NewForwardCalculator(60, 0)

	if got := c.Add(100, 30); got != 130 {
		t.Errorf("Add(100, 30) = %d; want 130", got)
	}
	if got := c.EarliestBoardTime(100); got != 160 {
		t.Errorf("EarliestBoardTime(100) = %d; want 160", got)
	}
	if !c.IsBest(100, 200) {
		t.Errorf("IsBest(100, 200) = false; want true (earlier is better forward)")
	}
	if c.IsBest(200, 100) {
		t.Errorf("IsBest(200, 100) = true; want false forward")
	}
	if c.Direction() != Forward {
		t.Errorf("Direction() = %v; want Forward", c.Direction())
	}
}

func TestReverseCalculatorArithmetic(t *testing.T) {
	c := NewReverseCalculator(60, 0)

	if got := c.Add(100, 30); got != 70 {
		t.Errorf("Add(100, 30) = %d; want 70 (reverse subtracts)", got)
	}
	if got := c.EarliestBoardTime(100); got != 100 {
		t.Errorf("EarliestBoardTime(100) = %d; want 100 (no slack applied in reverse)", got)
	}
	if !c.IsBest(200, 100) {
		t.Errorf("IsBest(200, 100) = false; want true (later is better reverse)")
	}
	if c.Direction() != Reverse {
		t.Errorf("Direction() = %v; want Reverse", c.Direction())
	}
}

func TestRangeRaptorMinutesForwardSweepsLatestToEarliest(t *testing.T) {
	c := NewForwardCalculator(60, 0)
	it := c.RangeRaptorMinutes(100, 160, 20)

	var got []int32
	for it.HasNext() {
		got = append(got, it.Next())
	}
	want := []int32{160, 140, 120, 100}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v; want %v", got, want)
			break
		}
	}
}

func TestRangeRaptorMinutesReverseSweepsEarliestToLatest(t *testing.T) {
	c := NewReverseCalculator(60, 0)
	it := c.RangeRaptorMinutes(100, 160, 20)

	var got []int32
	for it.HasNext() {
		got = append(got, it.Next())
	}
	want := []int32{100, 120, 140, 160}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v; want %v", got, want)
			break
		}
	}
}

func TestPatternStopIteratorDirection(t *testing.T) {
	fwd := NewForwardCalculator(60, 0).PatternStopIterator(3)
	var got []int32
	for fwd.HasNext() {
		got = append(got, fwd.Next())
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("forward pattern stop iterator = %v; want [0 1 2]", got)
	}

	rev := NewReverseCalculator(60, 0).PatternStopIterator(3)
	got = nil
	for rev.HasNext() {
		got = append(got, rev.Next())
	}
	if len(got) != 3 || got[0] != 2 || got[2] != 0 {
		t.Errorf("reverse pattern stop iterator = %v; want [2 1 0]", got)
	}
}

func TestExceedsTimeLimit(t *testing.T) {
	c := NewForwardCalculator(60, 1000)
	if c.ExceedsTimeLimit(999) {
		t.Errorf("ExceedsTimeLimit(999) = true; want false")
	}
	if !c.ExceedsTimeLimit(1001) {
		t.Errorf("ExceedsTimeLimit(1001) = false; want true")
	}
}
