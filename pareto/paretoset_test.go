package pareto

import "testing"

// point is a simple two-criteria test value: lower is better on both axes.
type point struct {
	a, b int
}

func dominates(x, y point) bool {
	return x.a <= y.a && x.b <= y.b && (x.a < y.a || x.b < y.b)
}

func newPointSet() *Set[point] {
	return New[point](ComparatorFunc[point](dominates))
}

func TestAddRejectsDominated(t *testing.T) {
	s := newPointSet()
	if !s.Add(point{5, 5}) {
		t.Fatalf("first Add must succeed")
	}
	if s.Add(point{6, 6}) {
		t.Errorf("Add({6,6}) over {5,5} = true; want false (dominated)")
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d; want 1", s.Size())
	}
}

func TestAddEvictsDominatedIncumbent(t *testing.T) {
	s := newPointSet()
	s.Add(point{5, 5})
	if !s.Add(point{3, 3}) {
		t.Fatalf("Add({3,3}) over {5,5} = false; want true (dominates)")
	}
	if s.Size() != 1 || s.Get(0) != (point{3, 3}) {
		t.Errorf("set = %v; want only {3,3}", s.Get(0))
	}
}

func TestAddKeepsIncomparablePoints(t *testing.T) {
	s := newPointSet()
	s.Add(point{1, 10})
	if !s.Add(point{10, 1}) {
		t.Fatalf("Add({10,1}) alongside {1,10} = false; want true (neither dominates)")
	}
	if s.Size() != 2 {
		t.Errorf("Size() = %d; want 2", s.Size())
	}
}

func TestAddRejectsExactDuplicate(t *testing.T) {
	s := newPointSet()
	s.Add(point{4, 4})
	if s.Add(point{4, 4}) {
		t.Errorf("Add of an exact duplicate = true; want false")
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d; want 1", s.Size())
	}
}

func TestQualifyMatchesAddWithoutMutating(t *testing.T) {
	s := newPointSet()
	s.Add(point{5, 5})

	if got := s.Qualify(point{6, 6}); got {
		t.Errorf("Qualify({6,6}) = true; want false")
	}
	if s.Size() != 1 {
		t.Errorf("Qualify mutated the set: Size() = %d; want 1", s.Size())
	}

	if got := s.Qualify(point{3, 3}); !got {
		t.Errorf("Qualify({3,3}) = false; want true")
	}
	if s.Size() != 1 {
		t.Errorf("Qualify mutated the set: Size() = %d; want 1", s.Size())
	}
}

func TestMarkAtEndAndStreamAfterMarker(t *testing.T) {
	s := newPointSet()
	s.Add(point{1, 10})
	s.Add(point{10, 1})
	s.MarkAtEnd()

	s.Add(point{2, 9})

	var seen []point
	s.StreamAfterMarker(func(p point) { seen = append(seen, p) })
	if len(seen) != 1 || seen[0] != (point{2, 9}) {
		t.Errorf("StreamAfterMarker = %v; want only [{2 9}]", seen)
	}
}

func TestStreamAfterMarkerSurvivesCompaction(t *testing.T) {
	s := newPointSet()
	s.Add(point{1, 10})
	s.Add(point{10, 1})
	s.MarkAtEnd()

	// dominates and evicts {10,1}, which was inserted before the marker;
	// the new element itself was inserted after the marker.
	s.Add(point{1, 1})

	var seen []point
	s.StreamAfterMarker(func(p point) { seen = append(seen, p) })
	if len(seen) != 1 || seen[0] != (point{1, 1}) {
		t.Errorf("StreamAfterMarker = %v; want only [{1 1}]", seen)
	}
}

func TestOnDropNotifiesEviction(t *testing.T) {
	s := newPointSet()
	var dropped []point
	var causes []DropCause
	s.OnDrop(func(p point, cause DropCause) {
		dropped = append(dropped, p)
		causes = append(causes, cause)
	})

	s.Add(point{5, 5})
	s.Add(point{3, 3})
	if len(dropped) != 1 || dropped[0] != (point{5, 5}) || causes[0] != DroppedByNewElement {
		t.Errorf("OnDrop saw %v/%v; want [{5 5}]/[DroppedByNewElement]", dropped, causes)
	}

	s.Clear()
	if len(dropped) != 2 || causes[1] != DroppedBySetClear {
		t.Errorf("OnDrop after Clear saw %v/%v", dropped, causes)
	}
}
