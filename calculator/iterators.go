package calculator

// rangeIterator walks [from, to] (inclusive) stepping by step; step may be
// negative for descending iteration. Shared by both forward and reverse
// calculators, only the bounds/step differ.
type rangeIterator struct {
	current int32
	to      int32
	step    int32
	started bool
}

func newRangeIterator(from, to, step int32) *rangeIterator {
	return &rangeIterator{current: from, to: to, step: step}
}

func (self *rangeIterator) HasNext() bool {
	if !self.started {
		return self.inBounds(self.current)
	}
	next := self.current + self.step
	return self.inBounds(next)
}

func (self *rangeIterator) Next() int32 {
	if !self.started {
		self.started = true
		return self.current
	}
	self.current += self.step
	return self.current
}

func (self *rangeIterator) inBounds(v int32) bool {
	if self.step > 0 {
		return v <= self.to
	}
	return v >= self.to
}
