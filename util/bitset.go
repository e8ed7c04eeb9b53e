package util

import "math/bits"

// BitSet is a small dense bitset over [0, n), used for the round-local
// "touched pattern"/"touched stop" sets so the worker never allocates a new
// collection per round (spec's "small dense bitsets... avoid per-round heap
// allocation by clearing in place").
type BitSet struct {
	words []uint64
	n     int32
}

func NewBitSet(n int32) BitSet {
	return BitSet{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

func (self *BitSet) Set(i int32) {
	self.words[i>>6] |= 1 << uint(i&63)
}

func (self *BitSet) Clear(i int32) {
	self.words[i>>6] &^= 1 << uint(i&63)
}

func (self *BitSet) IsSet(i int32) bool {
	return self.words[i>>6]&(1<<uint(i&63)) != 0
}

// ClearAll zeroes every word in place without reallocating the backing slice.
func (self *BitSet) ClearAll() {
	for i := range self.words {
		self.words[i] = 0
	}
}

// ForEachSet calls f with every set bit index, lowest to highest.
func (self *BitSet) ForEachSet(f func(i int32)) {
	for w, word := range self.words {
		for word != 0 {
			idx := bits.TrailingZeros64(word)
			f(int32(w*64 + idx))
			word &= word - 1
		}
	}
}

func (self *BitSet) Any() bool {
	for _, word := range self.words {
		if word != 0 {
			return true
		}
	}
	return false
}
