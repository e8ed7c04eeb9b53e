package util

import "math/rand"

// FrequencyRandom is the clock-free, pure random source the spec requires for
// Monte-Carlo frequency-offset draws (§6): seedable so RANDOM iterations are
// reproducible across runs given the same seed, independent of wall-clock
// time. Never reads the system clock - math/rand.New(rand.NewSource(seed))
// is deterministic for a fixed seed across Go versions within a major release.
type FrequencyRandom struct {
	src *rand.Rand
}

func NewFrequencyRandom(seed int64) *FrequencyRandom {
	return &FrequencyRandom{src: rand.New(rand.NewSource(seed))}
}

// UniformOffset draws an offset uniformly in [0, headwaySeconds).
func (self *FrequencyRandom) UniformOffset(headwaySeconds int32) int32 {
	if headwaySeconds <= 0 {
		return 0
	}
	return int32(self.src.Int63n(int64(headwaySeconds)))
}
