package transitdata

import (
	"github.com/rangeraptor/transitcore/model"
)

// NewInMemoryProvider builds a read-only transit data view from patterns and
// a transfer adjacency, the same shape comps/transit.go's NewTransit builds
// from stops/connections/shortcuts: everything is precomputed once at
// construction time (stop->patterns index, in particular) so lookups during
// a search never mutate shared state.
func NewInMemoryProvider(numStops int, patterns []*model.TripPattern, transfers []model.TransferLeg, calendar *Calendar) *InMemoryProvider {
	transfersFrom := make([][]model.TransferLeg, numStops)
	for _, t := range transfers {
		transfersFrom[t.FromStop] = append(transfersFrom[t.FromStop], t)
	}

	patternsForStop := make([][]int32, numStops)
	for pIdx, p := range patterns {
		seen := make(map[model.Stop]bool, len(p.Stops))
		for _, s := range p.Stops {
			if seen[s] {
				continue
			}
			seen[s] = true
			patternsForStop[s] = append(patternsForStop[s], int32(pIdx))
		}
	}

	return &InMemoryProvider{
		numStops:        numStops,
		patterns:        patterns,
		transfersFrom:   transfersFrom,
		patternsForStop: patternsForStop,
		calendar:        calendar,
	}
}

type InMemoryProvider struct {
	numStops        int
	patterns        []*model.TripPattern
	transfersFrom   [][]model.TransferLeg
	patternsForStop [][]int32
	calendar        *Calendar
}

var _ Provider = (*InMemoryProvider)(nil)

func (self *InMemoryProvider) NumStops() int {
	return self.numStops
}

func (self *InMemoryProvider) NumPatterns() int {
	return len(self.patterns)
}

func (self *InMemoryProvider) TransfersFrom(stop model.Stop) Cursor[model.TransferLeg] {
	return NewCursor(self.transfersFrom[stop])
}

func (self *InMemoryProvider) PatternsForStop(stop model.Stop) Cursor[int32] {
	return NewCursor(self.patternsForStop[stop])
}

func (self *InMemoryProvider) Pattern(patternIndex int32) *model.TripPattern {
	return self.patterns[patternIndex]
}

func (self *InMemoryProvider) IsServiceActive(serviceID string, date string) bool {
	return self.calendar.IsActive(serviceID, date)
}
