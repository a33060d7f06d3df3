package seats

import (
	"math/rand/v2"
	"sync"
)

// StatusSource assigns the initial status of a seat that the user has not
// selected. Implementations return StatusAvailable or StatusOccupied.
type StatusSource interface {
	InitialStatus(seat Seat) Status
}

// RandomSource marks each seat occupied with probability OccupiedRatio
type RandomSource struct {
	OccupiedRatio float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSource(occupiedRatio float64, rng *rand.Rand) *RandomSource {
	return &RandomSource{OccupiedRatio: occupiedRatio, rng: rng}
}

func (r *RandomSource) InitialStatus(Seat) Status {
	var f float64
	if r.rng == nil {
		f = rand.Float64()
	} else {
		r.mu.Lock()
		f = r.rng.Float64()
		r.mu.Unlock()
	}
	if f < r.OccupiedRatio {
		return StatusOccupied
	}
	return StatusAvailable
}

// StaticSource answers from a fixed map, deferring unknown seats to Fallback
// (or available when Fallback is nil)
type StaticSource struct {
	Known    map[int]Status
	Fallback StatusSource
}

func (s StaticSource) InitialStatus(seat Seat) Status {
	if st, ok := s.Known[seat.ID]; ok && st != StatusSelected {
		return st
	}
	if s.Fallback != nil {
		return s.Fallback.InitialStatus(seat)
	}
	return StatusAvailable
}
