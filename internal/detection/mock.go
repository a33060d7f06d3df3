package detection

import (
	"context"
	"math/rand/v2"
	"sync"

	"zari/internal/seats"
)

const (
	MockSeatCount = 12
	MockSeatsRow  = 4
)

// MockDetector ignores the frame content and reports each of twelve seats
// available with probability AvailableRatio
type MockDetector struct {
	AvailableRatio float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockDetector uses the global source when rng is nil
func NewMockDetector(availableRatio float64, rng *rand.Rand) *MockDetector {
	return &MockDetector{AvailableRatio: availableRatio, rng: rng}
}

func (d *MockDetector) float() float64 {
	if d.rng == nil {
		return rand.Float64()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Float64()
}

func (d *MockDetector) Detect(ctx context.Context, _ Frame) ([]SeatState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := GridRegions(MockSeatCount, MockSeatsRow)
	for i := range out {
		if d.float() >= d.AvailableRatio {
			out[i].Status = seats.StatusOccupied
		}
	}
	return out, nil
}
