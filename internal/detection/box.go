package detection

import (
	"context"
	"strings"

	"zari/internal/seats"
)

// BoxDetector maps person boxes onto fixed seat regions. A seat is occupied
// when the center of a confident person box falls inside it.
type BoxDetector struct {
	Regions       []SeatState
	Label         string
	MinConfidence float64
}

func NewBoxDetector(regions []SeatState, minConfidence float64) *BoxDetector {
	return &BoxDetector{Regions: regions, Label: "person", MinConfidence: minConfidence}
}

func (d *BoxDetector) Detect(ctx context.Context, frame Frame) ([]SeatState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(d.Regions) == 0 {
		return nil, ErrNoRegions
	}

	out := make([]SeatState, len(d.Regions))
	copy(out, d.Regions)
	for i := range out {
		out[i].Status = seats.StatusAvailable
	}

	for _, box := range frame.Boxes {
		if !strings.EqualFold(box.Label, d.Label) || box.Confidence < d.MinConfidence {
			continue
		}
		x, y := box.Center()
		for i := range out {
			if out[i].Position.Contains(x, y) {
				out[i].Status = seats.StatusOccupied
				break
			}
		}
	}
	return out, nil
}
