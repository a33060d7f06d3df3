package detection

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"zari/internal/seats"
)

var (
	ErrNoImage          = errors.New("no image provided")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrNoRegions        = errors.New("detector has no seat regions")
)

// Position is a seat region in frame pixels
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether the point lies inside the region
func (p Position) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}

// SeatState is the detected status of one seat region
type SeatState struct {
	ID       string       `json:"id"`
	Position Position     `json:"position"`
	Status   seats.Status `json:"status"`
}

// SeatID names seat n as "seat-n"
func SeatID(n int) string {
	return fmt.Sprintf("seat-%d", n)
}

// SeatNumber parses "seat-n" back to n
func SeatNumber(id string) (int, bool) {
	raw, ok := strings.CutPrefix(id, "seat-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Box is one object reported by an external YOLO-style detector.
// BBox holds x1, y1, x2, y2.
type Box struct {
	Label      string  `json:"label" validate:"required"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	BBox       [4]int  `json:"bbox"`
}

// Center returns the midpoint of the box
func (b Box) Center() (int, int) {
	return (b.BBox[0] + b.BBox[2]) / 2, (b.BBox[1] + b.BBox[3]) / 2
}

// Frame is one input to a detector. Image detectors read Image, box
// detectors read Boxes.
type Frame struct {
	Source string
	Image  []byte
	Boxes  []Box
}

// Result is the response of a detection run
type Result struct {
	Timestamp time.Time   `json:"timestamp"`
	Seats     []SeatState `json:"seats"`
}

// Counts returns available and occupied totals
func (r *Result) Counts() (available, occupied int) {
	for _, s := range r.Seats {
		if s.Status == seats.StatusOccupied {
			occupied++
		} else {
			available++
		}
	}
	return available, occupied
}

// OccupancyPercent is the rounded share of occupied seats
func (r *Result) OccupancyPercent() int {
	if len(r.Seats) == 0 {
		return 0
	}
	_, occupied := r.Counts()
	return (occupied*100 + len(r.Seats)/2) / len(r.Seats)
}

// Statuses maps seat numbers to their status for the seat selector
func (r *Result) Statuses() map[int]seats.Status {
	out := make(map[int]seats.Status, len(r.Seats))
	for _, s := range r.Seats {
		if n, ok := SeatNumber(s.ID); ok {
			out[n] = s.Status
		}
	}
	return out
}

// SeatDetector turns a frame into seat states
type SeatDetector interface {
	Detect(ctx context.Context, frame Frame) ([]SeatState, error)
}

// GridRegions lays out n square regions, perRow to a row, 100px apart
// starting at (50, 50)
func GridRegions(n, perRow int) []SeatState {
	if perRow < 1 {
		perRow = 1
	}
	out := make([]SeatState, n)
	for i := range out {
		out[i] = SeatState{
			ID: SeatID(i + 1),
			Position: Position{
				X:      50 + (i%perRow)*100,
				Y:      50 + (i/perRow)*100,
				Width:  80,
				Height: 80,
			},
			Status: seats.StatusAvailable,
		}
	}
	return out
}
