package seats

import (
	"fmt"
)

// Listener receives the full selected set after every successful toggle
type Listener func(selected []SelectedSeatRef)

// Selector owns the seat grid of one draft. It is not safe for concurrent
// use; the draft store serializes access per user.
type Selector struct {
	layout    Layout
	seats     []Seat
	listeners []Listener
}

// NewSelector derives a fresh grid. Ids in preselected come up selected;
// every other seat takes its status from src.
func NewSelector(layout Layout, src StatusSource, preselected []int) *Selector {
	if !layout.Valid() {
		layout = DefaultLayout
	}
	keep := make(map[int]struct{}, len(preselected))
	for _, id := range preselected {
		keep[id] = struct{}{}
	}

	s := &Selector{layout: layout, seats: make([]Seat, layout.Size())}
	for i := range s.seats {
		id := i + 1
		row, col := layout.position(id)
		seat := Seat{ID: id, Row: row, Col: col}
		if _, ok := keep[id]; ok {
			seat.Status = StatusSelected
		} else {
			seat.Status = src.InitialStatus(seat)
		}
		s.seats[i] = seat
	}
	return s
}

// Restore rebuilds a selector from a persisted grid
func Restore(layout Layout, grid []Seat) (*Selector, error) {
	if !layout.Valid() || len(grid) != layout.Size() {
		return nil, ErrInvalidSeats
	}
	s := &Selector{layout: layout, seats: make([]Seat, len(grid))}
	for i, seat := range grid {
		if seat.ID != i+1 || !seat.Status.IsValid() {
			return nil, fmt.Errorf("%w: seat %d", ErrInvalidSeats, seat.ID)
		}
		s.seats[i] = seat
	}
	return s, nil
}

// OnChange registers a listener
func (s *Selector) OnChange(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Toggle flips a seat between available and selected. Occupied seats
// are left untouched and ErrSeatOccupied is returned.
func (s *Selector) Toggle(id int) ([]SelectedSeatRef, error) {
	if id < 1 || id > len(s.seats) {
		return nil, ErrSeatNotFound
	}
	seat := &s.seats[id-1]

	switch seat.Status {
	case StatusOccupied:
		return s.Selected(), ErrSeatOccupied
	case StatusSelected:
		seat.Status = StatusAvailable
	default:
		seat.Status = StatusSelected
	}

	selected := s.Selected()
	for _, fn := range s.listeners {
		fn(selected)
	}
	return selected, nil
}

// Selected lists the selected seats in id order
func (s *Selector) Selected() []SelectedSeatRef {
	out := []SelectedSeatRef{}
	for _, seat := range s.seats {
		if seat.Status == StatusSelected {
			out = append(out, SelectedSeatRef{ID: seat.ID, Label: seat.Label()})
		}
	}
	return out
}

// SelectedIDs is Selected without labels
func (s *Selector) SelectedIDs() []int {
	var ids []int
	for _, seat := range s.seats {
		if seat.Status == StatusSelected {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}

// ClearSelection returns every selected seat to available
func (s *Selector) ClearSelection() {
	for i := range s.seats {
		if s.seats[i].Status == StatusSelected {
			s.seats[i].Status = StatusAvailable
		}
	}
}

// Seats returns a copy of the grid
func (s *Selector) Seats() []Seat {
	out := make([]Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

func (s *Selector) Layout() Layout { return s.layout }

// Counts returns available, occupied and selected totals
func (s *Selector) Counts() (available, occupied, selected int) {
	for _, seat := range s.seats {
		switch seat.Status {
		case StatusAvailable:
			available++
		case StatusOccupied:
			occupied++
		case StatusSelected:
			selected++
		}
	}
	return
}
