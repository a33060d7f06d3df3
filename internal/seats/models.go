package seats

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusSelected  Status = "selected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusSelected:
		return true
	}
	return false
}

var (
	ErrSeatNotFound = errors.New("seat not found")
	ErrSeatOccupied = errors.New("seat is occupied")
	ErrInvalidSeats = errors.New("invalid seat map")
)

// Seat is one cell of the floor grid
type Seat struct {
	ID     int    `json:"id"`
	Row    string `json:"row"`
	Col    int    `json:"col"`
	Status Status `json:"status"`
}

// Label is row followed by column, e.g. "B3"
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Col)
}

// SelectedSeatRef is the projection of a selected seat handed to the draft
type SelectedSeatRef struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Layout describes a rows × cols grid. Ids run 1..rows*cols row by row,
// rows are lettered from A and columns numbered from 1.
type Layout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// DefaultLayout is the 4 × 5 dining room
var DefaultLayout = Layout{Rows: 4, Cols: 5}

func (l Layout) Size() int {
	return l.Rows * l.Cols
}

func (l Layout) Valid() bool {
	return l.Rows > 0 && l.Cols > 0 && l.Rows <= 26
}

// position returns row letter and column for a seat id
func (l Layout) position(id int) (string, int) {
	idx := id - 1
	return string(rune('A' + idx/l.Cols)), idx%l.Cols + 1
}
