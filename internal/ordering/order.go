// Package ordering holds the menu line items of a reservation draft.
package ordering

import (
	"errors"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotInOrder  = errors.New("item is not in the order")
)

// MenuItem is the catalog snapshot copied into an order
type MenuItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image,omitempty"`
}

// Line is one order entry, unique per menu item id
type Line struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Subtotal is price × quantity
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Order keeps lines in insertion order. The zero value is an empty order.
type Order struct {
	lines []Line
}

// FromLines rebuilds an order from persisted lines. Lines with a
// non-positive quantity or a repeated id are dropped.
func FromLines(lines []Line) *Order {
	o := &Order{}
	for _, l := range lines {
		if l.Quantity < 1 || o.indexOf(l.ID) >= 0 {
			continue
		}
		o.lines = append(o.lines, l)
	}
	return o
}

// ClampQuantity raises q to the minimum allowed quantity
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func (o *Order) indexOf(id string) int {
	for i := range o.lines {
		if o.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// AddOrUpdateItem sets the quantity of item, appending it if absent.
// Quantity replaces the existing value; it does not accumulate.
func (o *Order) AddOrUpdateItem(item MenuItem, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if i := o.indexOf(item.ID); i >= 0 {
		o.lines[i].Quantity = quantity
		return nil
	}
	o.lines = append(o.lines, Line{MenuItem: item, Quantity: quantity})
	return nil
}

// Increment adds one to an existing line
func (o *Order) Increment(id string) error {
	i := o.indexOf(id)
	if i < 0 {
		return ErrItemNotInOrder
	}
	o.lines[i].Quantity++
	return nil
}

// Decrement subtracts one, never going below 1
func (o *Order) Decrement(id string) error {
	i := o.indexOf(id)
	if i < 0 {
		return ErrItemNotInOrder
	}
	o.lines[i].Quantity = ClampQuantity(o.lines[i].Quantity - 1)
	return nil
}

// RemoveItem deletes the line for id and reports whether it existed
func (o *Order) RemoveItem(id string) bool {
	i := o.indexOf(id)
	if i < 0 {
		return false
	}
	o.lines = append(o.lines[:i], o.lines[i+1:]...)
	return true
}

// Quantity returns the current quantity for id, or 0
func (o *Order) Quantity(id string) int {
	if i := o.indexOf(id); i >= 0 {
		return o.lines[i].Quantity
	}
	return 0
}

// Total is recomputed from the lines on every call
func (o *Order) Total() int64 {
	var total int64
	for _, l := range o.lines {
		total += l.Subtotal()
	}
	return total
}

// Lines returns a copy of the order lines
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) IsEmpty() bool { return len(o.lines) == 0 }

func (o *Order) Len() int { return len(o.lines) }

// Reset empties the order
func (o *Order) Reset() {
	o.lines = nil
}
