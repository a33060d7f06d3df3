package reservations

import (
	"zari/internal/ordering"
	"zari/internal/seats"
)

type SeatCounts struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Selected  int `json:"selected"`
}

// DraftResponse is what every draft endpoint returns
type DraftResponse struct {
	RestaurantID  string                  `json:"restaurant_id"`
	State         State                   `json:"state"`
	Outcome       Outcome                 `json:"outcome,omitempty"`
	ReservationID string                  `json:"reservation_id,omitempty"`
	OrderItems    []ordering.Line         `json:"order_items"`
	Total         int64                   `json:"total"`
	Layout        seats.Layout            `json:"layout"`
	Seats         []seats.Seat            `json:"seats"`
	SelectedSeats []seats.SelectedSeatRef `json:"selected_seats"`
	Counts        SeatCounts              `json:"counts"`
	Date          string                  `json:"date"`
	Time          string                  `json:"time"`
	Reservation   *Reservation            `json:"reservation,omitempty"`
}

func newDraftResponse(snap Snapshot) *DraftResponse {
	order := ordering.FromLines(snap.Items)
	resp := &DraftResponse{
		RestaurantID:  snap.RestaurantID,
		State:         snap.State,
		Outcome:       snap.Outcome,
		ReservationID: snap.ReservationID,
		OrderItems:    order.Lines(),
		Total:         order.Total(),
		Layout:        snap.Layout,
		Seats:         snap.Seats,
		SelectedSeats: []seats.SelectedSeatRef{},
		Date:          snap.Date,
		Time:          snap.Time,
	}
	if selector, err := seats.Restore(snap.Layout, snap.Seats); err == nil {
		resp.SelectedSeats = selector.Selected()
		resp.Counts.Available, resp.Counts.Occupied, resp.Counts.Selected = selector.Counts()
	}
	return resp
}

// QRResponse wraps the PNG for clients that prefer JSON
type QRResponse struct {
	ReservationID string `json:"reservation_id"`
	PNGBase64     string `json:"png_base64"`
}
