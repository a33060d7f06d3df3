package reservations

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotCancellable      = errors.New("reservation can no longer be cancelled")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")
	ErrStatusConflict      = errors.New("reservation status changed concurrently")
	ErrForbidden           = errors.New("reservation belongs to another user")
	ErrInvalidSchedule     = errors.New("invalid reservation date or time")
	ErrReservationInactive = errors.New("reservation is cancelled")
	ErrReservationClosed   = errors.New("reservation can no longer be changed")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Reservation is a submitted draft. Seats holds seat labels such as "B3".
type Reservation struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Reference    string         `gorm:"uniqueIndex;not null" json:"reference"`
	RestaurantID uuid.UUID      `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	CustomerID   *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string         `gorm:"not null" json:"customer_name"`
	Date         string         `gorm:"type:varchar(10);index;not null" json:"date"`
	Time         string         `gorm:"type:varchar(5);not null" json:"time"`
	ScheduledAt  time.Time      `gorm:"index;not null" json:"scheduled_at"`
	Seats        pq.StringArray `gorm:"type:text[];not null" json:"seats"`
	TotalAmount  int64          `gorm:"not null;default:0" json:"total_amount"`
	Status       Status         `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	CancelledAt  *time.Time     `json:"cancelled_at,omitempty"`

	Items []ReservationItem `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE;" json:"items"`
}

// ReservationItem is the priced order line frozen at submission
type ReservationItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReservationID uuid.UUID `gorm:"type:uuid;index;not null" json:"reservation_id"`
	MenuItemID    string    `gorm:"not null" json:"menu_item_id"`
	Name          string    `gorm:"not null" json:"name"`
	Price         int64     `gorm:"not null" json:"price"`
	Quantity      int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (ReservationItem) TableName() string {
	return "reservation_items"
}

// IsOwnedBy reports whether the customer made this reservation
func (r *Reservation) IsOwnedBy(customerID uuid.UUID) bool {
	return r.CustomerID != nil && *r.CustomerID == customerID
}

// ListQuery filters reservation listings; empty fields are ignored
type ListQuery struct {
	RestaurantID string `form:"restaurant_id"`
	CustomerID   string `form:"customer_id"`
	Date         string `form:"date"`
	Status       string `form:"status"`
}

// ParseSchedule validates a date/time pair and returns the local instant
func ParseSchedule(date, clock string) (time.Time, error) {
	at, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidSchedule
	}
	return at, nil
}
