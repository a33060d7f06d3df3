package notifications

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAlert     = errors.New("alert has no recipient")
	ErrMessageToSelf    = errors.New("cannot send a message to yourself")
	ErrRecipientUnknown = errors.New("recipient not found")
)

type AlertType string

const (
	AlertReservationCreated   AlertType = "RESERVATION_CREATED"
	AlertReservationCancelled AlertType = "RESERVATION_CANCELLED"
	AlertReservationStatus    AlertType = "RESERVATION_STATUS_CHANGED"
	AlertDirectMessage        AlertType = "DIRECT_MESSAGE"
)

// Alert is one entry of a user's inbox. It travels over Kafka as JSON and
// is stored in Redis in the same encoding.
type Alert struct {
	ID          uuid.UUID `json:"id"`
	Type        AlertType `json:"type"`
	RecipientID string    `json:"recipient_id"`
	SenderID    string    `json:"sender_id,omitempty"`
	SenderName  string    `json:"sender_name,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`

	ReservationID string `json:"reservation_id,omitempty"`
	RestaurantID  string `json:"restaurant_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type AlertBuilder struct {
	alert *Alert
}

func NewAlertBuilder(alertType AlertType) *AlertBuilder {
	return &AlertBuilder{alert: &Alert{
		ID:        uuid.New(),
		Type:      alertType,
		CreatedAt: time.Now(),
	}}
}

func (b *AlertBuilder) To(recipientID string) *AlertBuilder {
	b.alert.RecipientID = recipientID
	return b
}

func (b *AlertBuilder) From(senderID, senderName string) *AlertBuilder {
	b.alert.SenderID = senderID
	b.alert.SenderName = senderName
	return b
}

func (b *AlertBuilder) WithText(title, body string) *AlertBuilder {
	b.alert.Title = title
	b.alert.Body = body
	return b
}

func (b *AlertBuilder) WithReservation(reservationID, restaurantID string) *AlertBuilder {
	b.alert.ReservationID = reservationID
	b.alert.RestaurantID = restaurantID
	return b
}

func (b *AlertBuilder) Build() *Alert {
	return b.alert
}

// PartitionKey keeps one recipient's alerts ordered on a single partition
func (a *Alert) PartitionKey() string {
	return a.RecipientID
}

func (a *Alert) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}

func (a *Alert) Validate() error {
	if a.RecipientID == "" {
		return ErrInvalidAlert
	}
	return nil
}
