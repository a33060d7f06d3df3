package notifications

import (
	"context"
	"errors"

	"zari/internal/users"
	"zari/pkg/logger"

	"github.com/google/uuid"
)

// UserLookup resolves message recipients
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

type Service interface {
	Alerts(ctx context.Context, userID string) ([]Alert, error)
	SendMessage(ctx context.Context, senderID uuid.UUID, senderName string, req SendMessageRequest) (*Alert, error)
	// Notify publishes without failing the caller; delivery errors are logged
	Notify(ctx context.Context, alert *Alert)
}

type service struct {
	inbox     *Inbox
	publisher Publisher
	users     UserLookup
	log       *logger.Logger
}

func NewService(inbox *Inbox, publisher Publisher, users UserLookup, log *logger.Logger) Service {
	return &service{inbox: inbox, publisher: publisher, users: users, log: log}
}

func (s *service) Alerts(ctx context.Context, userID string) ([]Alert, error) {
	return s.inbox.List(ctx, userID)
}

func (s *service) SendMessage(ctx context.Context, senderID uuid.UUID, senderName string, req SendMessageRequest) (*Alert, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, ErrRecipientUnknown
	}
	if receiverID == senderID {
		return nil, ErrMessageToSelf
	}
	if _, err := s.users.GetByID(ctx, receiverID.String()); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrRecipientUnknown
		}
		return nil, err
	}

	alert := NewAlertBuilder(AlertDirectMessage).
		To(receiverID.String()).
		From(senderID.String(), senderName).
		WithText("New message from "+senderName, req.Content).
		Build()

	if err := s.publisher.Publish(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *service) Notify(ctx context.Context, alert *Alert) {
	if err := s.publisher.Publish(ctx, alert); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish alert", err, map[string]interface{}{
			"type":         alert.Type,
			"recipient_id": alert.RecipientID,
		})
	}
}
