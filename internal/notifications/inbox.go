package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"zari/internal/shared/constants"
	"zari/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Inbox keeps the newest alerts of each user in a capped Redis list
type Inbox struct {
	client *redis.Client
	max    int64
	log    *logger.Logger
}

func NewInbox(client *redis.Client, log *logger.Logger) *Inbox {
	return &Inbox{client: client, max: constants.ALERT_INBOX_MAX_LENGTH, log: log}
}

// Push prepends the alert and trims the list to the inbox size
func (in *Inbox) Push(ctx context.Context, alert *Alert) error {
	if err := alert.Validate(); err != nil {
		return err
	}
	data, err := alert.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	key := constants.BuildAlertInboxKey(alert.RecipientID)
	_, err = in.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, in.max-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push alert: %w", err)
	}
	return nil
}

// List returns the inbox newest first. Entries that fail to decode are skipped.
func (in *Inbox) List(ctx context.Context, userID string) ([]Alert, error) {
	raw, err := in.client.LRange(ctx, constants.BuildAlertInboxKey(userID), 0, in.max-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}

	alerts := make([]Alert, 0, len(raw))
	for _, entry := range raw {
		var a Alert
		if err := json.Unmarshal([]byte(entry), &a); err != nil {
			in.log.Warn("skipping malformed alert", "user_id", userID, "error", err)
			continue
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}
