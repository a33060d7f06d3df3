// Package session holds the signed-in user's session. A session is
// established at login, hydrated on every authenticated request and torn
// down at logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zari/internal/shared/constants"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession covers a missing, expired or unreadable session
var ErrNoSession = errors.New("no active session")

// Session is the user object the client used to keep under a single key
type Session struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsBusiness() bool { return s.Role == "BUSINESS" }

type Manager struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewManager(client *redis.Client, ttl time.Duration, log *logger.Logger) *Manager {
	return &Manager{client: client, ttl: ttl, log: log}
}

// Establish creates and stores a new session
func (m *Manager) Establish(ctx context.Context, userID, name, email, role string) (*Session, error) {
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Role:      role,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := m.client.Set(ctx, constants.BuildSessionKey(s.ID), data, m.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Hydrate loads a session. Unreadable payloads are deleted and reported as
// ErrNoSession so callers only ever see "signed in" or "signed out".
func (m *Manager) Hydrate(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	key := constants.BuildSessionKey(sessionID)

	raw, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.UserID == "" {
		m.log.Warn("discarding malformed session", "session_id", sessionID)
		_ = m.client.Del(ctx, key).Err()
		return nil, ErrNoSession
	}
	s.ID = sessionID
	return &s, nil
}

// Teardown removes the session. Removing an absent session is not an error.
func (m *Manager) Teardown(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.client.Del(ctx, constants.BuildSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
