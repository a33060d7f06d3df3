package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zari/internal/shared/constants"
	"zari/pkg/cache"

	"github.com/redis/go-redis/v9"
)

var (
	ErrDraftNotFound = errors.New("no reservation draft")
	ErrDraftBusy     = errors.New("reservation draft is being updated by another request")
)

// DraftStore persists assembler snapshots per (user, restaurant) and
// serializes commands on the same draft with a Redis lock
type DraftStore struct {
	client  *redis.Client
	locker  *cache.Locker
	ttl     time.Duration
	lockTTL time.Duration
}

func NewDraftStore(client *redis.Client, ttl, lockTTL time.Duration) *DraftStore {
	return &DraftStore{
		client:  client,
		locker:  cache.NewLocker(client, constants.KEY_LOCK_PREFIX),
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func (s *DraftStore) Load(ctx context.Context, userID, restaurantID string) (*Snapshot, error) {
	key := constants.BuildDraftKey(userID, restaurantID)
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// unreadable drafts are discarded, the user starts over
		s.client.Del(ctx, key)
		return nil, ErrDraftNotFound
	}
	return &snap, nil
}

func (s *DraftStore) Save(ctx context.Context, userID, restaurantID string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, constants.BuildDraftKey(userID, restaurantID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, userID, restaurantID string) error {
	return s.client.Del(ctx, constants.BuildDraftKey(userID, restaurantID)).Err()
}

// Lock returns ErrDraftBusy while another command holds the draft
func (s *DraftStore) Lock(ctx context.Context, userID, restaurantID string) (*cache.Lock, error) {
	lock, err := s.locker.Acquire(ctx, constants.BuildDraftLockName(userID, restaurantID), s.lockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			return nil, ErrDraftBusy
		}
		return nil, err
	}
	return lock, nil
}
