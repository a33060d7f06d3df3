package cameras

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zari/internal/detection"
	"zari/internal/seats"
	"zari/internal/shared/constants"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OccupancySetter is satisfied by restaurants.Service
type OccupancySetter interface {
	SetOccupancy(ctx context.Context, id uuid.UUID, pct int) error
}

// Monitor keeps the latest detection per camera and per restaurant in Redis
// and feeds the restaurant occupancy figure
type Monitor struct {
	client    *redis.Client
	ttl       time.Duration
	occupancy OccupancySetter
	log       *logger.Logger
}

func NewMonitor(client *redis.Client, ttl time.Duration, occupancy OccupancySetter, log *logger.Logger) *Monitor {
	return &Monitor{client: client, ttl: ttl, occupancy: occupancy, log: log.WithComponent("cameras.monitor")}
}

func (m *Monitor) Record(ctx context.Context, camera *Camera, result *detection.Result) (*Snapshot, error) {
	snap := newSnapshot(camera, result)
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, constants.BuildCameraSnapshotKey(snap.CameraID), data, m.ttl)
		pipe.Set(ctx, constants.BuildRestaurantSnapshotKey(snap.RestaurantID), data, m.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	if m.occupancy != nil {
		if err := m.occupancy.SetOccupancy(ctx, camera.RestaurantID, snap.Occupancy); err != nil {
			m.log.Warn("failed to update occupancy", "restaurant_id", camera.RestaurantID, "error", err)
		}
	}
	return &snap, nil
}

func (m *Monitor) load(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		m.client.Del(ctx, key)
		return nil, ErrNoSnapshot
	}
	return &snap, nil
}

// Latest returns the most recent snapshot from any camera of the restaurant
func (m *Monitor) Latest(ctx context.Context, restaurantID uuid.UUID) (*Snapshot, error) {
	return m.load(ctx, constants.BuildRestaurantSnapshotKey(restaurantID.String()))
}

func (m *Monitor) CameraSnapshot(ctx context.Context, cameraID uuid.UUID) (*Snapshot, error) {
	return m.load(ctx, constants.BuildCameraSnapshotKey(cameraID.String()))
}

// SeatStatuses maps "seat-N" detections onto seat ids of the draft seat grid.
// It returns an empty map until a camera has reported.
func (m *Monitor) SeatStatuses(ctx context.Context, restaurantID uuid.UUID) (map[int]seats.Status, error) {
	snap, err := m.Latest(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return map[int]seats.Status{}, nil
		}
		return nil, err
	}
	return snap.result().Statuses(), nil
}
