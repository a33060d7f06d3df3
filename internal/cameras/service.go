package cameras

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"zari/internal/detection"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// OwnerChecker is satisfied by restaurants.Service
type OwnerChecker interface {
	AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error
}

type Service interface {
	List(ctx context.Context, ownerID, restaurantID uuid.UUID) ([]Camera, error)
	Create(ctx context.Context, ownerID uuid.UUID, req CreateCameraRequest) (*Camera, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCameraRequest) (*Camera, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	ToggleEnabled(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error)
	// TestConnection simulates reaching the camera and records the outcome
	TestConnection(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error)

	Active(ctx context.Context, ownerID, restaurantID uuid.UUID) ([]Camera, error)
	Next(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error)
	Prev(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error)

	Analyze(ctx context.Context, ownerID, id uuid.UUID) (*Snapshot, error)
	Ingest(ctx context.Context, ownerID uuid.UUID, req DetectionsRequest) (*Snapshot, error)
	Monitor(ctx context.Context, ownerID, restaurantID uuid.UUID) (*MonitorResponse, error)

	// SweepActive analyzes every active camera once and returns how many reported
	SweepActive(ctx context.Context) (int, error)
}

type service struct {
	repo           Repository
	owners         OwnerChecker
	detector       detection.Service
	monitor        *Monitor
	connectSuccess float64
	roll           func() float64
	log            *logger.Logger
}

func NewService(repo Repository, owners OwnerChecker, detector detection.Service, monitor *Monitor,
	connectSuccess float64, log *logger.Logger) Service {
	return &service{
		repo:           repo,
		owners:         owners,
		detector:       detector,
		monitor:        monitor,
		connectSuccess: connectSuccess,
		roll:           rand.Float64,
		log:            log.WithComponent("cameras"),
	}
}

// owned loads a camera and checks the caller manages its restaurant
func (s *service) owned(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error) {
	camera, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.owners.AssertOwner(ctx, camera.RestaurantID, ownerID); err != nil {
		return nil, err
	}
	return camera, nil
}

func (s *service) List(ctx context.Context, ownerID, restaurantID uuid.UUID) ([]Camera, error) {
	if err := s.owners.AssertOwner(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateCameraRequest) (*Camera, error) {
	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("parse restaurant id: %w", err)
	}
	if err := s.owners.AssertOwner(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}

	camera := &Camera{RestaurantID: restaurantID, Status: StatusOffline, Enabled: true}
	if err := copier.Copy(camera, &req); err != nil {
		return nil, fmt.Errorf("map camera: %w", err)
	}
	if err := s.repo.Create(ctx, camera); err != nil {
		return nil, fmt.Errorf("create camera: %w", err)
	}
	return camera, nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCameraRequest) (*Camera, error) {
	camera, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(camera, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, fmt.Errorf("map camera: %w", err)
	}
	if err := s.repo.Save(ctx, camera); err != nil {
		return nil, err
	}
	return camera, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ToggleEnabled(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error) {
	camera, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	camera.Enabled = !camera.Enabled
	if err := s.repo.Save(ctx, camera); err != nil {
		return nil, err
	}
	return camera, nil
}

func (s *service) TestConnection(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error) {
	camera, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	camera.LastCheckedAt = &now
	if s.roll() < s.connectSuccess {
		camera.Status = StatusOnline
	} else {
		camera.Status = StatusError
	}
	if err := s.repo.Save(ctx, camera); err != nil {
		return nil, err
	}
	s.log.Info("camera connection tested", "camera_id", camera.ID, "status", camera.Status)
	return camera, nil
}

func (s *service) Active(ctx context.Context, ownerID, restaurantID uuid.UUID) ([]Camera, error) {
	if err := s.owners.AssertOwner(ctx, restaurantID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListActive(ctx, restaurantID)
}

func (s *service) Next(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error) {
	return s.step(ctx, ownerID, id, 1)
}

func (s *service) Prev(ctx context.Context, ownerID, id uuid.UUID) (*Camera, error) {
	return s.step(ctx, ownerID, id, -1)
}

// step cycles through the active cameras of the restaurant. A camera that is
// not itself active starts the cycle from the first (or last) one.
func (s *service) step(ctx context.Context, ownerID, id uuid.UUID, dir int) (*Camera, error) {
	camera, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ListActive(ctx, camera.RestaurantID)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, ErrNoActiveCameras
	}

	current := -1
	for i := range active {
		if active[i].ID == id {
			current = i
			break
		}
	}
	var next int
	switch {
	case current < 0 && dir > 0:
		next = 0
	case current < 0:
		next = len(active) - 1
	default:
		next = (current + dir + len(active)) % len(active)
	}
	return &active[next], nil
}

func (s *service) Analyze(ctx context.Context, ownerID, id uuid.UUID) (*Snapshot, error) {
	camera, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, camera)
}

func (s *service) analyze(ctx context.Context, camera *Camera) (*Snapshot, error) {
	if !camera.Enabled {
		return nil, ErrCameraDisabled
	}
	result, err := s.detector.Sample(ctx, "camera:"+camera.ID.String())
	if err != nil {
		return nil, err
	}
	return s.monitor.Record(ctx, camera, result)
}

func (s *service) Ingest(ctx context.Context, ownerID uuid.UUID, req DetectionsRequest) (*Snapshot, error) {
	cameraID, err := uuid.Parse(req.CameraID)
	if err != nil {
		return nil, ErrCameraNotFound
	}
	camera, err := s.owned(ctx, ownerID, cameraID)
	if err != nil {
		return nil, err
	}
	if !camera.Enabled {
		return nil, ErrCameraDisabled
	}
	result, err := s.detector.MapBoxes(ctx, "camera:"+camera.ID.String(), req.Detections)
	if err != nil {
		return nil, err
	}
	return s.monitor.Record(ctx, camera, result)
}

func (s *service) Monitor(ctx context.Context, ownerID, restaurantID uuid.UUID) (*MonitorResponse, error) {
	list, err := s.List(ctx, ownerID, restaurantID)
	if err != nil {
		return nil, err
	}
	resp := &MonitorResponse{RestaurantID: restaurantID.String(), Cameras: list}
	latest, err := s.monitor.Latest(ctx, restaurantID)
	switch {
	case err == nil:
		resp.Latest = latest
	case !errors.Is(err, ErrNoSnapshot):
		return nil, err
	}
	return resp, nil
}

func (s *service) SweepActive(ctx context.Context) (int, error) {
	active, err := s.repo.ListActive(ctx, uuid.Nil)
	if err != nil {
		return 0, fmt.Errorf("list active cameras: %w", err)
	}
	reported := 0
	for i := range active {
		if ctx.Err() != nil {
			return reported, ctx.Err()
		}
		if _, err := s.analyze(ctx, &active[i]); err != nil {
			s.log.Warn("camera analysis failed", "camera_id", active[i].ID, "error", err)
			continue
		}
		reported++
	}
	return reported, nil
}
