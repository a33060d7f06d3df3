package reservations

import (
	"context"
	"io"
	"sync"
	"time"

	"zari/internal/menus"
	"zari/internal/notifications"
	"zari/internal/restaurants"
	"zari/internal/seats"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, reservation *Reservation) error {
	args := m.Called(ctx, reservation)
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, query ListQuery) ([]Reservation, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, from Status, updates map[string]interface{}) error {
	return m.Called(ctx, id, from, updates).Error(0)
}

func (m *MockRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status, at time.Time) error {
	return m.Called(ctx, id, from, to, at).Error(0)
}

func (m *MockRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]Reservation, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockRepository) ListConfirmedScheduledBefore(ctx context.Context, cutoff time.Time) ([]Reservation, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]Reservation), args.Error(1)
}

type MockRestaurants struct {
	mock.Mock
}

func (m *MockRestaurants) Get(ctx context.Context, id uuid.UUID) (*restaurants.RestaurantResponse, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*restaurants.RestaurantResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRestaurants) AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error {
	return m.Called(ctx, restaurantID, ownerID).Error(0)
}

type MockMenus struct {
	mock.Mock
}

func (m *MockMenus) Resolve(ctx context.Context, restaurantID, itemID uuid.UUID) (*menus.MenuItem, error) {
	args := m.Called(ctx, restaurantID, itemID)
	if it := args.Get(0); it != nil {
		return it.(*menus.MenuItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingNotifier keeps every alert it is handed
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []*notifications.Alert
}

func (n *recordingNotifier) Notify(_ context.Context, alert *notifications.Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *recordingNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.alerts))
	for _, a := range n.alerts {
		out = append(out, a.RecipientID)
	}
	return out
}

type staticDetections map[int]seats.Status

func (d staticDetections) SeatStatuses(context.Context, uuid.UUID) (map[int]seats.Status, error) {
	return d, nil
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error", true)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) reservation(args mock.Arguments) (*Reservation, error) {
	if r := args.Get(0); r != nil {
		return r.(*Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, in NewReservation) (*Reservation, error) {
	return m.reservation(m.Called(ctx, in))
}

func (m *MockService) CreateFromRequest(ctx context.Context, actor Actor, req CreateReservationRequest) (*Reservation, error) {
	return m.reservation(m.Called(ctx, actor, req))
}

func (m *MockService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*Reservation, error) {
	return m.reservation(m.Called(ctx, actor, id))
}

func (m *MockService) List(ctx context.Context, actor Actor, query ListQuery) ([]Reservation, error) {
	args := m.Called(ctx, actor, query)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockService) ListMine(ctx context.Context, customerID uuid.UUID) ([]Reservation, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockService) ListForRestaurant(ctx context.Context, ownerID, restaurantID uuid.UUID, query ListQuery) ([]Reservation, error) {
	args := m.Called(ctx, ownerID, restaurantID, query)
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockService) Patch(ctx context.Context, actor Actor, id uuid.UUID, req PatchReservationRequest) (*Reservation, error) {
	return m.reservation(m.Called(ctx, actor, id, req))
}

func (m *MockService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*Reservation, error) {
	return m.reservation(m.Called(ctx, actor, id))
}

func (m *MockService) Confirm(ctx context.Context, ownerID, id uuid.UUID) (*Reservation, error) {
	return m.reservation(m.Called(ctx, ownerID, id))
}

func (m *MockService) Complete(ctx context.Context, ownerID, id uuid.UUID) (*Reservation, error) {
	return m.reservation(m.Called(ctx, ownerID, id))
}

func (m *MockService) QRCode(ctx context.Context, actor Actor, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, actor, id)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) SweepLifecycle(ctx context.Context, now time.Time) (int, int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Int(1), args.Error(2)
}
