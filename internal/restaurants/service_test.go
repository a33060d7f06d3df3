package restaurants

import (
	"context"
	"io"
	"testing"
	"time"

	"zari/pkg/cache"
	"zari/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, restaurant *Restaurant) error {
	args := m.Called(ctx, restaurant)
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, query ListQuery) ([]Restaurant, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]Restaurant), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Restaurant, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]Restaurant), args.Error(1)
}

func (m *MockRepository) Districts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Restaurant, error) {
	args := m.Called(ctx, id, updates)
	if r := args.Get(0); r != nil {
		return r.(*Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateOccupancy(ctx context.Context, id uuid.UUID, pct int, at time.Time) error {
	return m.Called(ctx, id, pct).Error(0)
}

func (m *MockRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "error", true)
}

func withCache(t *testing.T, svc Service) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc.SetCacheService(cache.NewService(client))
	return mr
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, OccupancyLow, LevelOf(0))
	assert.Equal(t, OccupancyLow, LevelOf(49))
	assert.Equal(t, OccupancyMedium, LevelOf(50))
	assert.Equal(t, OccupancyMedium, LevelOf(79))
	assert.Equal(t, OccupancyHigh, LevelOf(80))
	assert.Equal(t, OccupancyHigh, LevelOf(100))
}

func TestList_CachesByQuery(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quietLogger())
	withCache(t, svc)
	ctx := context.Background()

	list := []Restaurant{{ID: uuid.New(), Name: "Bella Italia", Cuisine: "Italian", District: "Gangnam", Occupancy: 85}}
	repo.On("List", mock.Anything, ListQuery{Q: "italian", District: "Gangnam"}).Return(list, nil).Once()

	first, err := svc.List(ctx, ListQuery{Q: " italian ", District: "Gangnam"})
	require.NoError(t, err)
	second, err := svc.List(ctx, ListQuery{Q: "italian", District: "Gangnam"})
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Equal(t, OccupancyHigh, first[0].OccupancyLevel)
	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}

func TestCreate_SlugCollision(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quietLogger())
	owner := uuid.New()

	repo.On("SlugExists", mock.Anything, "bella-italia").Return(true, nil).Once()
	repo.On("SlugExists", mock.Anything, mock.MatchedBy(func(s string) bool {
		return len(s) == len("bella-italia-")+6
	})).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Create(context.Background(), owner, CreateRestaurantRequest{
		Name: "Bella Italia", Cuisine: "Italian", District: "Gangnam",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Slug, "bella-italia-")
	assert.Equal(t, owner.String(), resp.OwnerID)
	repo.AssertExpectations(t)
}

func TestUpdate_RejectsOtherOwner(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quietLogger())
	owner, other := uuid.New(), uuid.New()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(&Restaurant{ID: id, OwnerID: &owner}, nil)

	name := "New name"
	_, err := svc.Update(context.Background(), id, other, UpdateRestaurantRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetOccupancy_InvalidatesCache(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quietLogger())
	mr := withCache(t, svc)
	id := uuid.New()

	require.NoError(t, mr.Set("zari:restaurants:list:q::district:", "[]"))
	repo.On("UpdateOccupancy", mock.Anything, id, 64).Return(nil)

	require.NoError(t, svc.SetOccupancy(context.Background(), id, 64))
	assert.False(t, mr.Exists("zari:restaurants:list:q::district:"))

	assert.ErrorIs(t, svc.SetOccupancy(context.Background(), id, 101), ErrInvalidOccupancy)
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, quietLogger())
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, ErrRestaurantNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
