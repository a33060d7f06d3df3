package restaurants

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"zari/internal/shared/utils/response"
	"zari/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SetCacheService(cache.Service) {}

func (m *MockService) List(ctx context.Context, query ListQuery) ([]RestaurantResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]RestaurantResponse), args.Error(1)
}

func (m *MockService) Districts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id uuid.UUID) (*RestaurantResponse, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*RestaurantResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]RestaurantResponse, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]RestaurantResponse), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, ownerID uuid.UUID, req CreateRestaurantRequest) (*RestaurantResponse, error) {
	args := m.Called(ctx, ownerID, req)
	if r := args.Get(0); r != nil {
		return r.(*RestaurantResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id, ownerID uuid.UUID, req UpdateRestaurantRequest) (*RestaurantResponse, error) {
	args := m.Called(ctx, id, ownerID, req)
	if r := args.Get(0); r != nil {
		return r.(*RestaurantResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) AssertOwner(ctx context.Context, restaurantID, ownerID uuid.UUID) error {
	return m.Called(ctx, restaurantID, ownerID).Error(0)
}

func (m *MockService) SetOccupancy(ctx context.Context, id uuid.UUID, pct int) error {
	return m.Called(ctx, id, pct).Error(0)
}

func setupRouter(svc Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	SetupRestaurantRoutes(api, NewController(svc))
	business := api.Group("/business", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	SetupBusinessRoutes(business, NewController(svc))
	return r
}

func TestController_ListRestaurants(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, ListQuery{Q: "sushi", District: "Mapo"}).
		Return([]RestaurantResponse{{Name: "Sushi Zen", OccupancyLevel: OccupancyLow}}, nil)
	r := setupRouter(svc, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/restaurants?q=sushi&district=Mapo", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body response.StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	svc.AssertExpectations(t)
}

func TestController_GetRestaurant(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name       string
		path       string
		setupMock  func(m *MockService)
		wantStatus int
	}{
		{"bad id", "/api/v1/restaurants/not-a-uuid", func(m *MockService) {}, http.StatusBadRequest},
		{"not found", "/api/v1/restaurants/" + id.String(), func(m *MockService) {
			m.On("Get", mock.Anything, id).Return(nil, ErrRestaurantNotFound)
		}, http.StatusNotFound},
		{"ok", "/api/v1/restaurants/" + id.String(), func(m *MockService) {
			m.On("Get", mock.Anything, id).Return(&RestaurantResponse{ID: id.String()}, nil)
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			w := httptest.NewRecorder()
			setupRouter(svc, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestController_UpdateRestaurant_Forbidden(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	svc := new(MockService)
	svc.On("Update", mock.Anything, id, owner, mock.Anything).Return(nil, ErrNotOwner)

	body, _ := json.Marshal(map[string]string{"name": "Renamed"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/business/restaurants/"+id.String(), bytes.NewReader(body))
	setupRouter(svc, owner.String()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestController_CreateRestaurant_Validation(t *testing.T) {
	svc := new(MockService)
	body, _ := json.Marshal(map[string]interface{}{"name": "X", "rating": 9})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/business/restaurants", bytes.NewReader(body))
	setupRouter(svc, uuid.NewString()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}
