package menus

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"zari/internal/restaurants"
	"zari/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SetCacheService(cache.Service) {}

func (m *MockService) List(ctx context.Context, restaurantID uuid.UUID, onlyAvailable bool) ([]MenuItem, error) {
	args := m.Called(ctx, restaurantID, onlyAvailable)
	return args.Get(0).([]MenuItem), args.Error(1)
}

func (m *MockService) Resolve(ctx context.Context, restaurantID, itemID uuid.UUID) (*MenuItem, error) {
	args := m.Called(ctx, restaurantID, itemID)
	if it := args.Get(0); it != nil {
		return it.(*MenuItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, ownerID, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItem, error) {
	args := m.Called(ctx, ownerID, restaurantID, req)
	if it := args.Get(0); it != nil {
		return it.(*MenuItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItem, error) {
	args := m.Called(ctx, ownerID, itemID, req)
	if it := args.Get(0); it != nil {
		return it.(*MenuItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	return m.Called(ctx, ownerID, itemID).Error(0)
}

func (m *MockService) ToggleAvailability(ctx context.Context, ownerID, itemID uuid.UUID) (*MenuItem, error) {
	args := m.Called(ctx, ownerID, itemID)
	if it := args.Get(0); it != nil {
		return it.(*MenuItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(svc Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	ctrl := NewController(svc)
	SetupMenuRoutes(api, ctrl)
	SetupBusinessRoutes(api.Group("/business", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}), ctrl)
	return r
}

func TestController_GetMenu(t *testing.T) {
	restaurantID := uuid.New()
	svc := new(MockService)
	svc.On("List", mock.Anything, restaurantID, true).Return([]MenuItem{{Name: "Bulgogi"}}, nil).Once()
	svc.On("List", mock.Anything, restaurantID, false).Return([]MenuItem{{Name: "Bulgogi"}, {Name: "Sold out"}}, nil).Once()
	r := setupRouter(svc, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID.String()+"/menu", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID.String()+"/menu?all=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestController_CreateItem(t *testing.T) {
	owner, restaurantID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		body       map[string]interface{}
		setupMock  func(m *MockService)
		wantStatus int
	}{
		{"validation", map[string]interface{}{"name": "Soju"}, func(m *MockService) {}, http.StatusBadRequest},
		{"forbidden", map[string]interface{}{"name": "Soju", "price": 5000, "category": "DRINK"}, func(m *MockService) {
			m.On("Create", mock.Anything, owner, restaurantID, mock.Anything).Return(nil, restaurants.ErrNotOwner)
		}, http.StatusForbidden},
		{"created", map[string]interface{}{"name": "Soju", "price": 5000, "category": "DRINK"}, func(m *MockService) {
			m.On("Create", mock.Anything, owner, restaurantID, mock.Anything).Return(&MenuItem{Name: "Soju"}, nil)
		}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			body, _ := json.Marshal(tt.body)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/business/restaurants/"+restaurantID.String()+"/menu", bytes.NewReader(body))
			setupRouter(svc, owner.String()).ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestController_DeleteItem_NotFound(t *testing.T) {
	owner, itemID := uuid.New(), uuid.New()
	svc := new(MockService)
	svc.On("Delete", mock.Anything, owner, itemID).Return(ErrMenuItemNotFound)

	w := httptest.NewRecorder()
	setupRouter(svc, owner.String()).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/business/menu-items/"+itemID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestController_ToggleAvailability_Unauthenticated(t *testing.T) {
	svc := new(MockService)
	w := httptest.NewRecorder()
	setupRouter(svc, "").ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/business/menu-items/"+uuid.NewString()+"/availability", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
