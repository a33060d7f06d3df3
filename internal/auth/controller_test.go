package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zari/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) RefreshToken(ctx context.Context, token string) (*TokenPair, error) {
	args := m.Called(ctx, token)
	if r := args.Get(0); r != nil {
		return r.(*TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// fakeAuth stands in for the JWT middleware
func fakeAuth(s *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s != nil {
			session.Attach(c, s)
		}
		c.Next()
	}
}

func setupRouter(svc Service, s *session.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewRouter(NewController(svc), fakeAuth(s)).SetupRoutes(r.Group("/api/v1"))
	return r
}

func TestController_Register(t *testing.T) {
	valid := map[string]string{
		"name": "Kim", "email": "kim@example.com", "password": "secret1", "confirm_password": "secret1",
	}

	tests := []struct {
		name       string
		body       interface{}
		setupMock  func(m *MockService)
		wantStatus int
	}{
		{
			name:       "invalid json",
			body:       "{",
			setupMock:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			body:       map[string]string{"email": "kim@example.com"},
			setupMock:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password mismatch",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, ErrPasswordMismatch)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, ErrUserAlreadyExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "ok",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return(&AuthResponse{AccessToken: "a"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "storage failure",
			body: valid,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			r := setupRouter(svc, nil)

			var body []byte
			if s, ok := tt.body.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestController_Login_InvalidCredentials(t *testing.T) {
	svc := new(MockService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, ErrInvalidCredentials)
	r := setupRouter(svc, nil)

	body, _ := json.Marshal(map[string]string{"email": "kim@example.com", "password": "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestController_LogoutAndMe(t *testing.T) {
	sess := &session.Session{ID: "s1", UserID: "u1", Name: "Kim", Role: "CUSTOMER", Email: "kim@example.com"}
	svc := new(MockService)
	svc.On("Logout", mock.Anything, "s1").Return(nil)
	r := setupRouter(svc, sess)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Kim"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestController_MeWithoutSession(t *testing.T) {
	r := setupRouter(new(MockService), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
