package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"zari/internal/session"
	"zari/internal/shared/config"
	"zari/internal/users"
	"zari/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*users.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*users.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestService(t *testing.T) (Service, *MockUserRepository, *session.Manager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.NewWithWriter(io.Discard, "error", true)
	sessions := session.NewManager(client, time.Hour, log)
	cfg := &config.Config{JWT: config.JWTConfig{
		Secret:           "test-secret",
		JWTExpiresIn:     15 * time.Minute,
		RefreshExpiresIn: time.Hour,
	}}
	repo := new(MockUserRepository)
	return NewService(repo, sessions, cfg, log), repo, sessions
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Kim", Email: "kim@example.com", Password: "secret1", ConfirmPassword: "secret2",
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	repo.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.On("EmailExists", mock.Anything, "kim@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Kim", Email: "kim@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Kim", Email: "kim@example.com", Password: "secret1", ConfirmPassword: "secret1", Role: "admin",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_EstablishesSession(t *testing.T) {
	svc, repo, sessions := newTestService(t)
	repo.On("EmailExists", mock.Anything, "lee@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		return u.Role == users.RoleBusiness && u.Password != "secret1"
	})).Return(nil)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name: "Lee", Email: "lee@example.com", Password: "secret1", ConfirmPassword: "secret1", Role: "business",
	})
	require.NoError(t, err)
	assert.Equal(t, "BUSINESS", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.(*service).validateToken(resp.AccessToken)
	require.NoError(t, err)
	sess, err := sessions.Hydrate(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Lee", sess.Name)
	assert.Equal(t, resp.User.ID, sess.UserID)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &users.User{ID: uuid.New(), Name: "Kim", Email: "kim@example.com", Password: string(hash), Role: users.RoleCustomer}

	tests := []struct {
		name     string
		password string
		repoUser *users.User
		repoErr  error
		wantErr  error
	}{
		{"ok", "secret1", user, nil, nil},
		{"wrong password", "nope123", user, nil, ErrInvalidCredentials},
		{"unknown user", "secret1", nil, users.ErrUserNotFound, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			repo.On("GetByEmail", mock.Anything, "kim@example.com").Return(tt.repoUser, tt.repoErr)

			resp, err := svc.Login(context.Background(), &LoginRequest{Email: "kim@example.com", Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID.String(), resp.User.ID)
			assert.Equal(t, int64(900), resp.ExpiresIn)
		})
	}
}

func TestRefreshAndLogout(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	user := &users.User{ID: uuid.New(), Name: "Kim", Email: "kim@example.com", Password: string(hash), Role: users.RoleCustomer}

	svc, repo, _ := newTestService(t)
	repo.On("GetByEmail", mock.Anything, "kim@example.com").Return(user, nil)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &LoginRequest{Email: "kim@example.com", Password: "secret1"})
	require.NoError(t, err)

	// access tokens cannot be used to refresh
	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := svc.(*service).validateToken(resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, claims.SessionID))

	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "refresh fails once the session is gone")

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
