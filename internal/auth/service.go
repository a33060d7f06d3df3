package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"zari/internal/session"
	"zari/internal/shared/config"
	"zari/internal/users"
	"zari/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid token")
)

// Sessions is the slice of session.Manager used by auth
type Sessions interface {
	Establish(ctx context.Context, userID, name, email, role string) (*session.Session, error)
	Hydrate(ctx context.Context, sessionID string) (*session.Session, error)
	Teardown(ctx context.Context, sessionID string) error
}

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	repo     users.Repository
	sessions Sessions
	config   *config.Config
	log      *logger.Logger
}

func NewService(repo users.Repository, sessions Sessions, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		config:   cfg,
		log:      log,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	role := users.RoleCustomer
	if req.Role != "" {
		r, ok := users.ParseRole(req.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		role = r
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.signIn(ctx, user)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.signIn(ctx, user)
}

func (s *service) signIn(ctx context.Context, user *users.User) (*AuthResponse, error) {
	sess, err := s.sessions.Establish(ctx, user.ID.String(), user.Name, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(sess)
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, user.ID.String(), "password")
	return &AuthResponse{
		User: UserResponse{
			ID:        user.ID.String(),
			Name:      user.Name,
			Email:     user.Email,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// RefreshToken issues a new pair for a session that is still alive
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	sess, err := s.sessions.Hydrate(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.generateTokenPair(sess)
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Teardown(ctx, sessionID)
}

func (s *service) signToken(sess *session.Session, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID:    sess.UserID,
		Role:      sess.Role,
		SessionID: sess.ID,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    tokenIssuer,
			Subject:   sess.UserID,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *service) generateTokenPair(sess *session.Session) (*TokenPair, error) {
	now := time.Now()

	access, err := s.signToken(sess, tokenTypeAccess, now, s.config.JWT.JWTExpiresIn)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(sess, tokenTypeRefresh, now, s.config.JWT.RefreshExpiresIn)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
