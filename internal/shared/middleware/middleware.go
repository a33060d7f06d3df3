package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"zari/internal/session"
	"zari/internal/shared/config"
	"zari/internal/shared/utils/response"
	"zari/internal/users"
	"zari/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// SessionLoader hydrates the session referenced by an access token
type SessionLoader interface {
	Hydrate(ctx context.Context, sessionID string) (*session.Session, error)
}

// parseAccessToken returns the session id carried by a valid access token
func parseAccessToken(header, secret string) (string, string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "authorization header format must be Bearer {token}", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "invalid or expired token", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "invalid token claims", false
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return "", "invalid token type", false
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", "token carries no session", false
	}
	return sid, "", true
}

// JWTAuthWithConfig validates the bearer token and attaches the live session.
// A token whose session was torn down is rejected.
func JWTAuthWithConfig(cfg *config.Config, sessions SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		sid, reason, ok := parseAccessToken(authHeader, cfg.JWT.Secret)
		if !ok {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), reason, c.ClientIP())
			response.RespondJSON(c, "error", http.StatusUnauthorized, reason, nil, nil)
			c.Abort()
			return
		}

		s, err := sessions.Hydrate(c.Request.Context(), sid)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				response.RespondJSON(c, "error", http.StatusUnauthorized, "session expired, please sign in again", nil, nil)
			} else {
				response.RespondJSON(c, "error", http.StatusInternalServerError, "failed to load session", nil, nil)
			}
			c.Abort()
			return
		}

		session.Attach(c, s)
		c.Next()
	}
}

// OptionalAuthWithConfig attaches a session when a valid one is presented
func OptionalAuthWithConfig(cfg *config.Config, sessions SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if sid, _, ok := parseAccessToken(authHeader, cfg.JWT.Secret); ok {
			if s, err := sessions.Hydrate(c.Request.Context(), sid); err == nil {
				session.Attach(c, s)
			}
		}
		c.Next()
	}
}

// RequireRoles passes users holding any of the given roles
func RequireRoles(requiredRoles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("user_role")
		if userRole == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user role not found in context", nil, nil)
			c.Abort()
			return
		}

		for _, role := range requiredRoles {
			if userRole == string(role) {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		c.Abort()
	}
}

func RequireBusiness() gin.HandlerFunc {
	return RequireRoles(users.RoleBusiness)
}

func RequireCustomer() gin.HandlerFunc {
	return RequireRoles(users.RoleCustomer)
}

// RequestLogger logs every request once it completes
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}
