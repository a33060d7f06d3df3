package session

import (
	"github.com/gin-gonic/gin"
)

const contextKey = "session"

// Attach stores the session on the request context along with the flat
// user_* keys read by role checks and handlers
func Attach(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
	c.Set("user_id", s.UserID)
	c.Set("user_email", s.Email)
	c.Set("user_role", s.Role)
	c.Set("user_name", s.Name)
}

// FromContext returns the session attached by the auth middleware
func FromContext(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
