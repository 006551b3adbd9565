package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lhajoosten/studdit-api/internal/constants"
	apierrors "github.com/lhajoosten/studdit-api/internal/errors"
)

// RequireAuth rejects requests without an authenticated session and puts the
// normalized user ID into the request context for handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, ok := normalizeID(session.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, id)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from the request context.
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return normalizeID(value)
}

// normalizeID coerces a session-stored user ID to uint64. Session stores
// round-trip values through gob or JSON, so the integer type is not
// guaranteed to survive.
func normalizeID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
