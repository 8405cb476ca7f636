package middleware

import (
	"context"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/auth"
	"github.com/yukikurage/worklog-api/internal/constants"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/policy"
)

// UserLookup loads the user behind an authenticated request.
type UserLookup interface {
	FindByID(ctx context.Context, id models.UserID) (*models.User, error)
}

// RequireAuth authenticates the request with a bearer token or, failing
// that, the session cookie. The user is reloaded so the caller's role is
// always the stored one.
func RequireAuth(users UserLookup, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, tokens)
		if !ok {
			userID, ok = sessionUserID(c)
		}
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			apierrors.Unauthorized(c, "User not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, uint64(user.ID))
		c.Set(constants.ContextKeyUserRole, user.Role)
		c.Set(constants.ContextKeyCaller, policy.Caller{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

func bearerUserID(c *gin.Context, tokens *auth.TokenManager) (models.UserID, bool) {
	header := c.GetHeader("Authorization")
	if tokens == nil || header == "" {
		return 0, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, false
	}

	claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

func sessionUserID(c *gin.Context) (models.UserID, bool) {
	session := sessions.Default(c)
	id, ok := toUint64(session.Get(constants.ContextKeyUserID))
	if !ok || id == 0 {
		return 0, false
	}
	return models.UserID(id), true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

// GetCaller retrieves the authenticated caller set by RequireAuth
func GetCaller(c *gin.Context) (policy.Caller, bool) {
	value, exists := c.Get(constants.ContextKeyCaller)
	if !exists {
		return policy.Caller{}, false
	}
	caller, ok := value.(policy.Caller)
	return caller, ok
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case models.UserID:
		return uint64(v), true
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
