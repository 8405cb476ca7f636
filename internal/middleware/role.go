package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/constants"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
)

// RequireRole lets the request through only when the caller has one of
// roles. It must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(constants.ContextKeyUserRole)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		role, ok := value.(models.Role)
		if !ok {
			apierrors.InternalError(c, "Invalid role data")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Not authorized")
		c.Abort()
	}
}
