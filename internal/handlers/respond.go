package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/constants"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/middleware"
	"github.com/yukikurage/worklog-api/internal/policy"
	"github.com/yukikurage/worklog-api/internal/services"
	"github.com/yukikurage/worklog-api/internal/utils"
)

// respondServiceError maps service errors to API error responses.
func respondServiceError(c *gin.Context, err error) {
	var fieldErr *services.FieldError

	switch {
	case errors.Is(err, services.ErrMissingFields):
		apierrors.MissingField(c, "Please add all required fields")
	case errors.Is(err, services.ErrDateRangeRequired):
		apierrors.MissingField(c, "Please provide startDate and endDate")
	case errors.Is(err, services.ErrInvalidDateRange):
		apierrors.BadRequest(c, "endDate must not be before startDate")
	case errors.As(err, &fieldErr):
		apierrors.BadRequestWithDetails(c, "Invalid field value", gin.H{
			"field":  fieldErr.Field,
			"reason": fieldErr.Reason,
		})

	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrHourLogNotFound):
		apierrors.NotFound(c, "Hour log not found")
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, "Report not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")

	case errors.Is(err, services.ErrNotAuthorized):
		apierrors.Forbidden(c, "Not authorized")
	case errors.Is(err, services.ErrOnlyStatusUpdatable):
		apierrors.InvalidOperation(c, "Only status can be updated by managers/admins")
	case errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.SelfDeletion(c, "You cannot delete yourself")

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)

	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrNoHourLogsInRange):
		apierrors.BadRequest(c, "No hour logs found in the requested range")

	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", middleware.GetRequestID(c),
			"path", c.FullPath(),
			"error", err,
		)
		apierrors.InternalError(c, "")
	}
}

// requireCaller returns the authenticated caller or writes a 401.
func requireCaller(c *gin.Context) (policy.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return policy.Caller{}, false
	}
	return caller, true
}

// requireID returns the :id parameter parsed by middleware or writes a 400.
func requireID(c *gin.Context) (uint64, bool) {
	if id, ok := middleware.GetIDParam(c); ok {
		return id, true
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}

// bindPatch decodes the request body as a JSON object.
func bindPatch(c *gin.Context) (services.Patch, bool) {
	var patch services.Patch
	if err := c.ShouldBindJSON(&patch); err != nil || patch == nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}
	return patch, true
}

// optionalDate parses a date field that may be empty.
func optionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return nil, &services.FieldError{Field: field, Reason: "must be a date"}
	}
	return &t, nil
}

// queryDate reads the first non-empty query parameter among names.
func queryDate(c *gin.Context, field string, names ...string) (*time.Time, error) {
	for _, name := range names {
		if value := c.Query(name); value != "" {
			return optionalDate(field, value)
		}
	}
	return nil, nil
}

func writeList(c *gin.Context, total int64, items interface{}) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}
