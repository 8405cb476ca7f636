package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/services"
	"github.com/yukikurage/worklog-api/internal/utils"
)

type HourLogHandler struct {
	hourLogService *services.HourLogService
}

func NewHourLogHandler(hourLogService *services.HourLogService) *HourLogHandler {
	return &HourLogHandler{
		hourLogService: hourLogService,
	}
}

// ListHourLogs returns the current user's hour logs
func (h *HourLogHandler) ListHourLogs(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	logs, total, err := h.hourLogService.ListHourLogs(c.Request.Context(), caller, utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, total, dto.ToHourLogDTOs(logs))
}

// ListHourLogsInRange returns hour logs dated within startDate..endDate, inclusive
func (h *HourLogHandler) ListHourLogsInRange(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	start, err := queryDate(c, "startDate", "startDate", "start_date")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	end, err := queryDate(c, "endDate", "endDate", "end_date")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logs, err := h.hourLogService.ListHourLogsInRange(c.Request.Context(), caller, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, int64(len(logs)), dto.ToHourLogDTOs(logs))
}

// GetHourLog returns a single hour log
func (h *HourLogHandler) GetHourLog(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	log, err := h.hourLogService.GetHourLog(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHourLogDTO(*log))
}

// CreateHourLog logs hours for the current user
func (h *HourLogHandler) CreateHourLog(c *gin.Context) {
	type CreateHourLogRequest struct {
		Date        string   `json:"date"`
		Hours       *float64 `json:"hours"`
		Description string   `json:"description"`
	}

	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateHourLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	date, err := optionalDate("date", req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	log, err := h.hourLogService.CreateHourLog(c.Request.Context(), caller, services.CreateHourLogInput{
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHourLogDTO(*log))
}

// UpdateHourLog merges the request body into an hour log
func (h *HourLogHandler) UpdateHourLog(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	log, err := h.hourLogService.UpdateHourLog(c.Request.Context(), caller, id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHourLogDTO(*log))
}

// DeleteHourLog deletes an hour log
func (h *HourLogHandler) DeleteHourLog(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.hourLogService.DeleteHourLog(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Hour log deleted successfully",
	})
}
