package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/services"
	"github.com/yukikurage/worklog-api/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ListReports returns the current user's reports, or all reports for managers and admins
func (h *ReportHandler) ListReports(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	input := services.ListReportsInput{
		Pagination: utils.GetPaginationParams(c),
	}
	if status := c.Query("status"); status != "" {
		s := models.ReportStatus(status)
		if !s.Valid() {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &s
	}

	reports, total, err := h.reportService.ListReports(c.Request.Context(), caller, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	writeList(c, total, dto.ToReportDTOs(reports))
}

// GetReport returns a single report
func (h *ReportHandler) GetReport(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report))
}

// CreateReport creates a report owned by the current user
func (h *ReportHandler) CreateReport(c *gin.Context) {
	type CreateReportRequest struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Status  string `json:"status"`
	}

	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), caller, services.CreateReportInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  models.ReportStatus(req.Status),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*report))
}

// DraftReport writes a draft report from the current user's hour logs
func (h *ReportHandler) DraftReport(c *gin.Context) {
	type DraftReportRequest struct {
		Title     string `json:"title"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}

	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req DraftReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	start, err := optionalDate("start_date", req.StartDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	end, err := optionalDate("end_date", req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	report, err := h.reportService.DraftReport(c.Request.Context(), caller, services.DraftReportInput{
		Title: req.Title,
		Start: start,
		End:   end,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*report))
}

// UpdateReport merges the request body into a report
func (h *ReportHandler) UpdateReport(c *gin.Context) {
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

	report, err := h.reportService.UpdateReport(c.Request.Context(), caller, id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report))
}

// SubmitReport submits a report for review
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	report, err := h.reportService.SubmitReport(c.Request.Context(), caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report))
}

// DeleteReport deletes a report
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), caller, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Report deleted successfully",
	})
}
