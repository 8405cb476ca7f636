package dto

import (
	"time"

	"github.com/yukikurage/worklog-api/internal/models"
)

// ReportDTO represents a report in API responses
type ReportDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Status      models.ReportStatus `json:"status"`
	OwnerID     models.UserID       `json:"owner_id"`
	Owner       *OwnerDTO           `json:"owner,omitempty"`
	SubmittedAt *time.Time          `json:"submitted_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToReportDTO converts a Report model to ReportDTO
func ToReportDTO(report models.Report) ReportDTO {
	dto := ReportDTO{
		ID:          report.ID,
		Title:       report.Title,
		Content:     report.Content,
		Status:      report.Status,
		OwnerID:     report.OwnerID,
		SubmittedAt: report.SubmittedAt,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}

	// Include owner if preloaded
	if report.Owner.ID != 0 {
		dto.Owner = &OwnerDTO{
			ID:    report.Owner.ID,
			Name:  report.Owner.Name,
			Email: report.Owner.Email,
		}
	}

	return dto
}

func ToReportDTOs(reports []models.Report) []ReportDTO {
	items := make([]ReportDTO, len(reports))
	for i, report := range reports {
		items[i] = ToReportDTO(report)
	}
	return items
}
