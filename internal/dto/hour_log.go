package dto

import (
	"time"

	"github.com/yukikurage/worklog-api/internal/models"
)

// HourLogDTO represents an hour log in API responses
type HourLogDTO struct {
	ID          uint64        `json:"id"`
	Date        time.Time     `json:"date"`
	Hours       float64       `json:"hours"`
	Description string        `json:"description"`
	OwnerID     models.UserID `json:"owner_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func ToHourLogDTO(log models.HourLog) HourLogDTO {
	return HourLogDTO{
		ID:          log.ID,
		Date:        log.Date,
		Hours:       log.Hours,
		Description: log.Description,
		OwnerID:     log.OwnerID,
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}
}

func ToHourLogDTOs(logs []models.HourLog) []HourLogDTO {
	items := make([]HourLogDTO, len(logs))
	for i, log := range logs {
		items[i] = ToHourLogDTO(log)
	}
	return items
}
