package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/policy"
	"github.com/yukikurage/worklog-api/internal/repository"
	"github.com/yukikurage/worklog-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrHourLogNotFound   = errors.New("hour log not found")
	ErrDateRangeRequired = errors.New("start date and end date are required")
	ErrInvalidDateRange  = errors.New("end date is before start date")
)

// HourLogService handles hour log business logic
type HourLogService struct {
	hourLogRepo repository.HourLogRepository
	authz       Authorizer
}

// NewHourLogService creates a new HourLogService
func NewHourLogService(hourLogRepo repository.HourLogRepository, authz Authorizer) *HourLogService {
	return &HourLogService{
		hourLogRepo: hourLogRepo,
		authz:       authz,
	}
}

// CreateHourLogInput represents input for logging hours
type CreateHourLogInput struct {
	Date        *time.Time
	Hours       *float64
	Description string
}

// ListHourLogs returns the caller's hour logs ordered by date
func (s *HourLogService) ListHourLogs(ctx context.Context, caller policy.Caller, pagination utils.PaginationParams) ([]models.HourLog, int64, error) {
	logs, total, err := s.hourLogRepo.List(ctx, repository.HourLogFilter{
		OwnerID:    caller.ID,
		Pagination: pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list hour logs: %w", err)
	}
	return logs, total, nil
}

// ListHourLogsInRange returns the caller's hour logs dated within [start, end].
// Both bounds are required.
func (s *HourLogService) ListHourLogsInRange(ctx context.Context, caller policy.Caller, start, end *time.Time) ([]models.HourLog, error) {
	if start == nil || end == nil {
		return nil, ErrDateRangeRequired
	}
	if end.Before(*start) {
		return nil, ErrInvalidDateRange
	}

	logs, _, err := s.hourLogRepo.List(ctx, repository.HourLogFilter{
		OwnerID: caller.ID,
		From:    start,
		To:      end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list hour logs: %w", err)
	}
	return logs, nil
}

// GetHourLog returns an hour log the caller may read
func (s *HourLogService) GetHourLog(ctx context.Context, caller policy.Caller, id uint64) (*models.HourLog, error) {
	return s.load(ctx, caller, id, policy.OpRead)
}

// CreateHourLog stores an hour log owned by the caller
func (s *HourLogService) CreateHourLog(ctx context.Context, caller policy.Caller, input CreateHourLogInput) (*models.HourLog, error) {
	description := strings.TrimSpace(input.Description)
	if input.Date == nil || input.Hours == nil || description == "" {
		return nil, ErrMissingFields
	}
	if err := validateHours(*input.Hours); err != nil {
		return nil, err
	}

	log := &models.HourLog{
		Date:        *input.Date,
		Hours:       *input.Hours,
		Description: description,
		OwnerID:     caller.ID,
	}

	if err := s.hourLogRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create hour log: %w", err)
	}

	return log, nil
}

// UpdateHourLog merges the patch into an hour log owned by the caller
func (s *HourLogService) UpdateHourLog(ctx context.Context, caller policy.Caller, id uint64, patch Patch) (*models.HourLog, error) {
	log, err := s.load(ctx, caller, id, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	updates, err := patch.columns(hourLogPatchFields)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return log, nil
	}

	if err := s.hourLogRepo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update hour log: %w", err)
	}

	return s.find(ctx, id)
}

// DeleteHourLog removes an hour log owned by the caller
func (s *HourLogService) DeleteHourLog(ctx context.Context, caller policy.Caller, id uint64) error {
	if _, err := s.load(ctx, caller, id, policy.OpDelete); err != nil {
		return err
	}

	if err := s.hourLogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hour log: %w", err)
	}

	return nil
}

func (s *HourLogService) find(ctx context.Context, id uint64) (*models.HourLog, error) {
	log, err := s.hourLogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHourLogNotFound
		}
		return nil, fmt.Errorf("failed to find hour log: %w", err)
	}
	return log, nil
}

func (s *HourLogService) load(ctx context.Context, caller policy.Caller, id uint64, op policy.Operation) (*models.HourLog, error) {
	log, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(ctx, s.authz, policy.Request{
		Caller:    caller,
		Operation: op,
		Resource:  policy.Resource{Kind: policy.KindHourLog, ID: log.ID, Owner: log.OwnerID},
	}); err != nil {
		return nil, err
	}

	return log, nil
}
