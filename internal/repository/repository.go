package repository

import (
	"context"
	"time"

	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update merges the given columns into the stored task
	Update(ctx context.Context, id uint64, fields map[string]interface{}) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerID    models.UserID
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// HourLogRepository defines the interface for hour log data access
type HourLogRepository interface {
	Create(ctx context.Context, log *models.HourLog) error
	FindByID(ctx context.Context, id uint64) (*models.HourLog, error)

	// List retrieves a user's hour logs, optionally bounded by an inclusive date range
	List(ctx context.Context, filter HourLogFilter) ([]models.HourLog, int64, error)

	Update(ctx context.Context, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

// HourLogFilter holds filtering options for listing hour logs
type HourLogFilter struct {
	OwnerID    models.UserID
	From       *time.Time
	To         *time.Time
	Pagination utils.PaginationParams
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error

	// FindByID finds a report by ID with its owner preloaded
	FindByID(ctx context.Context, id uint64) (*models.Report, error)

	// List retrieves reports; a nil OwnerID lists every report
	List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error)

	Update(ctx context.Context, id uint64, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint64) error
}

// ReportFilter holds filtering options for listing reports
type ReportFilter struct {
	OwnerID    *models.UserID
	Status     *models.ReportStatus
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id models.UserID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailInUse reports whether any user row, deleted ones included, holds email
	EmailInUse(ctx context.Context, email string) (bool, error)

	// List retrieves all users
	List(ctx context.Context, pagination utils.PaginationParams) ([]models.User, int64, error)

	Update(ctx context.Context, id models.UserID, fields map[string]interface{}) error
	Delete(ctx context.Context, id models.UserID) error
}
