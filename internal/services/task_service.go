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

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	authz    Authorizer
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, authz Authorizer) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		authz:    authz,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// ListTasks returns the caller's own tasks. Tasks have no elevated listing.
func (s *TaskService) ListTasks(ctx context.Context, caller policy.Caller, input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{
		OwnerID:    caller.ID,
		Status:     input.Status,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task the caller may read
func (s *TaskService) GetTask(ctx context.Context, caller policy.Caller, id uint64) (*models.Task, error) {
	return s.load(ctx, caller, id, policy.OpRead)
}

// CreateTask validates input, applies defaults and stores a task owned by the caller
func (s *TaskService) CreateTask(ctx context.Context, caller policy.Caller, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || input.DueDate == nil {
		return nil, ErrMissingFields
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	} else if !status.Valid() {
		return nil, &FieldError{Field: "status", Reason: "unknown value"}
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	} else if !priority.Valid() {
		return nil, &FieldError{Field: "priority", Reason: "unknown value"}
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     *input.DueDate,
		OwnerID:     caller.ID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask merges the patch into a task owned by the caller
func (s *TaskService) UpdateTask(ctx context.Context, caller policy.Caller, id uint64, patch Patch) (*models.Task, error) {
	task, err := s.load(ctx, caller, id, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	updates, err := patch.columns(taskPatchFields)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return task, nil
	}

	if err := s.taskRepo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.find(ctx, id)
}

// DeleteTask removes a task owned by the caller
func (s *TaskService) DeleteTask(ctx context.Context, caller policy.Caller, id uint64) error {
	if _, err := s.load(ctx, caller, id, policy.OpDelete); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) find(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) load(ctx context.Context, caller policy.Caller, id uint64, op policy.Operation) (*models.Task, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(ctx, s.authz, policy.Request{
		Caller:    caller,
		Operation: op,
		Resource:  policy.Resource{Kind: policy.KindTask, ID: task.ID, Owner: task.OwnerID},
	}); err != nil {
		return nil, err
	}

	return task, nil
}
