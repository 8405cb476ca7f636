package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yukikurage/worklog-api/internal/constants"
	"github.com/yukikurage/worklog-api/internal/events"
	"github.com/yukikurage/worklog-api/internal/models"
	"github.com/yukikurage/worklog-api/internal/policy"
	"github.com/yukikurage/worklog-api/internal/repository"
	"github.com/yukikurage/worklog-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound         = errors.New("report not found")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrNoHourLogsInRange      = errors.New("no hour logs in the requested range")
)

// ReportDrafter writes report text from a set of hour logs.
type ReportDrafter interface {
	DraftReport(ctx context.Context, logs []models.HourLog) (*GeneratedReport, error)
}

// ReportService handles report business logic and the report workflow
type ReportService struct {
	reportRepo  repository.ReportRepository
	hourLogRepo repository.HourLogRepository
	authz       Authorizer
	publisher   events.Publisher
	drafter     ReportDrafter
	logger      *slog.Logger
	now         func() time.Time
}

// NewReportService creates a new ReportService. A nil drafter disables
// DraftReport; a nil publisher drops workflow events.
func NewReportService(
	reportRepo repository.ReportRepository,
	hourLogRepo repository.HourLogRepository,
	authz Authorizer,
	publisher events.Publisher,
	drafter ReportDrafter,
	logger *slog.Logger,
) *ReportService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		reportRepo:  reportRepo,
		hourLogRepo: hourLogRepo,
		authz:       authz,
		publisher:   publisher,
		drafter:     drafter,
		logger:      logger,
		now:         time.Now,
	}
}

// ListReportsInput represents filters for listing reports
type ListReportsInput struct {
	Status     *models.ReportStatus
	Pagination utils.PaginationParams
}

// CreateReportInput represents input for creating a report
type CreateReportInput struct {
	Title   string
	Content string
	Status  models.ReportStatus
}

// DraftReportInput selects the hour logs a drafted report is written from
type DraftReportInput struct {
	Title string
	Start *time.Time
	End   *time.Time
}

// ListReports returns the caller's reports, or every report when the
// caller may list all of them.
func (s *ReportService) ListReports(ctx context.Context, caller policy.Caller, input ListReportsInput) ([]models.Report, int64, error) {
	filter := repository.ReportFilter{
		Status:     input.Status,
		Pagination: input.Pagination,
	}

	if !allowed(ctx, s.authz, policy.Request{
		Caller:    caller,
		Operation: policy.OpList,
		Resource:  policy.Resource{Kind: policy.KindReport},
	}) {
		owner := caller.ID
		filter.OwnerID = &owner
	}

	reports, total, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

// GetReport returns a report the caller may read
func (s *ReportService) GetReport(ctx context.Context, caller policy.Caller, id uint64) (*models.Report, error) {
	return s.load(ctx, caller, id, policy.OpRead, policy.Context{})
}

// CreateReport stores a report owned by the caller, defaulting to draft
func (s *ReportService) CreateReport(ctx context.Context, caller policy.Caller, input CreateReportInput) (*models.Report, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}

	status := input.Status
	if status == "" {
		status = models.ReportStatusDraft
	} else if !status.Valid() {
		return nil, &FieldError{Field: "status", Reason: "unknown value"}
	}

	report := &models.Report{
		Title:   title,
		Content: content,
		Status:  status,
		OwnerID: caller.ID,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.publish(ctx, events.NewReportEvent(events.ReportCreated, report, caller.ID, ""))

	return s.find(ctx, report.ID)
}

// UpdateReport merges the patch into a report. Owners may change any
// field. A manager or admin who does not own the report may only change
// its status, and only to a different value.
func (s *ReportService) UpdateReport(ctx context.Context, caller policy.Caller, id uint64, patch Patch) (*models.Report, error) {
	report, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	status, hasStatus := patch.String("status")
	facts := policy.Context{
		StatusOnly:    patch.Only("status"),
		StatusChanged: hasStatus && models.ReportStatus(status).Valid() && models.ReportStatus(status) != report.Status,
	}

	if err := s.authorize(ctx, caller, report, policy.OpUpdate, facts); err != nil {
		return nil, err
	}

	updates, err := patch.columns(reportPatchFields)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return report, nil
	}

	if err := s.reportRepo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Status != report.Status {
		s.publish(ctx, events.NewReportEvent(events.ReportStatusChanged, updated, caller.ID, report.Status))
	}

	return updated, nil
}

// SubmitReport moves an owned report to submitted and stamps SubmittedAt.
// Resubmitting restamps it.
func (s *ReportService) SubmitReport(ctx context.Context, caller policy.Caller, id uint64) (*models.Report, error) {
	report, err := s.load(ctx, caller, id, policy.OpSubmit, policy.Context{})
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.Update(ctx, id, map[string]interface{}{
		"status":       models.ReportStatusSubmitted,
		"submitted_at": s.now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to submit report: %w", err)
	}

	submitted, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewReportEvent(events.ReportSubmitted, submitted, caller.ID, report.Status))

	return submitted, nil
}

// DeleteReport removes a report owned by the caller
func (s *ReportService) DeleteReport(ctx context.Context, caller policy.Caller, id uint64) error {
	if _, err := s.load(ctx, caller, id, policy.OpDelete, policy.Context{}); err != nil {
		return err
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}

// DraftReport writes a draft report for the caller from their hour logs in
// the inclusive range [Start, End].
func (s *ReportService) DraftReport(ctx context.Context, caller policy.Caller, input DraftReportInput) (*models.Report, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if input.Start == nil || input.End == nil {
		return nil, ErrDateRangeRequired
	}
	if input.End.Before(*input.Start) {
		return nil, ErrInvalidDateRange
	}

	logs, _, err := s.hourLogRepo.List(ctx, repository.HourLogFilter{
		OwnerID:    caller.ID,
		From:       input.Start,
		To:         input.End,
		Pagination: utils.PaginationParams{Page: 1, Limit: constants.MaxDraftHourLogs},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list hour logs: %w", err)
	}
	if len(logs) == 0 {
		return nil, ErrNoHourLogsInRange
	}

	generated, err := s.drafter.DraftReport(ctx, logs)
	if err != nil {
		return nil, fmt.Errorf("failed to draft report: %w", err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = generated.Title
	}
	if title == "" {
		title = fmt.Sprintf("Work report %s to %s",
			input.Start.Format(time.DateOnly), input.End.Format(time.DateOnly))
	}

	return s.CreateReport(ctx, caller, CreateReportInput{
		Title:   title,
		Content: generated.Content,
		Status:  models.ReportStatusDraft,
	})
}

func (s *ReportService) publish(ctx context.Context, event events.ReportEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish report event",
			"type", event.Type,
			"report_id", event.ReportID,
			"error", err,
		)
	}
}

func (s *ReportService) find(ctx context.Context, id uint64) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

func (s *ReportService) authorize(ctx context.Context, caller policy.Caller, report *models.Report, op policy.Operation, facts policy.Context) error {
	return authorize(ctx, s.authz, policy.Request{
		Caller:    caller,
		Operation: op,
		Resource:  policy.Resource{Kind: policy.KindReport, ID: report.ID, Owner: report.OwnerID},
		Context:   facts,
	})
}

func (s *ReportService) load(ctx context.Context, caller policy.Caller, id uint64, op policy.Operation, facts policy.Context) (*models.Report, error) {
	report, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, caller, report, op, facts); err != nil {
		return nil, err
	}
	return report, nil
}
