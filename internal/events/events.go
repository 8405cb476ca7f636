// Package events publishes report workflow events so other systems can
// follow reports through draft, submitted, approved and rejected.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/worklog-api/internal/models"
)

type Type string

const (
	ReportCreated       Type = "report.created"
	ReportSubmitted     Type = "report.submitted"
	ReportStatusChanged Type = "report.status_changed"
)

// ReportEvent is the message body published for every workflow step.
type ReportEvent struct {
	ID             string              `json:"id"`
	Type           Type                `json:"type"`
	ReportID       uint64              `json:"report_id"`
	OwnerID        models.UserID       `json:"owner_id"`
	ActorID        models.UserID       `json:"actor_id"`
	Status         models.ReportStatus `json:"status"`
	PreviousStatus models.ReportStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time           `json:"occurred_at"`
}

// NewReportEvent builds an event for report as it is after the change.
func NewReportEvent(t Type, report *models.Report, actor models.UserID, previous models.ReportStatus) ReportEvent {
	return ReportEvent{
		ID:             uuid.NewString(),
		Type:           t,
		ReportID:       report.ID,
		OwnerID:        report.OwnerID,
		ActorID:        actor,
		Status:         report.Status,
		PreviousStatus: previous,
		OccurredAt:     time.Now().UTC(),
	}
}

// Publisher delivers report events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, event ReportEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReportEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
