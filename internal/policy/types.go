package policy

import (
	"time"

	"github.com/yukikurage/worklog-api/internal/models"
)

// Kind is the resource kind a request targets.
type Kind string

const (
	KindTask    Kind = "task"
	KindHourLog Kind = "hourlog"
	KindReport  Kind = "report"
	KindUser    Kind = "user"
)

// Operation is what the caller wants to do with the resource.
type Operation string

const (
	OpList       Operation = "list_all"
	OpRead       Operation = "read"
	OpUpdate     Operation = "update"
	OpChangeRole Operation = "change_role"
	OpDelete     Operation = "delete"
	OpSubmit     Operation = "submit"
)

// Caller is the authenticated identity attached by the auth middleware.
type Caller struct {
	ID   models.UserID
	Role models.Role
}

// Resource describes the record being accessed. Owner is ignored for
// KindUser, where the record is the user itself.
type Resource struct {
	Kind  Kind
	ID    uint64
	Owner models.UserID
}

// Context carries request facts the policies need beyond identity.
type Context struct {
	// StatusOnly is true when the update body contains no field other than status.
	StatusOnly bool
	// StatusChanged is true when the requested status differs from the stored one.
	StatusChanged bool
}

// Request is a single authorization question.
type Request struct {
	Caller    Caller
	Operation Operation
	Resource  Resource
	Context   Context
}

// ReasonType classifies a decision so callers can map it to an error.
type ReasonType string

const (
	ReasonAllowed       ReasonType = "allowed"
	ReasonPolicyDenied  ReasonType = "policy_denied"
	ReasonStatusOnly    ReasonType = "status_only"
	ReasonSelfDeletion  ReasonType = "self_deletion"
	ReasonUnknownAction ReasonType = "unknown_action"
)

// Decision is the outcome of Engine.Decide.
type Decision struct {
	Allowed  bool
	Reason   ReasonType
	Message  string
	PolicyID string
	Duration time.Duration
}
