package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/worklog-api/internal/policy"
)

var (
	ErrNotAuthorized       = errors.New("not authorized")
	ErrOnlyStatusUpdatable = errors.New("only status can be updated by managers/admins")
	ErrCannotDeleteSelf    = errors.New("cannot delete yourself")
	ErrMissingFields       = errors.New("required fields are missing")
)

// FieldError reports a field whose value is present but unusable.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Authorizer decides whether a caller may perform an operation.
// *policy.Engine satisfies it.
type Authorizer interface {
	Decide(ctx context.Context, req policy.Request) policy.Decision
}

// authorize turns a denied decision into the matching service error.
func authorize(ctx context.Context, authz Authorizer, req policy.Request) error {
	decision := authz.Decide(ctx, req)
	if decision.Allowed {
		return nil
	}

	switch decision.Reason {
	case policy.ReasonStatusOnly:
		return ErrOnlyStatusUpdatable
	case policy.ReasonSelfDeletion:
		return ErrCannotDeleteSelf
	default:
		return ErrNotAuthorized
	}
}

func allowed(ctx context.Context, authz Authorizer, req policy.Request) bool {
	return authz.Decide(ctx, req).Allowed
}
