package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyCaller    = "caller"
	ContextKeyID        = "resource_id"
	ContextKeyRequestID = "request_id"

	SessionCookieName = "worklog_session"
	HeaderRequestID   = "X-Request-ID"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	MinPasswordLength = 6

	// MaxDraftHourLogs bounds how many hour logs are sent to the AI drafter.
	MaxDraftHourLogs = 200

	DefaultTokenTTL = 168 * time.Hour
)
