package constants

// Session/context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "projecthub_session"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination defaults for table views
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Display fallbacks for dangling references
const (
	UnknownProjectName = "—"
	UnassignedName     = "unassigned"
)
