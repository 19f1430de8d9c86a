package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Timeouts
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// Token lifetimes
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Calendar model constants
const (
	// SecondsPerDay bounds event start/end times (seconds since midnight).
	SecondsPerDay = 86400

	// AvailabilityBucketSeconds is the busy-bucket granularity. The write
	// path and the read path must both align to this value or conflict
	// detection silently breaks.
	AvailabilityBucketSeconds = 900

	// MaxRecurrenceSpanDays caps how far a repeat rule may expand past its
	// series start. Rules reaching further are truncated at the cap.
	MaxRecurrenceSpanDays = 730

	// MaxEventNotesLength is enforced at create/update time.
	MaxEventNotesLength = 255

	// DefaultEventColor is used when an event carries no display tag.
	DefaultEventColor = "#4DB6AC"

	// DateLayout is the canonical day-granularity date format.
	DateLayout = "2006-01-02"
)

// Asynq task type names
const (
	TaskTypeInvitationNotify = "invitation:notify"
)
