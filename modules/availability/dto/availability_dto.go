package dto

// CheckAvailabilityRequest asks whether each user is free in a time window.
type CheckAvailabilityRequest struct {
	UserIDs   []string `json:"user_ids" validate:"required"`
	Date      string   `json:"date" validate:"required"` // YYYY-MM-DD
	StartTime int      `json:"start_time"`               // seconds since midnight
	EndTime   int      `json:"end_time"`
}

// UserAvailability is the per-user outcome. A lookup failure is reported on
// that user only and never blocks the rest of the batch.
type UserAvailability struct {
	UserID    string `json:"user_id"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// CheckAvailabilityResponse wraps one result per requested user.
type CheckAvailabilityResponse struct {
	Results []UserAvailability `json:"results"`
}
