package dto

import (
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/modules/event/entity"
)

// ===================== Request DTOs =====================

// LocationDTO carries the structured place for an event
type LocationDTO struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateEventRequest for creating a new event
type CreateEventRequest struct {
	ScheduleID   string      `json:"schedule_id" validate:"required"`
	Title        string      `json:"title" validate:"required"`
	StartDate    string      `json:"start_date" validate:"required"` // YYYY-MM-DD
	StartTime    int         `json:"start_time"`                     // seconds since midnight
	EndTime      int         `json:"end_time"`
	Location     LocationDTO `json:"location"`
	Color        string      `json:"color"`
	Notes        string      `json:"notes"`
	InvitedUsers []string    `json:"invited_users"` // user_ids
	RepeatDays   []int       `json:"repeat_days"`   // 0=Sunday..6=Saturday
	RepeatUntil  string      `json:"repeat_until"`  // YYYY-MM-DD, inclusive
}

// UpdateEventRequest for updating event details. Nil pointers leave the
// corresponding field untouched.
type UpdateEventRequest struct {
	Title       *string      `json:"title"`
	StartDate   *string      `json:"start_date"`
	StartTime   *int         `json:"start_time"`
	EndTime     *int         `json:"end_time"`
	Location    *LocationDTO `json:"location"`
	Color       *string      `json:"color"`
	Notes       *string      `json:"notes"`
	RepeatDays  *[]int       `json:"repeat_days"`
	RepeatUntil *string      `json:"repeat_until"`
}

// ===================== Response DTOs =====================

// EventResponse for event details
type EventResponse struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"owner_id"`
	ScheduleID   string      `json:"schedule_id"`
	Title        string      `json:"title"`
	StartDate    string      `json:"start_date"`
	StartTime    int         `json:"start_time"`
	EndTime      int         `json:"end_time"`
	Location     LocationDTO `json:"location"`
	Color        string      `json:"color"`
	Notes        string      `json:"notes,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	InvitedUsers []string    `json:"invited_users"`
	RepeatDays   []int       `json:"repeat_days,omitempty"`
	RepeatUntil  string      `json:"repeat_until,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// UploadImageResponse for the event image upload endpoint
type UploadImageResponse struct {
	URL string `json:"url"`
}

// ===================== Mapper Functions =====================

// ToEventResponse maps entity to DTO
func ToEventResponse(e *entity.Event) *EventResponse {
	resp := &EventResponse{
		ID:         e.ID.String(),
		OwnerID:    e.OwnerID.String(),
		ScheduleID: e.ScheduleID.String(),
		Title:      e.Title,
		StartDate:  e.StartDate.Format(constants.DateLayout),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Location: LocationDTO{
			Name:      e.Location.Name,
			Address:   e.Location.Address,
			Latitude:  e.Location.Latitude,
			Longitude: e.Location.Longitude,
		},
		Color:        e.Color,
		InvitedUsers: make([]string, 0, len(e.InvitedUsers)),
		CreatedAt:    e.CreatedAt,
	}

	if e.Notes != nil {
		resp.Notes = *e.Notes
	}
	if e.ImageURL != nil {
		resp.ImageURL = *e.ImageURL
	}
	for _, id := range e.InvitedUsers {
		resp.InvitedUsers = append(resp.InvitedUsers, id.String())
	}
	if rule := e.Recurrence(); rule != nil {
		resp.RepeatDays = rule.RepeatDays
		resp.RepeatUntil = rule.EndDate.Format(constants.DateLayout)
	}

	return resp
}
