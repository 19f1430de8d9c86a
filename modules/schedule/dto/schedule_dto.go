package dto

import (
	"time"

	"blend-calendar-api/core/errors"
	eventDto "blend-calendar-api/modules/event/dto"
	eventEntity "blend-calendar-api/modules/event/entity"
	"blend-calendar-api/modules/schedule/entity"
)

// ===================== Request DTOs =====================

// BlendMemberDTO binds one schedule into a blend with a display color
type BlendMemberDTO struct {
	ScheduleID string `json:"schedule_id" validate:"required"`
	Color      string `json:"color"`
}

// CreateBlendRequest for creating a blend of schedules
type CreateBlendRequest struct {
	Name    string           `json:"name" validate:"required"`
	Members []BlendMemberDTO `json:"members" validate:"required,min=1"`
}

// ===================== Response DTOs =====================

// ScheduleResponse for schedule details
type ScheduleResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BlendResponse for blend details
type BlendResponse struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	ShareCode string           `json:"share_code"`
	Members   []BlendMemberDTO `json:"members"`
	CreatedAt time.Time        `json:"created_at"`
}

// OccurrenceDTO is one concrete date-instance of an event
type OccurrenceDTO struct {
	OccurrenceDate string                  `json:"occurrence_date"`
	Event          *eventDto.EventResponse `json:"event"`
}

// ExcludedRecordDTO reports one stored record that was dropped from the view
type ExcludedRecordDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OccurrenceViewResponse is the display-ready, time-partitioned occurrence
// model: past/current/invited buckets plus current occurrences grouped by day.
// Excluded lists records the aggregator had to drop.
type OccurrenceViewResponse struct {
	Current  []OccurrenceDTO            `json:"current"`
	Past     []OccurrenceDTO            `json:"past"`
	Invited  []OccurrenceDTO            `json:"invited"`
	Excluded []ExcludedRecordDTO        `json:"excluded,omitempty"`
	ByDay    map[string][]OccurrenceDTO `json:"by_day"`
}

// ===================== Mapper Functions =====================

// ToScheduleResponse maps entity to DTO
func ToScheduleResponse(s *entity.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:        s.ID.String(),
		OwnerID:   s.OwnerID.String(),
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
	}
}

// ToBlendResponse maps entity to DTO
func ToBlendResponse(b *entity.Blend) *BlendResponse {
	resp := &BlendResponse{
		ID:        b.ID.String(),
		OwnerID:   b.OwnerID.String(),
		Name:      b.Name,
		Slug:      b.Slug,
		ShareCode: b.ShareCode,
		Members:   make([]BlendMemberDTO, 0, len(b.Members)),
		CreatedAt: b.CreatedAt,
	}
	for _, m := range b.Members {
		resp.Members = append(resp.Members, BlendMemberDTO{
			ScheduleID: m.ScheduleID.String(),
			Color:      m.Color,
		})
	}
	return resp
}

// ToOccurrenceDTO maps an occurrence to its DTO
func ToOccurrenceDTO(occ eventEntity.EventOccurrence) OccurrenceDTO {
	return OccurrenceDTO{
		OccurrenceDate: occ.OccurrenceDate.Format("2006-01-02"),
		Event:          eventDto.ToEventResponse(occ.Event),
	}
}

// ToOccurrenceDTOs maps a slice of occurrences
func ToOccurrenceDTOs(occs []eventEntity.EventOccurrence) []OccurrenceDTO {
	result := make([]OccurrenceDTO, 0, len(occs))
	for _, occ := range occs {
		result = append(result, ToOccurrenceDTO(occ))
	}
	return result
}

// ToExcludedDTOs maps exclusion errors onto the view response
func ToExcludedDTOs(excluded []*errors.AppError) []ExcludedRecordDTO {
	if len(excluded) == 0 {
		return nil
	}
	result := make([]ExcludedRecordDTO, 0, len(excluded))
	for _, e := range excluded {
		result = append(result, ExcludedRecordDTO{
			Code:    string(e.Code),
			Message: e.Message,
		})
	}
	return result
}
