package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/storage"
	"blend-calendar-api/modules/event/dto"
	"blend-calendar-api/modules/event/entity"
	"blend-calendar-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AvailabilityRecorder is the availability write path the event lifecycle
// drives. Bucket alignment on this side must match the matcher's read path.
type AvailabilityRecorder interface {
	RecordEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error
	ClearEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error
}

// InvitationCreator is the slice of the invitation module the event lifecycle
// uses: fan out invitations on create, drop pending ones on delete.
type InvitationCreator interface {
	CreateForEvent(ctx context.Context, eventID uuid.UUID, creatorID uuid.UUID, inviteeIDs []uuid.UUID, eventTitle string) error
	DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error
}

// EventService handles event business logic
type EventService struct {
	repo         repository.EventRepositoryInterface
	expander     *RecurrenceExpander
	availability AvailabilityRecorder
	invitations  InvitationCreator
	uploader     storage.Uploader
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetMyEvents(ctx context.Context, ownerID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID) *errors.AppError
	UploadEventImage(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, contentType string, body io.Reader) (*dto.UploadImageResponse, *errors.AppError)
}

// NewEventService creates a new event service
func NewEventService(
	repo repository.EventRepositoryInterface,
	availability AvailabilityRecorder,
	invitations InvitationCreator,
	uploader storage.Uploader,
) EventServiceInterface {
	return &EventService{
		repo:         repo,
		expander:     NewRecurrenceExpander(),
		availability: availability,
		invitations:  invitations,
		uploader:     uploader,
	}
}

// CreateEvent validates, persists the event, records availability buckets for
// every occurrence, and fans out invitations.
func (s *EventService) CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, errors.NewValidationError("Invalid event fields", []errors.FieldError{
			{Field: "schedule_id", Message: "schedule id must be a valid uuid"},
		})
	}

	fields, fieldErrs := validateEventFields(req)
	if fieldErrs != nil {
		return nil, errors.NewValidationError("Invalid event fields", fieldErrs)
	}

	event := &entity.Event{
		OwnerID:    ownerID,
		ScheduleID: scheduleID,
		Title:      fields.Title,
		StartDate:  fields.StartDate,
		StartTime:  fields.StartTime,
		EndTime:    fields.EndTime,
		Location: entity.Location{
			Name:      fields.Location.Name,
			Address:   fields.Location.Address,
			Latitude:  fields.Location.Latitude,
			Longitude: fields.Location.Longitude,
		},
		Color:      fields.Color,
		RepeatDays: toInt64Array(fields.RepeatDays),
		RepeatEnd:  fields.RepeatUntil,
	}
	if fields.Notes != "" {
		notes := fields.Notes
		event.Notes = &notes
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	// Invitees
	inviteeIDs := make([]uuid.UUID, 0, len(req.InvitedUsers))
	for _, idStr := range req.InvitedUsers {
		inviteeID, parseErr := uuid.Parse(idStr)
		if parseErr != nil || inviteeID == ownerID {
			continue
		}
		if err := s.repo.AddInvitee(ctx, created.ID, inviteeID); err != nil {
			continue
		}
		inviteeIDs = append(inviteeIDs, inviteeID)
	}
	created.InvitedUsers = inviteeIDs

	// Busy buckets for every occurrence this event generates.
	if err := s.recordAvailability(ctx, created); err != nil {
		logger.Error("EventService:CreateEvent:RecordAvailability", "error", err, "event_id", created.ID)
	}

	if len(inviteeIDs) > 0 {
		if err := s.invitations.CreateForEvent(ctx, created.ID, ownerID, inviteeIDs, created.Title); err != nil {
			logger.Error("EventService:CreateEvent:CreateInvitations", "error", err, "event_id", created.ID)
		}
	}

	return dto.ToEventResponse(created), nil
}

// GetEventByID retrieves an event by ID
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	invitees, _ := s.repo.GetInvitees(ctx, id)
	event.InvitedUsers = invitees
	return dto.ToEventResponse(event), nil
}

// GetMyEvents retrieves all events owned by a user
func (s *EventService) GetMyEvents(ctx context.Context, ownerID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		invitees, _ := s.repo.GetInvitees(ctx, events[i].ID)
		events[i].InvitedUsers = invitees
		result = append(result, *dto.ToEventResponse(&events[i]))
	}

	return result, nil
}

// UpdateEvent updates event fields. When the date/time shape changes, the
// event's availability buckets are cleared and re-recorded so the matcher
// never sees stale busy slots.
func (s *EventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil || event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", err)
	}

	if event.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	// Re-validate the merged fields through the create-request path so the
	// update obeys exactly the same invariants.
	merged := mergeUpdate(event, req)
	fields, fieldErrs := validateEventFields(merged)
	if fieldErrs != nil {
		return nil, errors.NewValidationError("Invalid event fields", fieldErrs)
	}

	timeShapeChanged := !fields.StartDate.Equal(event.StartDate) ||
		fields.StartTime != event.StartTime ||
		fields.EndTime != event.EndTime ||
		req.RepeatDays != nil || req.RepeatUntil != nil

	if timeShapeChanged {
		if err := s.clearAvailability(ctx, event); err != nil {
			logger.Error("EventService:UpdateEvent:ClearAvailability", "error", err, "event_id", event.ID)
		}
	}

	event.Title = fields.Title
	event.StartDate = fields.StartDate
	event.StartTime = fields.StartTime
	event.EndTime = fields.EndTime
	event.Location = entity.Location{
		Name:      fields.Location.Name,
		Address:   fields.Location.Address,
		Latitude:  fields.Location.Latitude,
		Longitude: fields.Location.Longitude,
	}
	event.Color = fields.Color
	event.RepeatDays = toInt64Array(fields.RepeatDays)
	event.RepeatEnd = fields.RepeatUntil
	if fields.Notes != "" {
		notes := fields.Notes
		event.Notes = &notes
	} else {
		event.Notes = nil
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	if timeShapeChanged {
		if err := s.recordAvailability(ctx, event); err != nil {
			logger.Error("EventService:UpdateEvent:RecordAvailability", "error", err, "event_id", event.ID)
		}
	}

	return s.GetEventByID(ctx, eventID)
}

// DeleteEvent removes the event together with its derived availability
// buckets, invitee rows, and any pending invitations referencing it. The row
// goes first: if that fails the event still exists and must keep reading as
// busy in the matcher.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID) *errors.AppError {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil || event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", err)
	}

	if event.OwnerID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}

	if err := s.clearAvailability(ctx, event); err != nil {
		logger.Error("EventService:DeleteEvent:ClearAvailability", "error", err, "event_id", event.ID)
	}

	if err := s.repo.ClearInvitees(ctx, eventID); err != nil {
		logger.Error("EventService:DeleteEvent:ClearInvitees", "error", err, "event_id", event.ID)
	}

	if err := s.invitations.DeletePendingByEventID(ctx, eventID); err != nil {
		logger.Error("EventService:DeleteEvent:DeleteInvitations", "error", err, "event_id", event.ID)
	}

	return nil
}

// UploadEventImage stores a cover image for the event and saves its URL.
func (s *EventService) UploadEventImage(ctx context.Context, eventID uuid.UUID, ownerID uuid.UUID, contentType string, body io.Reader) (*dto.UploadImageResponse, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil || event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", err)
	}
	if event.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	key := fmt.Sprintf("events/%s/cover", eventID)
	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to upload image", err)
	}

	if err := s.repo.SetImageURL(ctx, eventID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to save image URL", err)
	}

	return &dto.UploadImageResponse{URL: url}, nil
}

// ===================== helpers =====================

func (s *EventService) recordAvailability(ctx context.Context, event *entity.Event) error {
	dates := s.occurrenceDates(event)
	return s.availability.RecordEventBuckets(ctx, event.OwnerID, event.ID, dates, event.StartTime, event.EndTime)
}

func (s *EventService) clearAvailability(ctx context.Context, event *entity.Event) error {
	dates := s.occurrenceDates(event)
	return s.availability.ClearEventBuckets(ctx, event.OwnerID, event.ID, dates, event.StartTime, event.EndTime)
}

func (s *EventService) occurrenceDates(event *entity.Event) []time.Time {
	occurrences := s.expander.Expand(event, time.Time{})
	dates := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, occ.OccurrenceDate)
	}
	return dates
}

// mergeUpdate overlays a partial update onto the stored event, producing a
// full create-shaped request for validation.
func mergeUpdate(event *entity.Event, req *dto.UpdateEventRequest) *dto.CreateEventRequest {
	merged := &dto.CreateEventRequest{
		ScheduleID: event.ScheduleID.String(),
		Title:      event.Title,
		StartDate:  event.StartDate.Format(constants.DateLayout),
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		Location: dto.LocationDTO{
			Name:      event.Location.Name,
			Address:   event.Location.Address,
			Latitude:  event.Location.Latitude,
			Longitude: event.Location.Longitude,
		},
		Color: event.Color,
	}
	if event.Notes != nil {
		merged.Notes = *event.Notes
	}
	if rule := event.Recurrence(); rule != nil {
		merged.RepeatDays = rule.RepeatDays
		merged.RepeatUntil = rule.EndDate.Format(constants.DateLayout)
	}

	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.StartDate != nil {
		merged.StartDate = *req.StartDate
	}
	if req.StartTime != nil {
		merged.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		merged.EndTime = *req.EndTime
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	if req.Color != nil {
		merged.Color = *req.Color
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	if req.RepeatDays != nil {
		merged.RepeatDays = *req.RepeatDays
	}
	if req.RepeatUntil != nil {
		merged.RepeatUntil = *req.RepeatUntil
	}

	return merged
}

func toInt64Array(days []int) pq.Int64Array {
	if len(days) == 0 {
		return nil
	}
	arr := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		arr = append(arr, int64(d))
	}
	return arr
}
