package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/utils"
	eventEntity "blend-calendar-api/modules/event/entity"
	eventService "blend-calendar-api/modules/event/service"
	"blend-calendar-api/modules/schedule/dto"
	"blend-calendar-api/modules/schedule/entity"
	"blend-calendar-api/modules/schedule/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// EventSource is the slice of the event module the aggregator consumes.
type EventSource interface {
	GetByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]eventEntity.Event, error)
}

// AggregateResult carries the merged occurrence stream together with the
// typed exclusion errors for every corrupt record that was dropped, so a
// caller can always tell a clean batch from a filtered one.
type AggregateResult struct {
	Occurrences []eventEntity.EventOccurrence
	Excluded    []*errors.AppError
}

// ScheduleService composes schedules and blends into unified occurrence
// streams and produces the classified, day-partitioned view model.
type ScheduleService struct {
	repo        repository.ScheduleRepositoryInterface
	events      EventSource
	expander    *eventService.RecurrenceExpander
	partitioner *OccurrencePartitioner
}

// ScheduleServiceInterface defines the service contract
type ScheduleServiceInterface interface {
	GetMySchedules(ctx context.Context, ownerID uuid.UUID) ([]dto.ScheduleResponse, *errors.AppError)
	Aggregate(ctx context.Context, scheduleIDs []uuid.UUID, windowEnd time.Time) (*AggregateResult, *errors.AppError)
	GetScheduleOccurrences(ctx context.Context, scheduleID uuid.UUID, viewerID uuid.UUID, referenceDate time.Time, windowEnd time.Time) (*dto.OccurrenceViewResponse, *errors.AppError)
	GetBlendOccurrences(ctx context.Context, blendID uuid.UUID, viewerID uuid.UUID, referenceDate time.Time, windowEnd time.Time) (*dto.OccurrenceViewResponse, *errors.AppError)

	CreateBlend(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBlendRequest) (*dto.BlendResponse, *errors.AppError)
	GetBlendByID(ctx context.Context, id uuid.UUID) (*dto.BlendResponse, *errors.AppError)
	GetMyBlends(ctx context.Context, ownerID uuid.UUID) ([]dto.BlendResponse, *errors.AppError)
	DeleteBlend(ctx context.Context, blendID uuid.UUID, ownerID uuid.UUID) *errors.AppError
}

// NewScheduleService creates a new schedule service
func NewScheduleService(repo repository.ScheduleRepositoryInterface, events EventSource) ScheduleServiceInterface {
	return &ScheduleService{
		repo:        repo,
		events:      events,
		expander:    eventService.NewRecurrenceExpander(),
		partitioner: NewOccurrencePartitioner(),
	}
}

// GetMySchedules lists the caller's schedules
func (s *ScheduleService) GetMySchedules(ctx context.Context, ownerID uuid.UUID) ([]dto.ScheduleResponse, *errors.AppError) {
	schedules, err := s.repo.GetSchedulesByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get schedules", err)
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *dto.ToScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// Aggregate fetches events across the given schedules concurrently, expands
// each into occurrences, deduplicates by occurrence identity, and returns the
// merged stream in chronological order. Classification is always a separate,
// subsequent step. Any fetch failure fails the whole aggregate; corrupt event
// records are excluded individually and each exclusion is reported back on
// the result as a typed error instead of crashing the batch.
func (s *ScheduleService) Aggregate(ctx context.Context, scheduleIDs []uuid.UUID, windowEnd time.Time) (*AggregateResult, *errors.AppError) {
	type fetchResult struct {
		events []eventEntity.Event
		err    error
	}

	results := make([]fetchResult, len(scheduleIDs))

	var wg sync.WaitGroup
	for i, scheduleID := range scheduleIDs {
		wg.Add(1)
		go func(i int, scheduleID uuid.UUID) {
			defer wg.Done()
			events, err := s.events.GetByScheduleID(ctx, scheduleID)
			results[i] = fetchResult{events: events, err: err}
		}(i, scheduleID)
	}
	wg.Wait()

	var failed int
	for i := range results {
		if results[i].err != nil {
			failed++
			logger.Error("ScheduleService:Aggregate:Fetch",
				"error", results[i].err, "schedule_id", scheduleIDs[i])
		}
	}
	if failed > 0 {
		return nil, errors.NewAppError(errors.ErrGetFailed,
			fmt.Sprintf("Failed to fetch events for %d of %d schedules", failed, len(scheduleIDs)), nil)
	}

	seen := make(map[eventEntity.OccurrenceKey]struct{})
	result := &AggregateResult{Occurrences: []eventEntity.EventOccurrence{}}

	for i := range results {
		events := results[i].events
		for j := range events {
			event := &events[j]
			if err := event.WellFormed(); err != nil {
				logger.Warn("ScheduleService:Aggregate:CorruptRecord", "error", err, "event_id", event.ID)
				result.Excluded = append(result.Excluded, errors.NewAppError(errors.ErrCorruptRecord,
					fmt.Sprintf("Event %s excluded from results", event.ID), err))
				continue
			}

			for _, occ := range s.expander.Expand(event, windowEnd) {
				key := occ.Key()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				result.Occurrences = append(result.Occurrences, occ)
			}
		}
	}

	SortOccurrences(result.Occurrences)
	return result, nil
}

// GetScheduleOccurrences runs the full pipeline for one schedule: aggregate,
// classify against the reference day, and partition the current bucket by day.
func (s *ScheduleService) GetScheduleOccurrences(ctx context.Context, scheduleID uuid.UUID, viewerID uuid.UUID, referenceDate time.Time, windowEnd time.Time) (*dto.OccurrenceViewResponse, *errors.AppError) {
	schedule, err := s.repo.GetScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get schedule", err)
	}
	if schedule == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Schedule not found", nil)
	}

	return s.buildView(ctx, []uuid.UUID{scheduleID}, viewerID, referenceDate, windowEnd)
}

// GetBlendOccurrences runs the same pipeline over a blend's member schedules.
func (s *ScheduleService) GetBlendOccurrences(ctx context.Context, blendID uuid.UUID, viewerID uuid.UUID, referenceDate time.Time, windowEnd time.Time) (*dto.OccurrenceViewResponse, *errors.AppError) {
	blend, err := s.repo.GetBlendByID(ctx, blendID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get blend", err)
	}
	if blend == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Blend not found", nil)
	}

	return s.buildView(ctx, blend.ScheduleIDs(), viewerID, referenceDate, windowEnd)
}

func (s *ScheduleService) buildView(ctx context.Context, scheduleIDs []uuid.UUID, viewerID uuid.UUID, referenceDate time.Time, windowEnd time.Time) (*dto.OccurrenceViewResponse, *errors.AppError) {
	aggregated, appErr := s.Aggregate(ctx, scheduleIDs, windowEnd)
	if appErr != nil {
		return nil, appErr
	}

	classified := s.partitioner.Classify(aggregated.Occurrences, referenceDate, viewerID)
	byDay := s.partitioner.PartitionByDay(classified.Current)

	resp := &dto.OccurrenceViewResponse{
		Current:  dto.ToOccurrenceDTOs(classified.Current),
		Past:     dto.ToOccurrenceDTOs(classified.Past),
		Invited:  dto.ToOccurrenceDTOs(classified.Invited),
		Excluded: dto.ToExcludedDTOs(aggregated.Excluded),
		ByDay:    make(map[string][]dto.OccurrenceDTO, len(byDay)),
	}
	for day, occs := range byDay {
		resp.ByDay[day] = dto.ToOccurrenceDTOs(occs)
	}

	return resp, nil
}

// ===================== Blends =====================

// CreateBlend creates a blend over explicitly named member schedules. Every
// member schedule must resolve; membership is never inferred from "first
// schedule" style defaults.
func (s *ScheduleService) CreateBlend(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBlendRequest) (*dto.BlendResponse, *errors.AppError) {
	if req.Name == "" {
		return nil, errors.NewValidationError("Invalid blend fields", []errors.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}
	if len(req.Members) == 0 {
		return nil, errors.NewValidationError("Invalid blend fields", []errors.FieldError{
			{Field: "members", Message: "at least one member schedule is required"},
		})
	}

	members := make([]entity.BlendMember, 0, len(req.Members))
	for _, m := range req.Members {
		scheduleID, err := uuid.Parse(m.ScheduleID)
		if err != nil {
			return nil, errors.NewValidationError("Invalid blend fields", []errors.FieldError{
				{Field: "members.schedule_id", Message: "schedule id must be a valid uuid"},
			})
		}

		schedule, err := s.repo.GetScheduleByID(ctx, scheduleID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to resolve member schedule", err)
		}
		if schedule == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Member schedule not found: "+m.ScheduleID, nil)
		}

		color := m.Color
		if color == "" {
			color = constants.DefaultEventColor
		}
		members = append(members, entity.BlendMember{ScheduleID: scheduleID, Color: color})
	}

	blend := &entity.Blend{
		OwnerID:   ownerID,
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		ShareCode: utils.GenerateID(),
		Members:   members,
	}

	created, err := s.repo.CreateBlend(ctx, blend)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create blend", err)
	}

	return dto.ToBlendResponse(created), nil
}

// GetBlendByID retrieves a blend by ID
func (s *ScheduleService) GetBlendByID(ctx context.Context, id uuid.UUID) (*dto.BlendResponse, *errors.AppError) {
	blend, err := s.repo.GetBlendByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get blend", err)
	}
	if blend == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Blend not found", nil)
	}
	return dto.ToBlendResponse(blend), nil
}

// GetMyBlends lists the caller's blends
func (s *ScheduleService) GetMyBlends(ctx context.Context, ownerID uuid.UUID) ([]dto.BlendResponse, *errors.AppError) {
	blends, err := s.repo.GetBlendsByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get blends", err)
	}

	result := make([]dto.BlendResponse, 0, len(blends))
	for i := range blends {
		result = append(result, *dto.ToBlendResponse(&blends[i]))
	}
	return result, nil
}

// DeleteBlend removes a blend. Member schedules and their events are untouched.
func (s *ScheduleService) DeleteBlend(ctx context.Context, blendID uuid.UUID, ownerID uuid.UUID) *errors.AppError {
	blend, err := s.repo.GetBlendByID(ctx, blendID)
	if err != nil || blend == nil {
		return errors.NewAppError(errors.ErrNotFound, "Blend not found", err)
	}

	if blend.OwnerID != ownerID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.repo.DeleteBlend(ctx, blendID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete blend", err)
	}

	return nil
}
