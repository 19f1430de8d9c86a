package service

import (
	"context"
	"sync"
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/modules/availability/dto"
	"blend-calendar-api/modules/availability/repository"

	"github.com/google/uuid"
)

// AvailabilityService answers free/busy queries against recorded busy buckets
// and owns the bucket write path driven by the event lifecycle. Both paths
// share bucketRange so read and write alignment can never drift apart.
type AvailabilityService struct {
	repo repository.AvailabilityRepositoryInterface
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	CheckAvailability(ctx context.Context, userIDs []uuid.UUID, date time.Time, startTime, endTime int) ([]dto.UserAvailability, *errors.AppError)
	RecordEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error
	ClearEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface) AvailabilityServiceInterface {
	return &AvailabilityService{repo: repo}
}

// bucketRange normalizes the requested start down to the nearest bucket
// boundary and steps by the bucket size up to, but excluding, endTime.
func bucketRange(startTime, endTime int) []int {
	start := (startTime / constants.AvailabilityBucketSeconds) * constants.AvailabilityBucketSeconds

	var buckets []int
	for b := start; b < endTime; b += constants.AvailabilityBucketSeconds {
		buckets = append(buckets, b)
	}
	return buckets
}

// CheckAvailability performs an independent lookup per user, concurrently.
// One user's store failure is reported on that user's result only; it never
// blocks or corrupts the others. The query is read-only.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, userIDs []uuid.UUID, date time.Time, startTime, endTime int) ([]dto.UserAvailability, *errors.AppError) {
	if startTime < 0 || endTime > constants.SecondsPerDay || startTime >= endTime {
		return nil, errors.NewValidationError("Invalid time window", []errors.FieldError{
			{Field: "start_time", Message: "window must satisfy 0 <= start < end <= 86400"},
		})
	}

	buckets := bucketRange(startTime, endTime)
	results := make([]dto.UserAvailability, len(userIDs))

	var wg sync.WaitGroup
	for i, userID := range userIDs {
		wg.Add(1)
		go func(i int, userID uuid.UUID) {
			defer wg.Done()

			busy, err := s.repo.AnyBusy(ctx, userID, date, buckets)
			if err != nil {
				logger.Error("AvailabilityService:CheckAvailability:AnyBusy",
					"error", err, "user_id", userID)
				results[i] = dto.UserAvailability{
					UserID: userID.String(),
					Error:  "availability lookup failed",
				}
				return
			}

			results[i] = dto.UserAvailability{
				UserID:    userID.String(),
				Available: !busy,
			}
		}(i, userID)
	}
	wg.Wait()

	return results, nil
}

// RecordEventBuckets marks every bucket covered by the event busy, on each of
// the event's occurrence dates.
func (s *AvailabilityService) RecordEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error {
	buckets := bucketRange(startTime, endTime)
	for _, date := range dates {
		if err := s.repo.RecordBuckets(ctx, userID, date, buckets, eventID); err != nil {
			return err
		}
	}
	logger.Info("AvailabilityService:RecordEventBuckets",
		"user_id", userID, "event_id", eventID, "dates", len(dates), "buckets_per_date", len(buckets))
	return nil
}

// ClearEventBuckets removes the event's busy buckets, keeping the store
// symmetric with event deletes and time changes.
func (s *AvailabilityService) ClearEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error {
	buckets := bucketRange(startTime, endTime)
	for _, date := range dates {
		if err := s.repo.ClearBuckets(ctx, userID, date, buckets); err != nil {
			return err
		}
	}
	logger.Info("AvailabilityService:ClearEventBuckets",
		"user_id", userID, "event_id", eventID, "dates", len(dates))
	return nil
}
