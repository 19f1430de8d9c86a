package repository

import (
	"context"
	"fmt"
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityRepository stores busy buckets in redis. One key per 15-minute
// bucket, keyed avail:{userID}:{date}_{bucketStart}, value = owning event ID.
// Bucket lifecycle follows the owning event: recorded on create, cleared on
// delete and on time changes.
type AvailabilityRepository struct {
	rdb *redis.Client
}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository(rdb *redis.Client) *AvailabilityRepository {
	return &AvailabilityRepository{rdb: rdb}
}

// AvailabilityRepositoryInterface defines the bucket store contract
type AvailabilityRepositoryInterface interface {
	RecordBuckets(ctx context.Context, userID uuid.UUID, date time.Time, buckets []int, eventID uuid.UUID) error
	ClearBuckets(ctx context.Context, userID uuid.UUID, date time.Time, buckets []int) error
	AnyBusy(ctx context.Context, userID uuid.UUID, date time.Time, buckets []int) (bool, error)
}

func bucketKey(userID uuid.UUID, date time.Time, bucket int) string {
	return fmt.Sprintf("avail:%s:%s_%d", userID, date.Format(constants.DateLayout), bucket)
}

func (r *AvailabilityRepository) RecordBuckets(ctx context.Context, userID uuid.UUID, date time.Time, buckets []int, eventID uuid.UUID) error {
	if len(buckets) == 0 {
		return nil
	}

	pipe := r.rdb.Pipeline()
	for _, b := range buckets {
		pipe.Set(ctx, bucketKey(userID, date, b), eventID.String(), 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("AvailabilityRepository:RecordBuckets", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) ClearBuckets(ctx context.Context, userID uuid.UUID, date time.Time, buckets []int) error {
	if len(buckets) == 0 {
		return nil
	}

	keys := make([]string, 0, len(buckets))
	for _, b := range buckets {
		keys = append(keys, bucketKey(userID, date, b))
	}

	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Error("AvailabilityRepository:ClearBuckets", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) AnyBusy(ctx context.Context, userID uuid.UUID, date time.Time, buckets []int) (bool, error) {
	if len(buckets) == 0 {
		return false, nil
	}

	keys := make([]string, 0, len(buckets))
	for _, b := range buckets {
		keys = append(keys, bucketKey(userID, date, b))
	}

	count, err := r.rdb.Exists(ctx, keys...).Result()
	if err != nil {
		logger.Error("AvailabilityRepository:AnyBusy", err)
		return false, err
	}

	return count > 0, nil
}
