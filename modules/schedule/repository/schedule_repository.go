package repository

import (
	"context"
	"database/sql"

	"blend-calendar-api/core/database"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/modules/schedule/entity"

	"github.com/google/uuid"
)

// ScheduleRepository handles schedule and blend database operations
type ScheduleRepository struct {
	DB database.IDatabase
}

// NewScheduleRepository creates a new repository instance
func NewScheduleRepository(db database.IDatabase) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// ScheduleRepositoryInterface defines the repository contract
type ScheduleRepositoryInterface interface {
	CreateSchedule(ctx context.Context, schedule *entity.Schedule) (*entity.Schedule, error)
	GetScheduleByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	GetSchedulesByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Schedule, error)

	CreateBlend(ctx context.Context, blend *entity.Blend) (*entity.Blend, error)
	GetBlendByID(ctx context.Context, id uuid.UUID) (*entity.Blend, error)
	GetBlendsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Blend, error)
	DeleteBlend(ctx context.Context, id uuid.UUID) error
}

// ===================== Schedules =====================

func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *entity.Schedule) (*entity.Schedule, error) {
	query := `
		INSERT INTO schedules (owner_id, name)
		VALUES ($1, $2)
		RETURNING id, owner_id, name, created_at, updated_at
	`

	var created entity.Schedule
	err := r.DB.GetContext(ctx, &created, query, schedule.OwnerID, schedule.Name)
	if err != nil {
		logger.Error("ScheduleRepository:CreateSchedule", err)
		return nil, err
	}

	return &created, nil
}

func (r *ScheduleRepository) GetScheduleByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `SELECT id, owner_id, name, created_at, updated_at FROM schedules WHERE id = $1`

	var schedule entity.Schedule
	err := r.DB.GetContext(ctx, &schedule, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetScheduleByID", err)
		return nil, err
	}

	return &schedule, nil
}

func (r *ScheduleRepository) GetSchedulesByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Schedule, error) {
	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM schedules
		WHERE owner_id = $1
		ORDER BY created_at
	`

	var schedules []entity.Schedule
	err := r.DB.SelectContext(ctx, &schedules, query, ownerID)
	if err != nil {
		logger.Error("ScheduleRepository:GetSchedulesByOwnerID", err)
		return nil, err
	}

	return schedules, nil
}

// ===================== Blends =====================

func (r *ScheduleRepository) CreateBlend(ctx context.Context, blend *entity.Blend) (*entity.Blend, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("ScheduleRepository:CreateBlend:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO blends (owner_id, name, slug, share_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, name, slug, share_code, created_at, updated_at
	`

	var created entity.Blend
	if err := tx.GetContext(ctx, &created, query, blend.OwnerID, blend.Name, blend.Slug, blend.ShareCode); err != nil {
		logger.Error("ScheduleRepository:CreateBlend", err)
		return nil, err
	}

	memberQuery := `INSERT INTO blend_members (blend_id, schedule_id, color) VALUES ($1, $2, $3)`
	for _, m := range blend.Members {
		if _, err := tx.ExecContext(ctx, memberQuery, created.ID, m.ScheduleID, m.Color); err != nil {
			logger.Error("ScheduleRepository:CreateBlend:Member", err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("ScheduleRepository:CreateBlend:Commit", err)
		return nil, err
	}

	return r.GetBlendByID(ctx, created.ID)
}

func (r *ScheduleRepository) GetBlendByID(ctx context.Context, id uuid.UUID) (*entity.Blend, error) {
	query := `SELECT id, owner_id, name, slug, share_code, created_at, updated_at FROM blends WHERE id = $1`

	var blend entity.Blend
	err := r.DB.GetContext(ctx, &blend, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:GetBlendByID", err)
		return nil, err
	}

	memberQuery := `
		SELECT blend_id, schedule_id, color, created_at
		FROM blend_members
		WHERE blend_id = $1
		ORDER BY created_at
	`
	if err := r.DB.SelectContext(ctx, &blend.Members, memberQuery, id); err != nil {
		logger.Error("ScheduleRepository:GetBlendByID:Members", err)
		return nil, err
	}

	return &blend, nil
}

func (r *ScheduleRepository) GetBlendsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Blend, error) {
	query := `
		SELECT id, owner_id, name, slug, share_code, created_at, updated_at
		FROM blends
		WHERE owner_id = $1
		ORDER BY created_at
	`

	var blends []entity.Blend
	err := r.DB.SelectContext(ctx, &blends, query, ownerID)
	if err != nil {
		logger.Error("ScheduleRepository:GetBlendsByOwnerID", err)
		return nil, err
	}

	memberQuery := `
		SELECT blend_id, schedule_id, color, created_at
		FROM blend_members
		WHERE blend_id = $1
		ORDER BY created_at
	`
	for i := range blends {
		if err := r.DB.SelectContext(ctx, &blends[i].Members, memberQuery, blends[i].ID); err != nil {
			logger.Error("ScheduleRepository:GetBlendsByOwnerID:Members", err)
			return nil, err
		}
	}

	return blends, nil
}

func (r *ScheduleRepository) DeleteBlend(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blends WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("ScheduleRepository:DeleteBlend", err)
		return err
	}
	return nil
}
