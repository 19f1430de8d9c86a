package repository

import (
	"context"
	"database/sql"

	"blend-calendar-api/core/database"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/modules/event/entity"

	"github.com/google/uuid"
)

const eventColumns = `
	id, owner_id, schedule_id, title, start_date, start_time, end_time,
	location_name, location_address, location_lat, location_lng,
	color, notes, image_url, repeat_days, repeat_until, created_at, updated_at
`

// EventRepository handles event database operations
type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.Event, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetImageURL(ctx context.Context, id uuid.UUID, url string) error

	// Invitees (event_invitees join table)
	AddInvitee(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	GetInvitees(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
	ClearInvitees(ctx context.Context, eventID uuid.UUID) error
}

// ===================== Event CRUD =====================

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (owner_id, schedule_id, title, start_date, start_time, end_time,
		                    location_name, location_address, location_lat, location_lng,
		                    color, notes, repeat_days, repeat_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.OwnerID, event.ScheduleID, event.Title, event.StartDate,
		event.StartTime, event.EndTime,
		event.Location.Name, event.Location.Address, event.Location.Latitude, event.Location.Longitude,
		event.Color, event.Notes, event.RepeatDays, event.RepeatEnd)

	if err != nil {
		logger.Error("EventRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE schedule_id = $1
		ORDER BY created_at
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, scheduleID)
	if err != nil {
		logger.Error("EventRepository:GetByScheduleID", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, ownerID)
	if err != nil {
		logger.Error("EventRepository:GetByOwnerID", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, start_date = $3, start_time = $4, end_time = $5,
		    location_name = $6, location_address = $7, location_lat = $8, location_lng = $9,
		    color = $10, notes = $11, repeat_days = $12, repeat_until = $13, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.StartDate, event.StartTime, event.EndTime,
		event.Location.Name, event.Location.Address, event.Location.Latitude, event.Location.Longitude,
		event.Color, event.Notes, event.RepeatDays, event.RepeatEnd)

	if err != nil {
		logger.Error("EventRepository:Update", err)
		return err
	}

	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:Delete", err)
		return err
	}
	return nil
}

func (r *EventRepository) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE events SET image_url = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, url)
	if err != nil {
		logger.Error("EventRepository:SetImageURL", err)
		return err
	}
	return nil
}

// ===================== Invitees (event_invitees) =====================

func (r *EventRepository) AddInvitee(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	query := `
		INSERT INTO event_invitees (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		logger.Error("EventRepository:AddInvitee", err)
		return err
	}

	return nil
}

func (r *EventRepository) GetInvitees(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM event_invitees WHERE event_id = $1 ORDER BY created_at`

	var userIDs []uuid.UUID
	err := r.DB.SelectContext(ctx, &userIDs, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetInvitees", err)
		return nil, err
	}

	return userIDs, nil
}

func (r *EventRepository) ClearInvitees(ctx context.Context, eventID uuid.UUID) error {
	query := `DELETE FROM event_invitees WHERE event_id = $1`
	err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		logger.Error("EventRepository:ClearInvitees", err)
		return err
	}
	return nil
}
