package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"blend-calendar-api/core/database"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/modules/invitation/entity"
)

type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *entity.EventInvitation) (*entity.EventInvitation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EventInvitation, error)
	GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.EventInvitation, error)
	CountPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InvitationStatus, respondedAt time.Time) error
	DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error
}

type InvitationRepository struct {
	db database.IDatabase
}

func NewInvitationRepository(db database.IDatabase) *InvitationRepository {
	return &InvitationRepository{db: db}
}

const invitationColumns = `id, event_id, creator_id, invitee_id, status, event_title, responded_at, created_at, updated_at`

// ===================== Create =====================

func (r *InvitationRepository) Create(ctx context.Context, invitation *entity.EventInvitation) (*entity.EventInvitation, error) {
	query := `
		INSERT INTO event_invitations (event_id, creator_id, invitee_id, status, event_title)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + invitationColumns

	var created entity.EventInvitation
	err := r.db.GetContext(ctx, &created, query,
		invitation.EventID,
		invitation.CreatorID,
		invitation.InviteeID,
		invitation.Status,
		invitation.EventTitle,
	)
	if err != nil {
		logger.Error("InvitationRepo:Create", err)
		return nil, err
	}

	return &created, nil
}

// ===================== Read =====================

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EventInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM event_invitations WHERE id = $1`

	var invitation entity.EventInvitation
	err := r.db.GetContext(ctx, &invitation, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("InvitationRepo:GetByID", err)
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.EventInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM event_invitations
		WHERE invitee_id = $1 AND status = $2
		ORDER BY created_at DESC`

	invitations := []entity.EventInvitation{}
	err := r.db.SelectContext(ctx, &invitations, query, inviteeID, entity.InvitationStatusPending)
	if err != nil {
		logger.Error("InvitationRepo:GetPendingByInviteeID", err)
		return nil, err
	}

	return invitations, nil
}

func (r *InvitationRepository) CountPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM event_invitations WHERE invitee_id = $1 AND status = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, inviteeID, entity.InvitationStatusPending)
	if err != nil {
		logger.Error("InvitationRepo:CountPendingByInviteeID", err)
		return 0, err
	}

	return count, nil
}

// ===================== Update =====================

func (r *InvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InvitationStatus, respondedAt time.Time) error {
	query := `
		UPDATE event_invitations
		SET status = $1, responded_at = $2, updated_at = NOW()
		WHERE id = $3`

	err := r.db.ExecContext(ctx, query, status, respondedAt, id)
	if err != nil {
		logger.Error("InvitationRepo:UpdateStatus", err)
		return err
	}

	return nil
}

// ===================== Delete =====================

func (r *InvitationRepository) DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error {
	query := `DELETE FROM event_invitations WHERE event_id = $1 AND status = $2`

	err := r.db.ExecContext(ctx, query, eventID, entity.InvitationStatusPending)
	if err != nil {
		logger.Error("InvitationRepo:DeletePendingByEventID", err)
		return err
	}

	return nil
}
