package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/tasks"
	"blend-calendar-api/modules/invitation/dto"
	"blend-calendar-api/modules/invitation/entity"
	"blend-calendar-api/modules/invitation/repository"
)

type InvitationServiceInterface interface {
	CreateForEvent(ctx context.Context, eventID, creatorID uuid.UUID, inviteeIDs []uuid.UUID, eventTitle string) error
	DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error
	GetPendingInvitations(ctx context.Context, inviteeID uuid.UUID) (*dto.PendingInvitationsResponse, *errors.AppError)
	AcceptInvitation(ctx context.Context, invitationID, userID uuid.UUID) (*dto.InvitationResponse, *errors.AppError)
	DeclineInvitation(ctx context.Context, invitationID, userID uuid.UUID) (*dto.InvitationResponse, *errors.AppError)
}

type InvitationService struct {
	repo       repository.InvitationRepositoryInterface
	taskClient *asynq.Client
}

func NewInvitationService(repo repository.InvitationRepositoryInterface, taskClient *asynq.Client) *InvitationService {
	return &InvitationService{
		repo:       repo,
		taskClient: taskClient,
	}
}

// CreateForEvent creates one pending invitation per invitee and enqueues a
// notification task for each. A failure on one invitee does not stop the
// others, and the event create that triggered this never sees an error.
func (s *InvitationService) CreateForEvent(ctx context.Context, eventID, creatorID uuid.UUID, inviteeIDs []uuid.UUID, eventTitle string) error {
	for _, inviteeID := range inviteeIDs {
		if inviteeID == creatorID {
			continue
		}

		created, err := s.repo.Create(ctx, &entity.EventInvitation{
			EventID:    eventID,
			CreatorID:  creatorID,
			InviteeID:  inviteeID,
			Status:     entity.InvitationStatusPending,
			EventTitle: eventTitle,
		})
		if err != nil {
			logger.Error("InvitationService:CreateForEvent", "error", err, "event_id", eventID, "invitee_id", inviteeID)
			continue
		}

		task, err := tasks.NewInvitationNotifyTask(tasks.InvitationNotifyPayload{
			InvitationID: created.ID,
			InviteeID:    created.InviteeID,
			EventTitle:   created.EventTitle,
		})
		if err != nil {
			logger.Error("InvitationService:CreateForEvent:Task", "error", err, "invitation_id", created.ID)
			continue
		}
		tasks.Enqueue(s.taskClient, task)
	}
	return nil
}

func (s *InvitationService) DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error {
	return s.repo.DeletePendingByEventID(ctx, eventID)
}

func (s *InvitationService) GetPendingInvitations(ctx context.Context, inviteeID uuid.UUID) (*dto.PendingInvitationsResponse, *errors.AppError) {
	invitations, err := s.repo.GetPendingByInviteeID(ctx, inviteeID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch pending invitations", err)
	}

	responses := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		responses = append(responses, *dto.ToInvitationResponse(&invitations[i]))
	}

	return &dto.PendingInvitationsResponse{
		Invitations: responses,
		Count:       len(responses),
	}, nil
}

func (s *InvitationService) AcceptInvitation(ctx context.Context, invitationID, userID uuid.UUID) (*dto.InvitationResponse, *errors.AppError) {
	return s.respond(ctx, invitationID, userID, entity.InvitationStatusAccepted)
}

func (s *InvitationService) DeclineInvitation(ctx context.Context, invitationID, userID uuid.UUID) (*dto.InvitationResponse, *errors.AppError) {
	return s.respond(ctx, invitationID, userID, entity.InvitationStatusDeclined)
}

func (s *InvitationService) respond(ctx context.Context, invitationID, userID uuid.UUID, status entity.InvitationStatus) (*dto.InvitationResponse, *errors.AppError) {
	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch invitation", err)
	}
	if invitation == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invitation not found", nil)
	}
	if invitation.InviteeID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Invitation belongs to another user", nil)
	}
	if invitation.Status != entity.InvitationStatusPending {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invitation has already been responded to", nil)
	}

	respondedAt := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, invitationID, status, respondedAt); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update invitation", err)
	}

	invitation.Status = status
	invitation.RespondedAt = &respondedAt

	return dto.ToInvitationResponse(invitation), nil
}
