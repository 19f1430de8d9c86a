package service

import (
	"context"
	"fmt"
	"time"

	coreEntity "blend-calendar-api/core/entity"
	"blend-calendar-api/core/params"
	"blend-calendar-api/modules/notification/dto"
	"blend-calendar-api/modules/notification/entity"
	"blend-calendar-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) error
	GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.repo.Create(ctx, notif)
}

// NotifyInvitation creates an in-app notification for a newly created
// invitation. Called from the task worker, not the request path.
func (s *NotificationService) NotifyInvitation(ctx context.Context, invitationID, inviteeID uuid.UUID, eventTitle string) error {
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  inviteeID,
		Title:   "New event invitation",
		Message: fmt.Sprintf("You have been invited to %q", eventTitle),
		Type:    entity.NotificationTypeInvitation,
		Data: map[string]interface{}{
			"invitation_id": invitationID.String(),
		},
	})
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
