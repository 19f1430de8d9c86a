package service

import (
	"context"
	"encoding/json"

	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/tasks"

	"github.com/hibiken/asynq"
)

// InvitationNotifyHandler processes invitation notification tasks by writing
// an in-app notification row for the invitee.
type InvitationNotifyHandler struct {
	notifications *NotificationService
}

func NewInvitationNotifyHandler(notifications *NotificationService) *InvitationNotifyHandler {
	return &InvitationNotifyHandler{notifications: notifications}
}

func (h *InvitationNotifyHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload tasks.InvitationNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("InvitationNotifyHandler:Unmarshal", err)
		return err
	}

	err := h.notifications.NotifyInvitation(ctx, payload.InvitationID, payload.InviteeID, payload.EventTitle)
	if err != nil {
		logger.Error("InvitationNotifyHandler:Notify", "error", err, "invitation_id", payload.InvitationID)
		return err
	}

	logger.Info("InvitationNotifyHandler:Done", "invitation_id", payload.InvitationID, "invitee_id", payload.InviteeID)
	return nil
}
