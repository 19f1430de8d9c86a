package dto

import (
	"time"

	"github.com/google/uuid"

	"blend-calendar-api/modules/invitation/entity"
)

type InvitationResponse struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	InviteeID   uuid.UUID  `json:"invitee_id"`
	Status      string     `json:"status"`
	EventTitle  string     `json:"event_title"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PendingInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Count       int                  `json:"count"`
}

func ToInvitationResponse(invitation *entity.EventInvitation) *InvitationResponse {
	return &InvitationResponse{
		ID:          invitation.ID,
		EventID:     invitation.EventID,
		CreatorID:   invitation.CreatorID,
		InviteeID:   invitation.InviteeID,
		Status:      string(invitation.Status),
		EventTitle:  invitation.EventTitle,
		RespondedAt: invitation.RespondedAt,
		CreatedAt:   invitation.CreatedAt,
	}
}
