package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// EventInvitation links an invitee to an event. Pending invitations are
// deleted together with their event.
type EventInvitation struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	EventID     uuid.UUID        `db:"event_id" json:"event_id"`
	CreatorID   uuid.UUID        `db:"creator_id" json:"creator_id"`
	InviteeID   uuid.UUID        `db:"invitee_id" json:"invitee_id"`
	Status      InvitationStatus `db:"status" json:"status"`
	EventTitle  string           `db:"event_title" json:"event_title"`
	RespondedAt *time.Time       `db:"responded_at" json:"responded_at"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}
