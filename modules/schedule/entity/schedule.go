package entity

import (
	"time"

	"github.com/google/uuid"
)

// Schedule owns the events of a single user, ordered by creation.
type Schedule struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BlendMember binds one schedule into a blend with its display color.
type BlendMember struct {
	BlendID    uuid.UUID `db:"blend_id" json:"blend_id"`
	ScheduleID uuid.UUID `db:"schedule_id" json:"schedule_id"`
	Color      string    `db:"color" json:"color"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Blend is a virtual schedule merging several users' schedules for combined
// viewing. It owns no events of its own, only member references. ShareCode
// and Slug exist for shareable links.
type Blend struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	ShareCode string    `db:"share_code" json:"share_code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Members is loaded from the blend_members join table.
	Members []BlendMember `db:"-" json:"members,omitempty"`
}

// ScheduleIDs returns the member schedule identifiers.
func (b *Blend) ScheduleIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Members))
	for _, m := range b.Members {
		ids = append(ids, m.ScheduleID)
	}
	return ids
}
