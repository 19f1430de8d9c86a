package entity

import (
	"fmt"
	"time"

	"blend-calendar-api/core/constants"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Location is the structured place attached to an event.
type Location struct {
	Name      string  `db:"location_name" json:"name"`
	Address   string  `db:"location_address" json:"address"`
	Latitude  float64 `db:"location_lat" json:"latitude"`
	Longitude float64 `db:"location_lng" json:"longitude"`
}

// RecurrenceRule describes how an event repeats: a weekday mask plus an
// inclusive end date. Weekday indices follow time.Weekday (0=Sunday..6=Saturday).
type RecurrenceRule struct {
	RepeatDays []int     `json:"repeat_days"`
	EndDate    time.Time `json:"end_date"`
}

// Contains reports whether the weekday index is part of the repeat mask.
func (r *RecurrenceRule) Contains(weekday int) bool {
	for _, d := range r.RepeatDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// Event is a calendar event owned by one user and attached to one schedule.
// StartTime/EndTime are offsets in seconds since midnight; events never cross
// midnight. Recurrence is stored as repeat_days + repeat_until columns and is
// only active when both are set.
type Event struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	OwnerID    uuid.UUID     `db:"owner_id" json:"owner_id"`
	ScheduleID uuid.UUID     `db:"schedule_id" json:"schedule_id"`
	Title      string        `db:"title" json:"title"`
	StartDate  time.Time     `db:"start_date" json:"start_date"`
	StartTime  int           `db:"start_time" json:"start_time"`
	EndTime    int           `db:"end_time" json:"end_time"`
	Location   `json:"location"`
	Color      string        `db:"color" json:"color"`
	Notes      *string       `db:"notes" json:"notes,omitempty"`
	ImageURL   *string       `db:"image_url" json:"image_url,omitempty"`
	RepeatDays pq.Int64Array `db:"repeat_days" json:"repeat_days,omitempty"`
	RepeatEnd  *time.Time    `db:"repeat_until" json:"repeat_until,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`

	// InvitedUsers is loaded from the event_invitees join table, not a column.
	InvitedUsers []uuid.UUID `db:"-" json:"invited_users,omitempty"`
}

// Recurrence returns the active repeat rule, or nil when the event is
// non-recurring. Both the weekday mask and the end date must be present for
// recurrence to apply.
func (e *Event) Recurrence() *RecurrenceRule {
	if len(e.RepeatDays) == 0 || e.RepeatEnd == nil {
		return nil
	}
	days := make([]int, 0, len(e.RepeatDays))
	for _, d := range e.RepeatDays {
		days = append(days, int(d))
	}
	return &RecurrenceRule{RepeatDays: days, EndDate: *e.RepeatEnd}
}

// WellFormed reports whether a fetched record satisfies the model invariants.
// Records failing this check are treated as corrupt input and excluded from
// expansion and aggregation.
func (e *Event) WellFormed() error {
	if e.ID == uuid.Nil {
		return fmt.Errorf("event missing id")
	}
	if e.Title == "" {
		return fmt.Errorf("event %s missing title", e.ID)
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("event %s missing start date", e.ID)
	}
	if e.StartTime < 0 || e.EndTime > constants.SecondsPerDay || e.StartTime >= e.EndTime {
		return fmt.Errorf("event %s has invalid time range [%d, %d)", e.ID, e.StartTime, e.EndTime)
	}
	if rule := e.Recurrence(); rule != nil && rule.EndDate.Before(e.StartDate) {
		return fmt.Errorf("event %s repeat end precedes start date", e.ID)
	}
	return nil
}

// EventOccurrence is one concrete date-instance of a (possibly recurring)
// event. Occurrences are derived on every read and never persisted; the Event
// pointer references the originating record, it is not a copy.
type EventOccurrence struct {
	OccurrenceDate time.Time `json:"occurrence_date"`
	Event          *Event    `json:"event"`
}

// OccurrenceKey is the identity of an occurrence: same event, same date.
// Used to deduplicate when blended schedules expand the same event twice.
type OccurrenceKey struct {
	EventID uuid.UUID
	Date    string
}

// Key returns the occurrence identity.
func (o EventOccurrence) Key() OccurrenceKey {
	return OccurrenceKey{
		EventID: o.Event.ID,
		Date:    o.OccurrenceDate.Format(constants.DateLayout),
	}
}
