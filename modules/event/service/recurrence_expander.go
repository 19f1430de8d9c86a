package service

import (
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/modules/event/entity"
)

// RecurrenceExpander handles the algorithm that turns a base event into its
// concrete date-stamped occurrences.
type RecurrenceExpander struct {
	// MaxSpanDays caps how far past the series start a rule may expand.
	MaxSpanDays int
}

// NewRecurrenceExpander creates an expander with the default horizon cap.
func NewRecurrenceExpander() *RecurrenceExpander {
	return &RecurrenceExpander{
		MaxSpanDays: constants.MaxRecurrenceSpanDays,
	}
}

// Expand produces the ordered occurrences of an event. A zero windowEnd means
// no window bound beyond the rule's own end date.
//
// Non-recurring events (no repeat mask, or no end date) yield exactly one
// occurrence on the start date. Recurring events yield one occurrence for
// every calendar day between the start date and the rule end date (inclusive)
// whose weekday is in the repeat mask. Output is ascending by date by
// construction; Expand is a pure function of its inputs.
func (re *RecurrenceExpander) Expand(event *entity.Event, windowEnd time.Time) []entity.EventOccurrence {
	rule := event.Recurrence()
	if rule == nil {
		return []entity.EventOccurrence{{
			OccurrenceDate: dayStart(event.StartDate),
			Event:          event,
		}}
	}

	start := dayStart(event.StartDate)
	end := dayStart(rule.EndDate)

	if !windowEnd.IsZero() {
		if w := dayStart(windowEnd); w.Before(end) {
			end = w
		}
	}

	// A repeat mask with no matching weekday in range legally yields zero
	// occurrences; an end before the start yields the same.
	if end.Before(start) {
		return []entity.EventOccurrence{}
	}

	if horizon := start.AddDate(0, 0, re.MaxSpanDays); end.After(horizon) {
		logger.Warn("RecurrenceExpander:Expand:Truncated",
			"event_id", event.ID,
			"rule_end", end.Format(constants.DateLayout),
			"cap_days", re.MaxSpanDays)
		end = horizon
	}

	occurrences := []entity.EventOccurrence{}
	maxSteps := re.MaxSpanDays + 1

	cursor := start
	for steps := 0; !cursor.After(end); steps++ {
		// The step guard keeps the loop finite even if date arithmetic
		// ever stops advancing the cursor.
		if steps >= maxSteps {
			logger.Error("RecurrenceExpander:Expand:StepGuard", "event_id", event.ID)
			break
		}

		if rule.Contains(int(cursor.Weekday())) {
			occurrences = append(occurrences, entity.EventOccurrence{
				OccurrenceDate: cursor,
				Event:          event,
			})
		}

		next := cursor.AddDate(0, 0, 1)
		if !next.After(cursor) {
			logger.Error("RecurrenceExpander:Expand:CursorStalled", "event_id", event.ID)
			break
		}
		cursor = next
	}

	return occurrences
}

// dayStart normalizes a timestamp to midnight UTC, the canonical form for
// day-granularity dates throughout the occurrence model.
func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
