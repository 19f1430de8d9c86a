package service

import (
	"sort"
	"time"

	eventEntity "blend-calendar-api/modules/event/entity"

	"github.com/google/uuid"
)

// ClassifiedOccurrences splits an occurrence set relative to a reference day
// and viewer. Past and Current partition the full set; Invited is the
// independent subset of occurrences whose event the viewer does not own.
type ClassifiedOccurrences struct {
	Current []eventEntity.EventOccurrence
	Past    []eventEntity.EventOccurrence
	Invited []eventEntity.EventOccurrence
}

// OccurrencePartitioner handles classification and day-bucketing of expanded
// occurrences. All outputs are computed fresh on every call; nothing here is
// incrementally patched, so derived views can never drift from the source
// events after an edit.
type OccurrencePartitioner struct{}

// NewOccurrencePartitioner creates a new partitioner
func NewOccurrencePartitioner() *OccurrencePartitioner {
	return &OccurrencePartitioner{}
}

// occurrenceLess is the single chronological comparator applied everywhere
// occurrences are surfaced: ascending by occurrence date, then by the event's
// start time within the same date.
func occurrenceLess(a, b eventEntity.EventOccurrence) bool {
	if !a.OccurrenceDate.Equal(b.OccurrenceDate) {
		return a.OccurrenceDate.Before(b.OccurrenceDate)
	}
	return a.Event.StartTime < b.Event.StartTime
}

// SortOccurrences orders occurrences with the shared comparator, in place.
func SortOccurrences(occurrences []eventEntity.EventOccurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrenceLess(occurrences[i], occurrences[j])
	})
}

// Classify buckets occurrences into past/current relative to the start of
// referenceDate's calendar day, and collects the invited subset over the full
// set. Every bucket comes back sorted.
func (p *OccurrencePartitioner) Classify(
	occurrences []eventEntity.EventOccurrence,
	referenceDate time.Time,
	viewerID uuid.UUID,
) ClassifiedOccurrences {

	dayBoundary := dayStartOf(referenceDate)

	result := ClassifiedOccurrences{
		Current: []eventEntity.EventOccurrence{},
		Past:    []eventEntity.EventOccurrence{},
		Invited: []eventEntity.EventOccurrence{},
	}

	for _, occ := range occurrences {
		if occ.OccurrenceDate.Before(dayBoundary) {
			result.Past = append(result.Past, occ)
		} else {
			result.Current = append(result.Current, occ)
		}

		// Invited is evaluated over the full set, independent of the
		// past/current split.
		if occ.Event.OwnerID != viewerID {
			result.Invited = append(result.Invited, occ)
		}
	}

	SortOccurrences(result.Current)
	SortOccurrences(result.Past)
	SortOccurrences(result.Invited)

	return result
}

// PartitionByDay groups occurrences into day-keyed buckets, each bucket
// sorted by event start time. Days with no occurrences are simply absent.
// Keys use the YYYY-MM-DD day form.
func (p *OccurrencePartitioner) PartitionByDay(occurrences []eventEntity.EventOccurrence) map[string][]eventEntity.EventOccurrence {
	buckets := make(map[string][]eventEntity.EventOccurrence)

	for _, occ := range occurrences {
		key := occ.OccurrenceDate.Format("2006-01-02")
		buckets[key] = append(buckets[key], occ)
	}

	for key := range buckets {
		bucket := buckets[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Event.StartTime < bucket[j].Event.StartTime
		})
		buckets[key] = bucket
	}

	return buckets
}

func dayStartOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
