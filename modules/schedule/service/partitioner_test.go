package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	eventEntity "blend-calendar-api/modules/event/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func occurrence(ownerID uuid.UUID, occDate time.Time, startTime int) eventEntity.EventOccurrence {
	return eventEntity.EventOccurrence{
		OccurrenceDate: occDate,
		Event: &eventEntity.Event{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Title:     "occ",
			StartDate: occDate,
			StartTime: startTime,
			EndTime:   startTime + 1800,
		},
	}
}

func TestClassify_PastCurrentPartitionIsTotal(t *testing.T) {
	t.Parallel()

	viewer := uuid.New()
	other := uuid.New()
	p := NewOccurrencePartitioner()

	occs := []eventEntity.EventOccurrence{
		occurrence(viewer, day(2024, 1, 1), 3600),
		occurrence(viewer, day(2024, 1, 3), 3600),
		occurrence(other, day(2024, 1, 4), 7200),
		occurrence(other, day(2024, 1, 2), 3600),
		occurrence(viewer, day(2024, 1, 5), 3600),
		occurrence(other, day(2024, 1, 6), 3600),
	}

	result := p.Classify(occs, day(2024, 1, 4), viewer)

	if got := len(result.Past) + len(result.Current); got != len(occs) {
		t.Fatalf("past+current must cover every occurrence: %d vs %d", got, len(occs))
	}
	if len(result.Past) != 3 {
		t.Fatalf("expected 3 past occurrences, got %d", len(result.Past))
	}
	if len(result.Current) != 3 {
		t.Fatalf("expected 3 current occurrences, got %d", len(result.Current))
	}
	if len(result.Invited) != 3 {
		t.Fatalf("expected 3 invited occurrences, got %d", len(result.Invited))
	}
}

func TestClassify_ReferenceDayItselfIsCurrent(t *testing.T) {
	t.Parallel()

	viewer := uuid.New()
	p := NewOccurrencePartitioner()

	occs := []eventEntity.EventOccurrence{
		occurrence(viewer, day(2024, 1, 4), 3600),
	}

	// Reference with an intra-day timestamp; the boundary is the start of
	// that calendar day, so the same-day occurrence stays current.
	result := p.Classify(occs, time.Date(2024, 1, 4, 18, 45, 0, 0, time.UTC), viewer)

	if len(result.Current) != 1 || len(result.Past) != 0 {
		t.Fatalf("same-day occurrence must be current, got current=%d past=%d",
			len(result.Current), len(result.Past))
	}
}

func TestClassify_InvitedSpansPastAndCurrent(t *testing.T) {
	t.Parallel()

	viewer := uuid.New()
	other := uuid.New()
	p := NewOccurrencePartitioner()

	occs := []eventEntity.EventOccurrence{
		occurrence(other, day(2024, 1, 1), 3600), // past, invited
		occurrence(other, day(2024, 1, 9), 3600), // current, invited
		occurrence(viewer, day(2024, 1, 9), 3600),
	}

	result := p.Classify(occs, day(2024, 1, 5), viewer)
	if len(result.Invited) != 2 {
		t.Fatalf("invited must span the full set, got %d", len(result.Invited))
	}
}

func TestClassify_BucketsAreSorted(t *testing.T) {
	t.Parallel()

	viewer := uuid.New()
	p := NewOccurrencePartitioner()

	occs := []eventEntity.EventOccurrence{
		occurrence(viewer, day(2024, 2, 10), 7200),
		occurrence(viewer, day(2024, 2, 8), 3600),
		occurrence(viewer, day(2024, 2, 10), 3600),
		occurrence(viewer, day(2024, 2, 9), 3600),
	}

	result := p.Classify(occs, day(2024, 1, 1), viewer)
	for i := 1; i < len(result.Current); i++ {
		if occurrenceLess(result.Current[i], result.Current[i-1]) {
			t.Fatalf("current bucket out of order at %d", i)
		}
	}
}

func TestPartitionByDay_GroupsAndSortsWithinDay(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	p := NewOccurrencePartitioner()

	occs := []eventEntity.EventOccurrence{
		occurrence(owner, day(2024, 3, 1), 28800),
		occurrence(owner, day(2024, 3, 1), 3600),
		occurrence(owner, day(2024, 3, 2), 7200),
	}

	buckets := p.PartitionByDay(occs)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(buckets))
	}

	first := buckets["2024-03-01"]
	if len(first) != 2 {
		t.Fatalf("expected 2 occurrences on 2024-03-01, got %d", len(first))
	}
	if first[0].Event.StartTime != 3600 || first[1].Event.StartTime != 28800 {
		t.Fatalf("bucket not sorted by start time: %d, %d",
			first[0].Event.StartTime, first[1].Event.StartTime)
	}

	if _, ok := buckets["2024-03-03"]; ok {
		t.Fatalf("empty days must be absent from the map")
	}
}

func TestSortOccurrences_DateThenStartTime(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	occs := []eventEntity.EventOccurrence{
		occurrence(owner, day(2024, 4, 2), 3600),
		occurrence(owner, day(2024, 4, 1), 7200),
		occurrence(owner, day(2024, 4, 1), 3600),
	}

	SortOccurrences(occs)

	if !occs[0].OccurrenceDate.Equal(day(2024, 4, 1)) || occs[0].Event.StartTime != 3600 {
		t.Fatalf("unexpected first occurrence")
	}
	if !occs[1].OccurrenceDate.Equal(day(2024, 4, 1)) || occs[1].Event.StartTime != 7200 {
		t.Fatalf("unexpected second occurrence")
	}
	if !occs[2].OccurrenceDate.Equal(day(2024, 4, 2)) {
		t.Fatalf("unexpected third occurrence")
	}
}
