package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"blend-calendar-api/modules/event/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseEvent(startDate time.Time) *entity.Event {
	return &entity.Event{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		ScheduleID: uuid.New(),
		Title:      "Climbing",
		StartDate:  startDate,
		StartTime:  3600,
		EndTime:    7200,
	}
}

func recurring(startDate time.Time, days []int64, until time.Time) *entity.Event {
	e := baseEvent(startDate)
	e.RepeatDays = pq.Int64Array(days)
	e.RepeatEnd = &until
	return e
}

func TestExpand_NonRecurringYieldsSingleOccurrence(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	ev := baseEvent(date(2024, 1, 15))

	occs := ex.Expand(ev, time.Time{})
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if !occs[0].OccurrenceDate.Equal(date(2024, 1, 15)) {
		t.Fatalf("unexpected occurrence date: %v", occs[0].OccurrenceDate)
	}
	if occs[0].Event != ev {
		t.Fatalf("occurrence must reference the originating event")
	}
}

func TestExpand_NonRecurringNormalizesToMidnightUTC(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	ev := baseEvent(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC))

	occs := ex.Expand(ev, time.Time{})
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if !occs[0].OccurrenceDate.Equal(date(2024, 1, 15)) {
		t.Fatalf("expected midnight UTC, got %v", occs[0].OccurrenceDate)
	}
}

func TestExpand_WeekdayMaskFiltersDates(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	// 2024-01-01 is a Monday. Mon/Wed/Fri over 2024-01-01..2024-01-08
	// inclusive lands on 01 (Mon), 03 (Wed), 05 (Fri), 08 (Mon).
	ev := recurring(date(2024, 1, 1), []int64{1, 3, 5}, date(2024, 1, 8))

	occs := ex.Expand(ev, time.Time{})
	want := []time.Time{
		date(2024, 1, 1),
		date(2024, 1, 3),
		date(2024, 1, 5),
		date(2024, 1, 8),
	}
	if len(occs) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(occs))
	}
	for i, w := range want {
		if !occs[i].OccurrenceDate.Equal(w) {
			t.Fatalf("occurrence %d: expected %v, got %v", i, w, occs[i].OccurrenceDate)
		}
	}
}

func TestExpand_DailyOverTwoWeeks(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	allDays := []int64{0, 1, 2, 3, 4, 5, 6}
	ev := recurring(date(2024, 3, 1), allDays, date(2024, 3, 14))

	occs := ex.Expand(ev, time.Time{})
	if len(occs) != 14 {
		t.Fatalf("expected 14 occurrences, got %d", len(occs))
	}
}

func TestExpand_EndBeforeStartYieldsEmpty(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	ev := recurring(date(2024, 5, 10), []int64{1}, date(2024, 5, 1))

	occs := ex.Expand(ev, time.Time{})
	if occs == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(occs) != 0 {
		t.Fatalf("expected 0 occurrences, got %d", len(occs))
	}
}

func TestExpand_NoMatchingWeekdayYieldsEmpty(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	// 2024-01-01 (Mon) through 2024-01-05 (Fri) contains no Sunday.
	ev := recurring(date(2024, 1, 1), []int64{0}, date(2024, 1, 5))

	occs := ex.Expand(ev, time.Time{})
	if len(occs) != 0 {
		t.Fatalf("expected 0 occurrences, got %d", len(occs))
	}
}

func TestExpand_WindowEndTightensRuleEnd(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	allDays := []int64{0, 1, 2, 3, 4, 5, 6}
	ev := recurring(date(2024, 1, 1), allDays, date(2024, 12, 31))

	occs := ex.Expand(ev, date(2024, 1, 7))
	if len(occs) != 7 {
		t.Fatalf("expected 7 occurrences, got %d", len(occs))
	}
	last := occs[len(occs)-1].OccurrenceDate
	if !last.Equal(date(2024, 1, 7)) {
		t.Fatalf("expected last occurrence on window end, got %v", last)
	}
}

func TestExpand_HorizonTruncation(t *testing.T) {
	t.Parallel()

	ex := &RecurrenceExpander{MaxSpanDays: 7}
	allDays := []int64{0, 1, 2, 3, 4, 5, 6}
	ev := recurring(date(2024, 1, 1), allDays, date(2025, 1, 1))

	occs := ex.Expand(ev, time.Time{})
	// Cap at start+7 days, inclusive loop over 8 calendar days.
	if len(occs) != 8 {
		t.Fatalf("expected 8 occurrences under the cap, got %d", len(occs))
	}
	last := occs[len(occs)-1].OccurrenceDate
	if !last.Equal(date(2024, 1, 8)) {
		t.Fatalf("expected truncation at %v, got %v", date(2024, 1, 8), last)
	}
}

func TestExpand_IsPure(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	ev := recurring(date(2024, 1, 1), []int64{1, 3, 5}, date(2024, 1, 31))

	first := ex.Expand(ev, time.Time{})
	second := ex.Expand(ev, time.Time{})

	if len(first) != len(second) {
		t.Fatalf("expansion not stable: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].OccurrenceDate.Equal(second[i].OccurrenceDate) {
			t.Fatalf("occurrence %d differs between expansions", i)
		}
	}
}

func TestExpand_OutputIsAscending(t *testing.T) {
	t.Parallel()

	ex := NewRecurrenceExpander()
	ev := recurring(date(2024, 2, 1), []int64{2, 4, 6}, date(2024, 3, 15))

	occs := ex.Expand(ev, time.Time{})
	if len(occs) == 0 {
		t.Fatalf("expected occurrences")
	}
	for i := 1; i < len(occs); i++ {
		if !occs[i-1].OccurrenceDate.Before(occs[i].OccurrenceDate) {
			t.Fatalf("occurrences out of order at %d", i)
		}
	}
}
