package service

import (
	"strings"
	"testing"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/modules/event/dto"
)

func validCreateRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:     "Dinner",
		StartDate: "2024-06-01",
		StartTime: 64800,
		EndTime:   72000,
		Location:  dto.LocationDTO{Name: "Trattoria"},
	}
}

func fieldNames(errs []errors.FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func hasField(errs []errors.FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateEventFields_Valid(t *testing.T) {
	t.Parallel()

	fields, errs := validateEventFields(validCreateRequest())
	if errs != nil {
		t.Fatalf("unexpected field errors: %v", fieldNames(errs))
	}
	if fields.Color != constants.DefaultEventColor {
		t.Fatalf("expected default color, got %q", fields.Color)
	}
	if fields.StartDate.IsZero() {
		t.Fatalf("start date not parsed")
	}
}

func TestValidateEventFields_CollectsAllFailures(t *testing.T) {
	t.Parallel()

	req := &dto.CreateEventRequest{
		StartDate: "not-a-date",
		StartTime: 7200,
		EndTime:   3600,
	}

	fields, errs := validateEventFields(req)
	if fields != nil {
		t.Fatalf("expected nil fields on validation failure")
	}
	for _, want := range []string{"title", "start_date", "end_time", "location.name"} {
		if !hasField(errs, want) {
			t.Fatalf("expected error on %q, got %v", want, fieldNames(errs))
		}
	}
}

func TestValidateEventFields_NotesTooLong(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()
	req.Notes = strings.Repeat("x", constants.MaxEventNotesLength+1)

	_, errs := validateEventFields(req)
	if !hasField(errs, "notes") {
		t.Fatalf("expected notes error, got %v", fieldNames(errs))
	}
}

func TestValidateEventFields_NotesAtLimit(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()
	req.Notes = strings.Repeat("x", constants.MaxEventNotesLength)

	_, errs := validateEventFields(req)
	if errs != nil {
		t.Fatalf("notes at the limit must pass, got %v", fieldNames(errs))
	}
}

func TestValidateEventFields_RecurrenceRequiresBothParts(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()
	req.RepeatDays = []int{1, 3}
	if _, errs := validateEventFields(req); !hasField(errs, "repeat_until") {
		t.Fatalf("days without end date must fail on repeat_until")
	}

	req = validCreateRequest()
	req.RepeatUntil = "2024-07-01"
	if _, errs := validateEventFields(req); !hasField(errs, "repeat_days") {
		t.Fatalf("end date without days must fail on repeat_days")
	}
}

func TestValidateEventFields_WeekdayIndexRange(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()
	req.RepeatDays = []int{1, 7}
	req.RepeatUntil = "2024-07-01"

	_, errs := validateEventFields(req)
	if !hasField(errs, "repeat_days") {
		t.Fatalf("weekday index 7 must fail, got %v", fieldNames(errs))
	}
}

func TestValidateEventFields_RepeatUntilBeforeStart(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()
	req.RepeatDays = []int{6}
	req.RepeatUntil = "2024-05-01"

	_, errs := validateEventFields(req)
	if !hasField(errs, "repeat_until") {
		t.Fatalf("repeat end before start must fail, got %v", fieldNames(errs))
	}
}

func TestValidateEventFields_TimeBounds(t *testing.T) {
	t.Parallel()

	req := validCreateRequest()
	req.StartTime = 0
	req.EndTime = constants.SecondsPerDay
	if _, errs := validateEventFields(req); errs != nil {
		t.Fatalf("full day event must pass, got %v", fieldNames(errs))
	}

	req = validCreateRequest()
	req.StartTime = -1
	if _, errs := validateEventFields(req); !hasField(errs, "start_time") {
		t.Fatalf("negative start time must fail")
	}

	req = validCreateRequest()
	req.EndTime = constants.SecondsPerDay + 1
	if _, errs := validateEventFields(req); !hasField(errs, "end_time") {
		t.Fatalf("end time past midnight must fail")
	}
}
