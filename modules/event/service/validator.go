package service

import (
	"fmt"
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/modules/event/dto"
)

// eventFields is the validated, parsed form of a create/update request.
type eventFields struct {
	Title       string
	StartDate   time.Time
	StartTime   int
	EndTime     int
	Location    dto.LocationDTO
	Color       string
	Notes       string
	RepeatDays  []int
	RepeatUntil *time.Time
}

// validateEventFields checks every caller-facing invariant before anything is
// expanded or persisted, reporting failures per field so a form UI can
// highlight exactly what is wrong.
func validateEventFields(req *dto.CreateEventRequest) (*eventFields, []errors.FieldError) {
	var fieldErrs []errors.FieldError

	fields := &eventFields{
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		Color:      req.Color,
		Notes:      req.Notes,
		RepeatDays: req.RepeatDays,
	}

	if req.Title == "" {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "title", Message: "title is required"})
	}

	if req.StartDate == "" {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "start_date", Message: "start date is required"})
	} else {
		startDate, err := time.Parse(constants.DateLayout, req.StartDate)
		if err != nil {
			fieldErrs = append(fieldErrs, errors.FieldError{Field: "start_date", Message: "start date must be YYYY-MM-DD"})
		} else {
			fields.StartDate = startDate
		}
	}

	if req.StartTime < 0 || req.StartTime >= constants.SecondsPerDay {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "start_time", Message: "start time must be within a single day"})
	}
	if req.EndTime <= req.StartTime || req.EndTime > constants.SecondsPerDay {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "end_time", Message: "end time must be after start time and within a single day"})
	}

	if req.Location.Name == "" {
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "location.name", Message: "location name is required"})
	}

	if len(req.Notes) > constants.MaxEventNotesLength {
		fieldErrs = append(fieldErrs, errors.FieldError{
			Field:   "notes",
			Message: fmt.Sprintf("notes must be at most %d characters", constants.MaxEventNotesLength),
		})
	}

	if fields.Color == "" {
		fields.Color = constants.DefaultEventColor
	}

	// Recurrence: weekday mask and end date must be set together.
	hasDays := len(req.RepeatDays) > 0
	hasUntil := req.RepeatUntil != ""
	switch {
	case hasDays && !hasUntil:
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "repeat_until", Message: "repeat end date is required when repeat days are set"})
	case !hasDays && hasUntil:
		fieldErrs = append(fieldErrs, errors.FieldError{Field: "repeat_days", Message: "repeat days are required when a repeat end date is set"})
	case hasDays && hasUntil:
		for _, d := range req.RepeatDays {
			if d < 0 || d > 6 {
				fieldErrs = append(fieldErrs, errors.FieldError{Field: "repeat_days", Message: "weekday indices must be 0 (Sunday) through 6 (Saturday)"})
				break
			}
		}
		until, err := time.Parse(constants.DateLayout, req.RepeatUntil)
		if err != nil {
			fieldErrs = append(fieldErrs, errors.FieldError{Field: "repeat_until", Message: "repeat end date must be YYYY-MM-DD"})
		} else {
			if !fields.StartDate.IsZero() && until.Before(fields.StartDate) {
				fieldErrs = append(fieldErrs, errors.FieldError{Field: "repeat_until", Message: "repeat end date must not precede the start date"})
			}
			fields.RepeatUntil = &until
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return fields, nil
}
