package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/modules/event/dto"
	"blend-calendar-api/modules/event/entity"
)

type fakeEventRepo struct {
	events    map[uuid.UUID]*entity.Event
	invitees  map[uuid.UUID][]uuid.UUID
	deleteErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:   make(map[uuid.UUID]*entity.Event),
		invitees: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	created := *event
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.events[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	copied := *ev
	return &copied, nil
}

func (f *fakeEventRepo) GetByScheduleID(ctx context.Context, scheduleID uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, ev := range f.events {
		if ev.ScheduleID == scheduleID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]entity.Event, error) {
	var out []entity.Event
	for _, ev := range f.events {
		if ev.OwnerID == ownerID {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return fmt.Errorf("not found")
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	ev, ok := f.events[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	ev.ImageURL = &url
	return nil
}

func (f *fakeEventRepo) AddInvitee(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	f.invitees[eventID] = append(f.invitees[eventID], userID)
	return nil
}

func (f *fakeEventRepo) GetInvitees(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	return f.invitees[eventID], nil
}

func (f *fakeEventRepo) ClearInvitees(ctx context.Context, eventID uuid.UUID) error {
	delete(f.invitees, eventID)
	return nil
}

type recorderCall struct {
	eventID   uuid.UUID
	dates     []time.Time
	startTime int
	endTime   int
}

type fakeRecorder struct {
	recorded []recorderCall
	cleared  []recorderCall
}

func (f *fakeRecorder) RecordEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error {
	f.recorded = append(f.recorded, recorderCall{eventID, dates, startTime, endTime})
	return nil
}

func (f *fakeRecorder) ClearEventBuckets(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, dates []time.Time, startTime, endTime int) error {
	f.cleared = append(f.cleared, recorderCall{eventID, dates, startTime, endTime})
	return nil
}

type fakeInvitations struct {
	createdFor []uuid.UUID
	deletedFor []uuid.UUID
}

func (f *fakeInvitations) CreateForEvent(ctx context.Context, eventID uuid.UUID, creatorID uuid.UUID, inviteeIDs []uuid.UUID, eventTitle string) error {
	f.createdFor = append(f.createdFor, inviteeIDs...)
	return nil
}

func (f *fakeInvitations) DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error {
	f.deletedFor = append(f.deletedFor, eventID)
	return nil
}

func newTestService() (*fakeEventRepo, *fakeRecorder, *fakeInvitations, EventServiceInterface) {
	repo := newFakeEventRepo()
	recorder := &fakeRecorder{}
	invitations := &fakeInvitations{}
	svc := NewEventService(repo, recorder, invitations, nil)
	return repo, recorder, invitations, svc
}

func createRequest(scheduleID uuid.UUID) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		ScheduleID: scheduleID.String(),
		Title:      "Team lunch",
		StartDate:  "2024-06-03",
		StartTime:  43200,
		EndTime:    46800,
		Location:   dto.LocationDTO{Name: "Cafeteria"},
	}
}

func TestCreateEvent_PersistsAndRecordsBuckets(t *testing.T) {
	t.Parallel()

	repo, recorder, _, svc := newTestService()
	owner := uuid.New()

	resp, appErr := svc.CreateEvent(context.Background(), owner, createRequest(uuid.New()))
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Color != constants.DefaultEventColor {
		t.Fatalf("expected default color, got %q", resp.Color)
	}
	if len(repo.events) != 1 {
		t.Fatalf("event not persisted")
	}

	if len(recorder.recorded) != 1 {
		t.Fatalf("expected one bucket recording, got %d", len(recorder.recorded))
	}
	call := recorder.recorded[0]
	if len(call.dates) != 1 {
		t.Fatalf("non-recurring event must record one date, got %d", len(call.dates))
	}
	if call.startTime != 43200 || call.endTime != 46800 {
		t.Fatalf("bucket window mismatch: [%d, %d)", call.startTime, call.endTime)
	}
}

func TestCreateEvent_RecurringRecordsEveryOccurrenceDate(t *testing.T) {
	t.Parallel()

	_, recorder, _, svc := newTestService()

	req := createRequest(uuid.New())
	req.RepeatDays = []int{1, 3, 5} // Mon 2024-06-03 start
	req.RepeatUntil = "2024-06-10"

	if _, appErr := svc.CreateEvent(context.Background(), uuid.New(), req); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	// 03 (Mon), 05 (Wed), 07 (Fri), 10 (Mon).
	if len(recorder.recorded[0].dates) != 4 {
		t.Fatalf("expected 4 occurrence dates, got %d", len(recorder.recorded[0].dates))
	}
}

func TestCreateEvent_InvalidFieldsNeverTouchStores(t *testing.T) {
	t.Parallel()

	repo, recorder, invitations, svc := newTestService()

	req := createRequest(uuid.New())
	req.Title = ""

	_, appErr := svc.CreateEvent(context.Background(), uuid.New(), req)
	if appErr == nil {
		t.Fatalf("expected validation error")
	}
	if appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input code, got %s", appErr.Code)
	}
	if len(appErr.Fields) == 0 {
		t.Fatalf("validation failure must carry field errors")
	}
	if len(repo.events) != 0 || len(recorder.recorded) != 0 || len(invitations.createdFor) != 0 {
		t.Fatalf("rejected create must not reach any store")
	}
}

func TestCreateEvent_FansOutInvitationsSkippingOwner(t *testing.T) {
	t.Parallel()

	_, _, invitations, svc := newTestService()
	owner := uuid.New()
	guest := uuid.New()

	req := createRequest(uuid.New())
	req.InvitedUsers = []string{owner.String(), guest.String(), "not-a-uuid"}

	if _, appErr := svc.CreateEvent(context.Background(), owner, req); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(invitations.createdFor) != 1 || invitations.createdFor[0] != guest {
		t.Fatalf("expected a single invitation for the guest, got %v", invitations.createdFor)
	}
}

func TestUpdateEvent_TimeChangeResyncsBuckets(t *testing.T) {
	t.Parallel()

	_, recorder, _, svc := newTestService()
	owner := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), owner, createRequest(uuid.New()))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	eventID := uuid.MustParse(created.ID)
	newStart := 50400
	newEnd := 54000
	_, appErr = svc.UpdateEvent(context.Background(), eventID, owner, &dto.UpdateEventRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if appErr != nil {
		t.Fatalf("update: %v", appErr)
	}

	if len(recorder.cleared) != 1 {
		t.Fatalf("expected old buckets cleared once, got %d", len(recorder.cleared))
	}
	if recorder.cleared[0].startTime != 43200 {
		t.Fatalf("clear must use the pre-update window, got %d", recorder.cleared[0].startTime)
	}
	if len(recorder.recorded) != 2 || recorder.recorded[1].startTime != newStart {
		t.Fatalf("new window not re-recorded")
	}
}

func TestUpdateEvent_TitleOnlyLeavesBucketsAlone(t *testing.T) {
	t.Parallel()

	_, recorder, _, svc := newTestService()
	owner := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), owner, createRequest(uuid.New()))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	title := "Renamed"
	if _, appErr := svc.UpdateEvent(context.Background(), uuid.MustParse(created.ID), owner, &dto.UpdateEventRequest{Title: &title}); appErr != nil {
		t.Fatalf("update: %v", appErr)
	}

	if len(recorder.cleared) != 0 || len(recorder.recorded) != 1 {
		t.Fatalf("title-only update must not touch buckets")
	}
}

func TestUpdateEvent_RejectsNonOwner(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newTestService()
	owner := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), owner, createRequest(uuid.New()))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	title := "Hijacked"
	_, appErr = svc.UpdateEvent(context.Background(), uuid.MustParse(created.ID), uuid.New(), &dto.UpdateEventRequest{Title: &title})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected forbidden, got %v", appErr)
	}
}

func TestDeleteEvent_CleansBucketsAndPendingInvitations(t *testing.T) {
	t.Parallel()

	repo, recorder, invitations, svc := newTestService()
	owner := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), owner, createRequest(uuid.New()))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	eventID := uuid.MustParse(created.ID)
	if appErr := svc.DeleteEvent(context.Background(), eventID, owner); appErr != nil {
		t.Fatalf("delete: %v", appErr)
	}

	if len(repo.events) != 0 {
		t.Fatalf("event row must be gone")
	}
	if len(recorder.cleared) != 1 {
		t.Fatalf("delete must clear availability buckets")
	}
	if len(repo.invitees[eventID]) != 0 {
		t.Fatalf("delete must clear invitee rows")
	}
	if len(invitations.deletedFor) != 1 || invitations.deletedFor[0] != eventID {
		t.Fatalf("delete must drop pending invitations")
	}
}

func TestDeleteEvent_RowFailureLeavesBucketsBusy(t *testing.T) {
	t.Parallel()

	repo, recorder, invitations, svc := newTestService()
	owner := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), owner, createRequest(uuid.New()))
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	repo.deleteErr = fmt.Errorf("connection reset")
	appErr = svc.DeleteEvent(context.Background(), uuid.MustParse(created.ID), owner)
	if appErr == nil || appErr.Code != errors.ErrDeleteFailed {
		t.Fatalf("expected delete failure, got %v", appErr)
	}

	// The event still exists, so it must still read as busy and its
	// invitations must still stand.
	if len(recorder.cleared) != 0 {
		t.Fatalf("failed delete must not clear availability buckets")
	}
	if len(invitations.deletedFor) != 0 {
		t.Fatalf("failed delete must not drop pending invitations")
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newTestService()

	appErr := svc.DeleteEvent(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected not found, got %v", appErr)
	}
}
