package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"blend-calendar-api/core/errors"
	"blend-calendar-api/modules/invitation/entity"
)

type fakeInvitationRepo struct {
	invitations  map[uuid.UUID]*entity.EventInvitation
	failCreate   map[uuid.UUID]bool // keyed by invitee
	createdOrder []uuid.UUID
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{
		invitations: make(map[uuid.UUID]*entity.EventInvitation),
		failCreate:  make(map[uuid.UUID]bool),
	}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, invitation *entity.EventInvitation) (*entity.EventInvitation, error) {
	if f.failCreate[invitation.InviteeID] {
		return nil, fmt.Errorf("insert failed")
	}
	created := *invitation
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.invitations[created.ID] = &created
	f.createdOrder = append(f.createdOrder, created.InviteeID)
	return &created, nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.EventInvitation, error) {
	inv, ok := f.invitations[id]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvitationRepo) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.EventInvitation, error) {
	var out []entity.EventInvitation
	for _, inv := range f.invitations {
		if inv.InviteeID == inviteeID && inv.Status == entity.InvitationStatusPending {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) CountPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) (int, error) {
	items, _ := f.GetPendingByInviteeID(ctx, inviteeID)
	return len(items), nil
}

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InvitationStatus, respondedAt time.Time) error {
	inv, ok := f.invitations[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	inv.Status = status
	inv.RespondedAt = &respondedAt
	return nil
}

func (f *fakeInvitationRepo) DeletePendingByEventID(ctx context.Context, eventID uuid.UUID) error {
	for id, inv := range f.invitations {
		if inv.EventID == eventID && inv.Status == entity.InvitationStatusPending {
			delete(f.invitations, id)
		}
	}
	return nil
}

func TestCreateForEvent_SkipsCreator(t *testing.T) {
	t.Parallel()

	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, nil)

	creator := uuid.New()
	invitee := uuid.New()

	if err := svc.CreateForEvent(context.Background(), uuid.New(), creator, []uuid.UUID{creator, invitee}, "BBQ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.invitations) != 1 {
		t.Fatalf("expected 1 invitation, got %d", len(repo.invitations))
	}
	for _, inv := range repo.invitations {
		if inv.InviteeID != invitee {
			t.Fatalf("invitation created for the wrong user")
		}
		if inv.Status != entity.InvitationStatusPending {
			t.Fatalf("new invitations must start pending")
		}
	}
}

func TestCreateForEvent_ContinuesPastPerInviteeFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, nil)

	creator := uuid.New()
	broken := uuid.New()
	healthy := uuid.New()
	repo.failCreate[broken] = true

	if err := svc.CreateForEvent(context.Background(), uuid.New(), creator, []uuid.UUID{broken, healthy}, "Hike"); err != nil {
		t.Fatalf("per-invitee failure must not surface: %v", err)
	}

	if len(repo.createdOrder) != 1 || repo.createdOrder[0] != healthy {
		t.Fatalf("healthy invitee must still get an invitation")
	}
}

func TestRespond_AcceptTransitionsAndStamps(t *testing.T) {
	t.Parallel()

	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, nil)

	invitee := uuid.New()
	created, _ := repo.Create(context.Background(), &entity.EventInvitation{
		EventID:    uuid.New(),
		CreatorID:  uuid.New(),
		InviteeID:  invitee,
		Status:     entity.InvitationStatusPending,
		EventTitle: "Dinner",
	})

	resp, appErr := svc.AcceptInvitation(context.Background(), created.ID, invitee)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Status != string(entity.InvitationStatusAccepted) {
		t.Fatalf("status not transitioned: %s", resp.Status)
	}
	if resp.RespondedAt == nil {
		t.Fatalf("accept must stamp responded_at")
	}
}

func TestRespond_RejectsWrongInvitee(t *testing.T) {
	t.Parallel()

	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, nil)

	created, _ := repo.Create(context.Background(), &entity.EventInvitation{
		EventID:   uuid.New(),
		CreatorID: uuid.New(),
		InviteeID: uuid.New(),
		Status:    entity.InvitationStatusPending,
	})

	_, appErr := svc.DeclineInvitation(context.Background(), created.ID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected forbidden, got %v", appErr)
	}
}

func TestRespond_RejectsAlreadyResponded(t *testing.T) {
	t.Parallel()

	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, nil)

	invitee := uuid.New()
	created, _ := repo.Create(context.Background(), &entity.EventInvitation{
		EventID:   uuid.New(),
		CreatorID: uuid.New(),
		InviteeID: invitee,
		Status:    entity.InvitationStatusPending,
	})

	if _, appErr := svc.AcceptInvitation(context.Background(), created.ID, invitee); appErr != nil {
		t.Fatalf("first accept failed: %v", appErr)
	}
	if _, appErr := svc.DeclineInvitation(context.Background(), created.ID, invitee); appErr == nil {
		t.Fatalf("second response must be rejected")
	}
}

func TestRespond_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewInvitationService(newFakeInvitationRepo(), nil)

	_, appErr := svc.AcceptInvitation(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected not found, got %v", appErr)
	}
}

func TestDeletePendingByEventID_LeavesRespondedAlone(t *testing.T) {
	t.Parallel()

	repo := newFakeInvitationRepo()
	svc := NewInvitationService(repo, nil)

	eventID := uuid.New()
	invitee := uuid.New()

	pending, _ := repo.Create(context.Background(), &entity.EventInvitation{
		EventID: eventID, CreatorID: uuid.New(), InviteeID: uuid.New(),
		Status: entity.InvitationStatusPending,
	})
	accepted, _ := repo.Create(context.Background(), &entity.EventInvitation{
		EventID: eventID, CreatorID: uuid.New(), InviteeID: invitee,
		Status: entity.InvitationStatusPending,
	})
	if _, appErr := svc.AcceptInvitation(context.Background(), accepted.ID, invitee); appErr != nil {
		t.Fatalf("accept failed: %v", appErr)
	}

	if err := svc.DeletePendingByEventID(context.Background(), eventID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, ok := repo.invitations[pending.ID]; ok {
		t.Fatalf("pending invitation must be deleted with the event")
	}
	if _, ok := repo.invitations[accepted.ID]; !ok {
		t.Fatalf("responded invitation must survive event deletion")
	}
}
