package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"blend-calendar-api/core/config"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/modules/auth/dto"
	"blend-calendar-api/modules/auth/entity"
	scheduleEntity "blend-calendar-api/modules/schedule/entity"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	created := *user
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.byID[created.ID] = &created
	f.byEmail[created.Email] = &created
	copied := created
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*scheduleEntity.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[uuid.UUID]*scheduleEntity.Schedule)}
}

func (f *fakeScheduleRepo) CreateSchedule(ctx context.Context, schedule *scheduleEntity.Schedule) (*scheduleEntity.Schedule, error) {
	created := *schedule
	created.ID = uuid.New()
	f.schedules[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeScheduleRepo) GetScheduleByID(ctx context.Context, id uuid.UUID) (*scheduleEntity.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeScheduleRepo) GetSchedulesByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]scheduleEntity.Schedule, error) {
	var out []scheduleEntity.Schedule
	for _, s := range f.schedules {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) CreateBlend(ctx context.Context, blend *scheduleEntity.Blend) (*scheduleEntity.Blend, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeScheduleRepo) GetBlendByID(ctx context.Context, id uuid.UUID) (*scheduleEntity.Blend, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) GetBlendsByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]scheduleEntity.Blend, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) DeleteBlend(ctx context.Context, id uuid.UUID) error {
	return nil
}

func loadTestConfig(t *testing.T) {
	t.Helper()
	if _, err := config.Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestRegister_CreatesUserAndPersonalSchedule(t *testing.T) {
	loadTestConfig(t)

	users := newFakeUserRepo()
	schedules := newFakeScheduleRepo()
	svc := NewAuthService(users, schedules)

	resp, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "Ada@Example.com",
		Username: "ada",
		Password: "correct-horse",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.User.Email != "ada@example.com" {
		t.Fatalf("email must be normalized, got %q", resp.User.Email)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("registration must issue both tokens")
	}

	owned, _ := schedules.GetSchedulesByOwnerID(context.Background(), resp.User.ID)
	if len(owned) != 1 {
		t.Fatalf("expected exactly one personal schedule, got %d", len(owned))
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	loadTestConfig(t)

	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeScheduleRepo())

	req := &dto.RegisterRequest{Email: "dup@example.com", Username: "dup", Password: "longenough"}
	if _, appErr := svc.Register(context.Background(), req); appErr != nil {
		t.Fatalf("first registration failed: %v", appErr)
	}

	_, appErr := svc.Register(context.Background(), req)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected already-exists, got %v", appErr)
	}
}

func TestRegister_ValidatesFields(t *testing.T) {
	loadTestConfig(t)

	svc := NewAuthService(newFakeUserRepo(), newFakeScheduleRepo())

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "no-at-sign",
		Password: "short",
	})
	if appErr == nil {
		t.Fatalf("expected validation error")
	}
	if len(appErr.Fields) < 3 {
		t.Fatalf("expected email, username and password errors, got %v", appErr.Fields)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	loadTestConfig(t)

	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeScheduleRepo())

	if _, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "bob@example.com", Username: "bob", Password: "hunter22hunter",
	}); appErr != nil {
		t.Fatalf("register: %v", appErr)
	}

	resp, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "bob@example.com", Password: "hunter22hunter",
	})
	if appErr != nil {
		t.Fatalf("login: %v", appErr)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatalf("login must issue an access token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	loadTestConfig(t)

	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeScheduleRepo())

	if _, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "eve@example.com", Username: "eve", Password: "hunter22hunter",
	}); appErr != nil {
		t.Fatalf("register: %v", appErr)
	}

	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "eve@example.com", Password: "wrong-password",
	})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected unauthorized, got %v", appErr)
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	loadTestConfig(t)

	users := newFakeUserRepo()
	svc := NewAuthService(users, newFakeScheduleRepo())

	resp, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "carol@example.com", Username: "carol", Password: "hunter22hunter",
	})
	if appErr != nil {
		t.Fatalf("register: %v", appErr)
	}

	// An access token presented as a refresh token must be rejected.
	_, appErr = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: resp.Tokens.AccessToken,
	})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("expected unauthorized, got %v", appErr)
	}

	// The real refresh token works.
	pair, appErr := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: resp.Tokens.RefreshToken,
	})
	if appErr != nil {
		t.Fatalf("refresh: %v", appErr)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("refresh must issue a new pair")
	}
}
