package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/utils"
	"blend-calendar-api/modules/auth/dto"
	"blend-calendar-api/modules/auth/entity"
	"blend-calendar-api/modules/auth/repository"
	scheduleEntity "blend-calendar-api/modules/schedule/entity"
	scheduleRepository "blend-calendar-api/modules/schedule/repository"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPair, *errors.AppError)
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
}

type AuthService struct {
	repo      repository.UserRepositoryInterface
	schedules scheduleRepository.ScheduleRepositoryInterface
}

func NewAuthService(repo repository.UserRepositoryInterface, schedules scheduleRepository.ScheduleRepositoryInterface) *AuthService {
	return &AuthService{
		repo:      repo,
		schedules: schedules,
	}
}

// Register creates the user and their personal schedule. Every user owns
// exactly one personal schedule from the moment the account exists.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	fields := validateRegister(req)
	if len(fields) > 0 {
		return nil, errors.NewValidationError("Invalid registration data", fields)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email is already registered", nil)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	user, err := s.repo.Create(ctx, &entity.User{
		Email:    email,
		Username: strings.TrimSpace(req.Username),
		Password: hashed,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create user", err)
	}

	_, err = s.schedules.CreateSchedule(ctx, &scheduleEntity.Schedule{
		OwnerID: user.ID,
		Name:    "My Schedule",
	})
	if err != nil {
		logger.Error("AuthService:Register:CreateSchedule", "error", err, "user_id", user.ID)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create personal schedule", err)
	}

	tokens, appErr := s.issueTokens(user.ID)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.AuthResponse{
		User:   toUserResponse(user),
		Tokens: *tokens,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Email and password are required", nil)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch user", err)
	}
	if user == nil || !utils.ComparePassword(user.Password, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	tokens, appErr := s.issueTokens(user.ID)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.AuthResponse{
		User:   toUserResponse(user),
		Tokens: *tokens,
	}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPair, *errors.AppError) {
	claims, err := utils.ValidateAndParseToken(req.RefreshToken)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid refresh token", err)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token is not a refresh token", nil)
	}

	user, getErr := s.repo.GetByID(ctx, claims.UserID)
	if getErr != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch user", getErr)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	return s.issueTokens(user.ID)
}

func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to fetch user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueTokens(userID uuid.UUID) (*dto.TokenPair, *errors.AppError) {
	access, err := utils.GenerateToken(userID, constants.ScopeTokenAccess, constants.AccessTokenTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate access token", err)
	}

	refresh, err := utils.GenerateToken(userID, constants.ScopeTokenRefresh, constants.RefreshTokenTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate refresh token", err)
	}

	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func validateRegister(req *dto.RegisterRequest) []errors.FieldError {
	var fields []errors.FieldError

	if strings.TrimSpace(req.Email) == "" {
		fields = append(fields, errors.FieldError{Field: "email", Message: "email is required"})
	} else if !strings.Contains(req.Email, "@") {
		fields = append(fields, errors.FieldError{Field: "email", Message: "email is not valid"})
	}

	if strings.TrimSpace(req.Username) == "" {
		fields = append(fields, errors.FieldError{Field: "username", Message: "username is required"})
	}

	if len(req.Password) < 8 {
		fields = append(fields, errors.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	return fields
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}
