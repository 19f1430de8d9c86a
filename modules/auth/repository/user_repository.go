package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"blend-calendar-api/core/database"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/modules/auth/entity"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type UserRepository struct {
	db database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, password, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, username, password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	var created entity.User
	err := r.db.GetContext(ctx, &created, query, user.Email, user.Username, user.Password)
	if err != nil {
		logger.Error("UserRepo:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepo:GetByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepo:GetByEmail", err)
		return nil, err
	}

	return &user, nil
}
