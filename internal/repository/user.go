package repository

import (
	"context"
	"errors"
	"fmt"

	"staybnb-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, email, username, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email,
		user.Username, user.HashedPassword, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user already exists: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, username, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Username, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByCredential retrieves a user by username or email
func (r *UserRepository) GetByCredential(ctx context.Context, credential string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, username, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, credential).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Username, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", credential, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by credential: %w", err)
	}
	return &user, nil
}
