package repository

import (
	"context"
	"errors"
	"fmt"

	"staybnb-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new review. Returns ErrDuplicate when the user already
// has a review for the spot; the unique constraint makes concurrent
// submissions safe without a pre-read check.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, spot_id, review, stars, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		review.ID, review.UserID, review.SpotID, review.Review, review.Stars,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("review by user %s for spot %s: %w", review.UserID, review.SpotID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := `
		SELECT id, user_id, spot_id, review, stars, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`
	var review models.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.UserID, &review.SpotID, &review.Review, &review.Stars,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// ListBySpot retrieves all reviews for a spot with their authors
func (r *ReviewRepository) ListBySpot(ctx context.Context, spotID string) ([]models.ReviewWithUser, error) {
	query := `
		SELECT r.id, r.user_id, r.spot_id, r.review, r.stars, r.created_at, r.updated_at,
		       u.id, u.first_name, u.last_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.spot_id = $1
		ORDER BY r.created_at
	`
	rows, err := r.db.Query(ctx, query, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.ReviewWithUser{}
	for rows.Next() {
		var review models.ReviewWithUser
		err := rows.Scan(
			&review.ID, &review.UserID, &review.SpotID, &review.Review, &review.Stars,
			&review.CreatedAt, &review.UpdatedAt,
			&review.User.ID, &review.User.FirstName, &review.User.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Update updates a review's text and rating
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	query := `
		UPDATE reviews
		SET review = $1, stars = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.Exec(ctx, query, review.Review, review.Stars, review.UpdatedAt, review.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", review.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a review by ID
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}
