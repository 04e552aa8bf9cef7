package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybnb-backend/internal/models"
	"staybnb-backend/internal/repository"
	"staybnb-backend/internal/validation"

	"github.com/google/uuid"
)

// ReviewStore is the persistence interface consumed by ReviewService
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListBySpot(ctx context.Context, spotID string) ([]models.ReviewWithUser, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}

// ReviewService handles review-related business logic
type ReviewService struct {
	reviewStore ReviewStore
	spotStore   SpotStore
}

// NewReviewService creates a new review service
func NewReviewService(reviewStore ReviewStore, spotStore SpotStore) *ReviewService {
	return &ReviewService{
		reviewStore: reviewStore,
		spotStore:   spotStore,
	}
}

// ReviewInput is the payload for creating or updating a review
type ReviewInput struct {
	Review string `json:"review" validate:"required"`
	Stars  int    `json:"stars" validate:"required,min=1,max=5"`
}

// ListBySpot retrieves all reviews for a spot. A spot with no reviews
// reports not-found, matching the API contract.
func (s *ReviewService) ListBySpot(ctx context.Context, spotID string) ([]models.ReviewWithUser, error) {
	reviews, err := s.reviewStore.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if len(reviews) == 0 {
		return nil, ErrSpotNotFound
	}
	return reviews, nil
}

// Create creates a review for a spot. The store's uniqueness constraint
// rejects a second review by the same user, so repeating a failing create
// never inserts a second record.
func (s *ReviewService) Create(ctx context.Context, userID, spotID string, input ReviewInput) (*models.Review, error) {
	if _, err := s.spotStore.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}

	// The spot is resolved before the payload is validated, so a bad body
	// never masks a 404.
	if fieldErrors := validation.Check(input); fieldErrors != nil {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	review := &models.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		SpotID:    spotID,
		Review:    input.Review,
		Stars:     input.Stars,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewStore.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// Update updates a review after checking authorship
func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, input ReviewInput) (*models.Review, error) {
	review, err := s.reviewStore.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if err := Authorize(userID, review.UserID); err != nil {
		return nil, err
	}

	if fieldErrors := validation.Check(input); fieldErrors != nil {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	review.Review = input.Review
	review.Stars = input.Stars
	review.UpdatedAt = time.Now()

	if err := s.reviewStore.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}

// Delete deletes a review after checking authorship
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.reviewStore.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if err := Authorize(userID, review.UserID); err != nil {
		return err
	}

	if err := s.reviewStore.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
