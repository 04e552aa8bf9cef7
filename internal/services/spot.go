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

// SpotStore is the persistence interface consumed by SpotService
type SpotStore interface {
	Create(ctx context.Context, spot *models.Spot) error
	GetByID(ctx context.Context, id string) (*models.Spot, error)
	GetDetails(ctx context.Context, id string) (*models.SpotDetails, error)
	ListAll(ctx context.Context) ([]models.SpotSummary, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.SpotSummary, error)
	Update(ctx context.Context, spot *models.Spot) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, image *models.SpotImage) error
}

// SpotService handles spot-related business logic
type SpotService struct {
	spotStore SpotStore
}

// NewSpotService creates a new spot service
func NewSpotService(spotStore SpotStore) *SpotService {
	return &SpotService{spotStore: spotStore}
}

// SpotInput is the payload for creating or updating a spot
type SpotInput struct {
	Address     string  `json:"address" validate:"required"`
	City        string  `json:"city" validate:"required"`
	State       string  `json:"state" validate:"required"`
	Country     string  `json:"country" validate:"required"`
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lng         float64 `json:"lng" validate:"min=-180,max=180"`
	Name        string  `json:"name" validate:"required,max=50"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"min=1,max=10000"`
}

// ImageInput is the payload for attaching an image to a spot. The URL is
// stored as an opaque string.
type ImageInput struct {
	URL     string `json:"url" validate:"required"`
	Preview bool   `json:"preview"`
}

// List retrieves all spots with aggregates and preview images
func (s *SpotService) List(ctx context.Context) ([]models.SpotSummary, error) {
	return s.spotStore.ListAll(ctx)
}

// ListByOwner retrieves the spots owned by a user
func (s *SpotService) ListByOwner(ctx context.Context, ownerID string) ([]models.SpotSummary, error) {
	return s.spotStore.ListByOwner(ctx, ownerID)
}

// Get retrieves a single spot with aggregates, images and owner
func (s *SpotService) Get(ctx context.Context, spotID string) (*models.SpotDetails, error) {
	details, err := s.spotStore.GetDetails(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	return details, nil
}

// Create creates a new spot owned by the current user
func (s *SpotService) Create(ctx context.Context, ownerID string, input SpotInput) (*models.Spot, error) {
	now := time.Now()
	spot := &models.Spot{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Country:     input.Country,
		Lat:         input.Lat,
		Lng:         input.Lng,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.spotStore.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}

	return spot, nil
}

// Update updates a spot after checking ownership
func (s *SpotService) Update(ctx context.Context, userID, spotID string, input SpotInput) (*models.Spot, error) {
	spot, err := s.spotStore.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}

	if err := Authorize(userID, spot.OwnerID); err != nil {
		return nil, err
	}

	// Payload validation runs only once the target is resolved and owned,
	// so a bad body never masks a 404 or 403.
	if fieldErrors := validation.Check(input); fieldErrors != nil {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	spot.Address = input.Address
	spot.City = input.City
	spot.State = input.State
	spot.Country = input.Country
	spot.Lat = input.Lat
	spot.Lng = input.Lng
	spot.Name = input.Name
	spot.Description = input.Description
	spot.Price = input.Price
	spot.UpdatedAt = time.Now()

	if err := s.spotStore.Update(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to update spot: %w", err)
	}

	return spot, nil
}

// Delete deletes a spot after checking ownership; associated images,
// reviews and bookings cascade in the store
func (s *SpotService) Delete(ctx context.Context, userID, spotID string) error {
	spot, err := s.spotStore.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSpotNotFound
		}
		return fmt.Errorf("failed to get spot: %w", err)
	}

	if err := Authorize(userID, spot.OwnerID); err != nil {
		return err
	}

	if err := s.spotStore.Delete(ctx, spotID); err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}

	return nil
}

// AddImage attaches an image to a spot after checking ownership
func (s *SpotService) AddImage(ctx context.Context, userID, spotID string, input ImageInput) (*models.SpotImage, error) {
	spot, err := s.spotStore.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}

	if err := Authorize(userID, spot.OwnerID); err != nil {
		return nil, err
	}

	if fieldErrors := validation.Check(input); fieldErrors != nil {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	image := &models.SpotImage{
		ID:      uuid.New().String(),
		SpotID:  spot.ID,
		URL:     input.URL,
		Preview: input.Preview,
	}

	if err := s.spotStore.AddImage(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to add spot image: %w", err)
	}

	return image, nil
}
