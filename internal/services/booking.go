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

// BookingStore is the persistence interface consumed by BookingService
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.BookingWithSpot, error)
	Delete(ctx context.Context, id string) error
}

// BookingService handles booking-related business logic
type BookingService struct {
	bookingStore BookingStore
	spotStore    SpotStore
}

// NewBookingService creates a new booking service
func NewBookingService(bookingStore BookingStore, spotStore SpotStore) *BookingService {
	return &BookingService{
		bookingStore: bookingStore,
		spotStore:    spotStore,
	}
}

// BookingInput is the payload for creating a booking
type BookingInput struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// ListByUser retrieves all bookings made by a user with their spots
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]models.BookingWithSpot, error) {
	return s.bookingStore.ListByUser(ctx, userID)
}

// Create books a spot for a date range. Overlapping bookings for the same
// spot are not rejected.
func (s *BookingService) Create(ctx context.Context, userID, spotID string, input BookingInput) (*models.Booking, error) {
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

	startDate, err := models.ParseDate(input.StartDate)
	if err != nil {
		return nil, &ValidationError{Errors: map[string]string{"startDate": "startDate must be a valid date"}}
	}
	endDate, err := models.ParseDate(input.EndDate)
	if err != nil {
		return nil, &ValidationError{Errors: map[string]string{"endDate": "endDate must be a valid date"}}
	}

	if !endDate.After(startDate) {
		return nil, &ValidationError{Errors: map[string]string{"endDate": "endDate cannot be on or before startDate"}}
	}

	now := time.Now()
	booking := &models.Booking{
		ID:        uuid.New().String(),
		UserID:    userID,
		SpotID:    spotID,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.bookingStore.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// Delete deletes a booking after checking that the current user made it
func (s *BookingService) Delete(ctx context.Context, userID, bookingID string) error {
	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to get booking: %w", err)
	}

	if err := Authorize(userID, booking.UserID); err != nil {
		return err
	}

	if err := s.bookingStore.Delete(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}
