package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybnb-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, spot_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.UserID, booking.SpotID,
		booking.StartDate.Time, booking.EndDate.Time,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query := `
		SELECT id, user_id, spot_id, start_date, end_date, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking models.Booking
	var startDate, endDate time.Time
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID, &booking.UserID, &booking.SpotID,
		&startDate, &endDate, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	booking.StartDate = models.Date{Time: startDate}
	booking.EndDate = models.Date{Time: endDate}
	return &booking, nil
}

// ListByUser retrieves all bookings made by a user with their spots
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.BookingWithSpot, error) {
	query := `
		SELECT b.id, b.user_id, b.spot_id, b.start_date, b.end_date, b.created_at, b.updated_at,
		       s.id, s.owner_id, s.address, s.city, s.state, s.country, s.lat, s.lng, s.name, s.price,
		       (SELECT si.url FROM spot_images si WHERE si.spot_id = s.id AND si.preview) AS preview_image
		FROM bookings b
		JOIN spots s ON s.id = b.spot_id
		WHERE b.user_id = $1
		ORDER BY b.start_date
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.BookingWithSpot{}
	for rows.Next() {
		var booking models.BookingWithSpot
		var startDate, endDate time.Time
		var previewImage *string
		err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.SpotID,
			&startDate, &endDate, &booking.CreatedAt, &booking.UpdatedAt,
			&booking.Spot.ID, &booking.Spot.OwnerID, &booking.Spot.Address,
			&booking.Spot.City, &booking.Spot.State, &booking.Spot.Country,
			&booking.Spot.Lat, &booking.Spot.Lng, &booking.Spot.Name, &booking.Spot.Price,
			&previewImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		booking.StartDate = models.Date{Time: startDate}
		booking.EndDate = models.Date{Time: endDate}
		booking.Spot.PreviewImage = models.NoPreviewImage
		if previewImage != nil {
			booking.Spot.PreviewImage = *previewImage
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// Delete deletes a booking by ID
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return nil
}
