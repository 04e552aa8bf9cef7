package repository

import (
	"context"
	"errors"
	"fmt"

	"staybnb-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SpotRepository handles database operations for spots and their images
type SpotRepository struct {
	db *pgxpool.Pool
}

// NewSpotRepository creates a new spot repository
func NewSpotRepository(db *pgxpool.Pool) *SpotRepository {
	return &SpotRepository{db: db}
}

// spotSummaryQuery selects spots with the review average and preview image
// computed by the database, so handlers never scan image lists manually.
const spotSummaryQuery = `
	SELECT s.id, s.owner_id, s.address, s.city, s.state, s.country, s.lat, s.lng,
	       s.name, s.description, s.price, s.created_at, s.updated_at,
	       (SELECT round(avg(r.stars)::numeric, 1)::float8 FROM reviews r WHERE r.spot_id = s.id) AS avg_rating,
	       (SELECT si.url FROM spot_images si WHERE si.spot_id = s.id AND si.preview) AS preview_image
	FROM spots s
`

// Create creates a new spot
func (r *SpotRepository) Create(ctx context.Context, spot *models.Spot) error {
	query := `
		INSERT INTO spots (id, owner_id, address, city, state, country, lat, lng,
		                   name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		spot.ID, spot.OwnerID, spot.Address, spot.City, spot.State, spot.Country,
		spot.Lat, spot.Lng, spot.Name, spot.Description, spot.Price,
		spot.CreatedAt, spot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}
	return nil
}

// GetByID retrieves a spot by ID without aggregates
func (r *SpotRepository) GetByID(ctx context.Context, id string) (*models.Spot, error) {
	query := `
		SELECT id, owner_id, address, city, state, country, lat, lng,
		       name, description, price, created_at, updated_at
		FROM spots
		WHERE id = $1
	`
	var spot models.Spot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&spot.ID, &spot.OwnerID, &spot.Address, &spot.City, &spot.State, &spot.Country,
		&spot.Lat, &spot.Lng, &spot.Name, &spot.Description, &spot.Price,
		&spot.CreatedAt, &spot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("spot %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	return &spot, nil
}

// GetDetails retrieves a spot by ID with review aggregates, images and owner
func (r *SpotRepository) GetDetails(ctx context.Context, id string) (*models.SpotDetails, error) {
	query := `
		SELECT s.id, s.owner_id, s.address, s.city, s.state, s.country, s.lat, s.lng,
		       s.name, s.description, s.price, s.created_at, s.updated_at,
		       (SELECT count(*) FROM reviews r WHERE r.spot_id = s.id) AS num_reviews,
		       (SELECT round(avg(r.stars)::numeric, 1)::float8 FROM reviews r WHERE r.spot_id = s.id) AS avg_rating,
		       u.id, u.first_name, u.last_name
		FROM spots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1
	`
	var details models.SpotDetails
	err := r.db.QueryRow(ctx, query, id).Scan(
		&details.ID, &details.OwnerID, &details.Address, &details.City,
		&details.State, &details.Country, &details.Lat, &details.Lng,
		&details.Name, &details.Description, &details.Price,
		&details.CreatedAt, &details.UpdatedAt,
		&details.NumReviews, &details.AvgRating,
		&details.Owner.ID, &details.Owner.FirstName, &details.Owner.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("spot %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get spot details: %w", err)
	}

	images, err := r.getImages(ctx, id)
	if err != nil {
		return nil, err
	}
	details.SpotImages = images

	details.PreviewImage = models.NoPreviewImage
	for _, image := range images {
		if image.Preview {
			details.PreviewImage = image.URL
			break
		}
	}

	return &details, nil
}

// getImages retrieves all images for a spot
func (r *SpotRepository) getImages(ctx context.Context, spotID string) ([]models.SpotImage, error) {
	query := `
		SELECT id, spot_id, url, preview
		FROM spot_images
		WHERE spot_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, spotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get spot images: %w", err)
	}
	defer rows.Close()

	images := []models.SpotImage{}
	for rows.Next() {
		var image models.SpotImage
		if err := rows.Scan(&image.ID, &image.SpotID, &image.URL, &image.Preview); err != nil {
			return nil, fmt.Errorf("failed to scan spot image: %w", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spot images: %w", err)
	}

	return images, nil
}

// ListAll retrieves all spots with aggregates
func (r *SpotRepository) ListAll(ctx context.Context) ([]models.SpotSummary, error) {
	rows, err := r.db.Query(ctx, spotSummaryQuery+` ORDER BY s.created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list spots: %w", err)
	}
	defer rows.Close()

	return scanSpotSummaries(rows)
}

// ListByOwner retrieves all spots owned by a user, with aggregates
func (r *SpotRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.SpotSummary, error) {
	rows, err := r.db.Query(ctx, spotSummaryQuery+` WHERE s.owner_id = $1 ORDER BY s.created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spots by owner: %w", err)
	}
	defer rows.Close()

	return scanSpotSummaries(rows)
}

// scanSpotSummaries scans spot summary rows, substituting the fallback
// string when a spot has no preview image
func scanSpotSummaries(rows pgx.Rows) ([]models.SpotSummary, error) {
	spots := []models.SpotSummary{}
	for rows.Next() {
		var spot models.SpotSummary
		var previewImage *string
		err := rows.Scan(
			&spot.ID, &spot.OwnerID, &spot.Address, &spot.City, &spot.State, &spot.Country,
			&spot.Lat, &spot.Lng, &spot.Name, &spot.Description, &spot.Price,
			&spot.CreatedAt, &spot.UpdatedAt,
			&spot.AvgRating, &previewImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spot: %w", err)
		}
		spot.PreviewImage = models.NoPreviewImage
		if previewImage != nil {
			spot.PreviewImage = *previewImage
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spots: %w", err)
	}

	return spots, nil
}

// Update updates a spot's editable fields
func (r *SpotRepository) Update(ctx context.Context, spot *models.Spot) error {
	query := `
		UPDATE spots
		SET address = $1, city = $2, state = $3, country = $4, lat = $5, lng = $6,
		    name = $7, description = $8, price = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.db.Exec(ctx, query,
		spot.Address, spot.City, spot.State, spot.Country, spot.Lat, spot.Lng,
		spot.Name, spot.Description, spot.Price, spot.UpdatedAt, spot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update spot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("spot %s: %w", spot.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a spot; images, reviews and bookings cascade
func (r *SpotRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("spot %s: %w", id, ErrNotFound)
	}
	return nil
}

// AddImage attaches an image to a spot. When the image is flagged as the
// preview, any previously flagged image is demoted in the same transaction
// so the one-preview-per-spot index holds.
func (r *SpotRepository) AddImage(ctx context.Context, image *models.SpotImage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if image.Preview {
		_, err = tx.Exec(ctx, `UPDATE spot_images SET preview = false WHERE spot_id = $1 AND preview`, image.SpotID)
		if err != nil {
			return fmt.Errorf("failed to demote preview image: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO spot_images (id, spot_id, url, preview)
		VALUES ($1, $2, $3, $4)
	`, image.ID, image.SpotID, image.URL, image.Preview)
	if err != nil {
		return fmt.Errorf("failed to create spot image: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit spot image: %w", err)
	}
	return nil
}
