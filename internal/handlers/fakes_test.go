package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"staybnb-backend/internal/handlers"
	"staybnb-backend/internal/models"
	"staybnb-backend/internal/repository"
	"staybnb-backend/internal/services"

	"github.com/stretchr/testify/require"
)

// In-memory stores implementing the service store interfaces. Aggregates
// are computed the way the SQL queries compute them so handler responses
// can be asserted end to end without a database.

type fakeUserStore struct {
	users map[string]*models.User
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return fmt.Errorf("user already exists: %w", repository.ErrDuplicate)
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByCredential(_ context.Context, credential string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == credential || user.Email == credential {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", credential, repository.ErrNotFound)
}

type fakeSpotStore struct {
	spots   map[string]*models.Spot
	images  []models.SpotImage
	reviews *fakeReviewStore
	users   *fakeUserStore
}

func (s *fakeSpotStore) Create(_ context.Context, spot *models.Spot) error {
	copied := *spot
	s.spots[spot.ID] = &copied
	return nil
}

func (s *fakeSpotStore) GetByID(_ context.Context, id string) (*models.Spot, error) {
	spot, ok := s.spots[id]
	if !ok {
		return nil, fmt.Errorf("spot %s: %w", id, repository.ErrNotFound)
	}
	copied := *spot
	return &copied, nil
}

// avgRating returns the mean stars for a spot rounded to one decimal, or
// nil when the spot has no reviews
func (s *fakeSpotStore) avgRating(spotID string) *float64 {
	sum, count := 0, 0
	for _, review := range s.reviews.reviews {
		if review.SpotID == spotID {
			sum += review.Stars
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return &avg
}

func (s *fakeSpotStore) previewImage(spotID string) string {
	for _, image := range s.images {
		if image.SpotID == spotID && image.Preview {
			return image.URL
		}
	}
	return models.NoPreviewImage
}

func (s *fakeSpotStore) numReviews(spotID string) int {
	count := 0
	for _, review := range s.reviews.reviews {
		if review.SpotID == spotID {
			count++
		}
	}
	return count
}

func (s *fakeSpotStore) GetDetails(ctx context.Context, id string) (*models.SpotDetails, error) {
	spot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &models.SpotDetails{
		Spot:         *spot,
		NumReviews:   s.numReviews(id),
		AvgRating:    s.avgRating(id),
		PreviewImage: s.previewImage(id),
		SpotImages:   []models.SpotImage{},
	}
	for _, image := range s.images {
		if image.SpotID == id {
			details.SpotImages = append(details.SpotImages, image)
		}
	}
	if owner, ok := s.users.users[spot.OwnerID]; ok {
		details.Owner = owner.Ref()
	}
	return details, nil
}

func (s *fakeSpotStore) summarize(spot *models.Spot) models.SpotSummary {
	return models.SpotSummary{
		Spot:         *spot,
		AvgRating:    s.avgRating(spot.ID),
		PreviewImage: s.previewImage(spot.ID),
	}
}

func (s *fakeSpotStore) ListAll(context.Context) ([]models.SpotSummary, error) {
	summaries := []models.SpotSummary{}
	for _, spot := range s.spots {
		summaries = append(summaries, s.summarize(spot))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].CreatedAt.Before(summaries[j].CreatedAt) })
	return summaries, nil
}

func (s *fakeSpotStore) ListByOwner(_ context.Context, ownerID string) ([]models.SpotSummary, error) {
	summaries := []models.SpotSummary{}
	for _, spot := range s.spots {
		if spot.OwnerID == ownerID {
			summaries = append(summaries, s.summarize(spot))
		}
	}
	return summaries, nil
}

func (s *fakeSpotStore) Update(_ context.Context, spot *models.Spot) error {
	if _, ok := s.spots[spot.ID]; !ok {
		return fmt.Errorf("spot %s: %w", spot.ID, repository.ErrNotFound)
	}
	copied := *spot
	s.spots[spot.ID] = &copied
	return nil
}

func (s *fakeSpotStore) Delete(_ context.Context, id string) error {
	if _, ok := s.spots[id]; !ok {
		return fmt.Errorf("spot %s: %w", id, repository.ErrNotFound)
	}
	delete(s.spots, id)

	kept := s.images[:0]
	for _, image := range s.images {
		if image.SpotID != id {
			kept = append(kept, image)
		}
	}
	s.images = kept
	for reviewID, review := range s.reviews.reviews {
		if review.SpotID == id {
			delete(s.reviews.reviews, reviewID)
		}
	}
	return nil
}

func (s *fakeSpotStore) AddImage(_ context.Context, image *models.SpotImage) error {
	if image.Preview {
		for i := range s.images {
			if s.images[i].SpotID == image.SpotID {
				s.images[i].Preview = false
			}
		}
	}
	s.images = append(s.images, *image)
	return nil
}

type fakeReviewStore struct {
	reviews map[string]*models.Review
	users   *fakeUserStore
}

func (s *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	for _, existing := range s.reviews {
		if existing.UserID == review.UserID && existing.SpotID == review.SpotID {
			return fmt.Errorf("review by user %s for spot %s: %w", review.UserID, review.SpotID, repository.ErrDuplicate)
		}
	}
	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *fakeReviewStore) GetByID(_ context.Context, id string) (*models.Review, error) {
	review, ok := s.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
	}
	copied := *review
	return &copied, nil
}

func (s *fakeReviewStore) ListBySpot(_ context.Context, spotID string) ([]models.ReviewWithUser, error) {
	listed := []models.ReviewWithUser{}
	for _, review := range s.reviews {
		if review.SpotID != spotID {
			continue
		}
		withUser := models.ReviewWithUser{Review: *review}
		if author, ok := s.users.users[review.UserID]; ok {
			withUser.User = author.Ref()
		}
		listed = append(listed, withUser)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].CreatedAt.Before(listed[j].CreatedAt) })
	return listed, nil
}

func (s *fakeReviewStore) Update(_ context.Context, review *models.Review) error {
	if _, ok := s.reviews[review.ID]; !ok {
		return fmt.Errorf("review %s: %w", review.ID, repository.ErrNotFound)
	}
	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *fakeReviewStore) Delete(_ context.Context, id string) error {
	if _, ok := s.reviews[id]; !ok {
		return fmt.Errorf("review %s: %w", id, repository.ErrNotFound)
	}
	delete(s.reviews, id)
	return nil
}

type fakeBookingStore struct {
	bookings map[string]*models.Booking
	spots    *fakeSpotStore
}

func (s *fakeBookingStore) Create(_ context.Context, booking *models.Booking) error {
	copied := *booking
	s.bookings[booking.ID] = &copied
	return nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	copied := *booking
	return &copied, nil
}

func (s *fakeBookingStore) ListByUser(_ context.Context, userID string) ([]models.BookingWithSpot, error) {
	listed := []models.BookingWithSpot{}
	for _, booking := range s.bookings {
		if booking.UserID != userID {
			continue
		}
		withSpot := models.BookingWithSpot{Booking: *booking}
		if spot, ok := s.spots.spots[booking.SpotID]; ok {
			withSpot.Spot = models.BookingSpot{
				ID:           spot.ID,
				OwnerID:      spot.OwnerID,
				Address:      spot.Address,
				City:         spot.City,
				State:        spot.State,
				Country:      spot.Country,
				Lat:          spot.Lat,
				Lng:          spot.Lng,
				Name:         spot.Name,
				Price:        spot.Price,
				PreviewImage: s.spots.previewImage(spot.ID),
			}
		}
		listed = append(listed, withSpot)
	}
	sort.Slice(listed, func(i, j int) bool { return listed[i].StartDate.Before(listed[j].StartDate.Time) })
	return listed, nil
}

func (s *fakeBookingStore) Delete(_ context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	delete(s.bookings, id)
	return nil
}

// env bundles the fake stores with a fully wired router
type env struct {
	router   http.Handler
	users    *fakeUserStore
	spots    *fakeSpotStore
	reviews  *fakeReviewStore
	bookings *fakeBookingStore
}

func newTestEnv() *env {
	users := &fakeUserStore{users: map[string]*models.User{}}
	reviews := &fakeReviewStore{reviews: map[string]*models.Review{}, users: users}
	spots := &fakeSpotStore{spots: map[string]*models.Spot{}, reviews: reviews, users: users}
	bookings := &fakeBookingStore{bookings: map[string]*models.Booking{}, spots: spots}

	userService := services.NewUserService(users, "test-secret")
	spotService := services.NewSpotService(spots)
	reviewService := services.NewReviewService(reviews, spots)
	bookingService := services.NewBookingService(bookings, spots)

	router := handlers.NewRouter(
		userService,
		handlers.NewSessionHandler(userService),
		handlers.NewSpotHandler(spotService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewBookingHandler(bookingService),
	)

	return &env{
		router:   router,
		users:    users,
		spots:    spots,
		reviews:  reviews,
		bookings: bookings,
	}
}

// do performs a request against the router, optionally with a session cookie
func (e *env) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user through the API and returns the session cookie
func (e *env) signup(t *testing.T, username, email string) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/users", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"username":  username,
		"password":  "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("signup did not set a session cookie")
	return nil
}

// userID looks up a registered user's generated ID by username
func (e *env) userID(t *testing.T, username string) string {
	t.Helper()
	for _, user := range e.users.users {
		if user.Username == username {
			return user.ID
		}
	}
	t.Fatalf("user %s not registered", username)
	return ""
}

// seedSpot inserts a spot directly into the store
func (e *env) seedSpot(id, ownerID, name string, price float64, createdAt time.Time) {
	e.spots.spots[id] = &models.Spot{
		ID:          id,
		OwnerID:     ownerID,
		Address:     "123 Main St",
		City:        "Porto",
		State:       "Porto",
		Country:     "Portugal",
		Lat:         41.1579,
		Lng:         -8.6291,
		Name:        name,
		Description: "A lovely place to stay",
		Price:       price,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}
