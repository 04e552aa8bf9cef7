package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"staybnb-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	env := newTestEnv()
	env.signup(t, "owner", "owner@example.com")
	guest := env.signup(t, "guest", "guest@example.com")
	guestID := env.userID(t, "guest")

	env.seedSpot("spot-1", env.userID(t, "owner"), "Casa do Rio", 100, time.Now())

	rec := env.do(t, http.MethodPost, "/api/spots/spot-1/bookings", map[string]any{
		"startDate": "2026-09-01",
		"endDate":   "2026-09-05",
	}, guest)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		ID        string `json:"id"`
		UserID    string `json:"userId"`
		SpotID    string `json:"spotId"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	decodeJSON(t, rec, &body)
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, guestID, body.UserID)
	assert.Equal(t, "spot-1", body.SpotID)
	assert.Equal(t, "2026-09-01", body.StartDate)
	assert.Equal(t, "2026-09-05", body.EndDate)
}

func TestCreateBooking_InvalidDates(t *testing.T) {
	env := newTestEnv()
	env.signup(t, "owner", "owner@example.com")
	guest := env.signup(t, "guest", "guest@example.com")
	env.seedSpot("spot-1", env.userID(t, "owner"), "Casa do Rio", 100, time.Now())

	rec := env.do(t, http.MethodPost, "/api/spots/spot-1/bookings", map[string]any{
		"startDate": "2026-09-05",
		"endDate":   "2026-09-01",
	}, guest)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, "endDate cannot be on or before startDate", body.Errors["endDate"])
	assert.Empty(t, env.bookings.bookings)
}

// The spot is resolved before the payload is validated, so bad dates on a
// missing spot still answer 404
func TestCreateBooking_MissingSpotBeatsValidation(t *testing.T) {
	env := newTestEnv()
	guest := env.signup(t, "guest", "guest@example.com")

	rec := env.do(t, http.MethodPost, "/api/spots/missing/bookings", map[string]any{
		"startDate": "not-a-date",
		"endDate":   "",
	}, guest)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Spot couldn't be found", body.Message)
	assert.Empty(t, env.bookings.bookings)
}

func TestListCurrentUserBookings(t *testing.T) {
	env := newTestEnv()
	env.signup(t, "owner", "owner@example.com")
	guest := env.signup(t, "guest", "guest@example.com")
	guestID := env.userID(t, "guest")
	ownerID := env.userID(t, "owner")

	env.seedSpot("spot-1", ownerID, "Casa do Rio", 100, time.Now())

	start, _ := models.ParseDate("2026-09-01")
	end, _ := models.ParseDate("2026-09-05")
	env.bookings.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", UserID: guestID, SpotID: "spot-1", StartDate: start, EndDate: end,
	}

	rec := env.do(t, http.MethodGet, "/api/bookings/current", nil, guest)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Bookings []struct {
			ID        string `json:"id"`
			StartDate string `json:"startDate"`
			Spot      struct {
				ID           string `json:"id"`
				Name         string `json:"name"`
				PreviewImage string `json:"previewImage"`
			} `json:"Spot"`
		} `json:"Bookings"`
	}
	decodeJSON(t, rec, &body)
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "bk-1", body.Bookings[0].ID)
	assert.Equal(t, "2026-09-01", body.Bookings[0].StartDate)
	assert.Equal(t, "spot-1", body.Bookings[0].Spot.ID)
	assert.Equal(t, models.NoPreviewImage, body.Bookings[0].Spot.PreviewImage)
}

func TestDeleteBooking(t *testing.T) {
	env := newTestEnv()
	env.signup(t, "owner", "owner@example.com")
	guest := env.signup(t, "guest", "guest@example.com")
	intruder := env.signup(t, "intruder", "intruder@example.com")
	guestID := env.userID(t, "guest")

	env.seedSpot("spot-1", env.userID(t, "owner"), "Casa do Rio", 100, time.Now())

	start, _ := models.ParseDate("2026-09-01")
	end, _ := models.ParseDate("2026-09-05")
	env.bookings.bookings["bk-1"] = &models.Booking{
		ID: "bk-1", UserID: guestID, SpotID: "spot-1", StartDate: start, EndDate: end,
	}

	// Only the booking's user may delete it
	rec := env.do(t, http.MethodDelete, "/api/bookings/bk-1", nil, intruder)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, env.bookings.bookings, "bk-1")

	rec = env.do(t, http.MethodDelete, "/api/bookings/bk-1", nil, guest)
	require.Equal(t, http.StatusOK, rec.Code)

	var body errorBody
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Successfully deleted", body.Message)
	assert.Empty(t, env.bookings.bookings)

	rec = env.do(t, http.MethodDelete, "/api/bookings/bk-1", nil, guest)
	require.Equal(t, http.StatusNotFound, rec.Code)
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Booking couldn't be found", body.Message)
}
