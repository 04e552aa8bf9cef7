package handlers

import (
	"net/http"

	"staybnb-backend/internal/middleware"
	"staybnb-backend/internal/models"
	"staybnb-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// bookingsResponse wraps booking listings
type bookingsResponse struct {
	Bookings []models.BookingWithSpot `json:"Bookings"`
}

// ListCurrentUserBookings handles GET /api/bookings/current
func (h *BookingHandler) ListCurrentUserBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	bookings, err := h.bookingService.ListByUser(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, bookingsResponse{Bookings: bookings})
}

// CreateBooking handles POST /api/spots/{spotId}/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	spotID := chi.URLParam(r, "spotId")

	var input services.BookingInput
	if !decodeBody(w, r, &input) {
		return
	}

	booking, err := h.bookingService.Create(ctx, userID, spotID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("spot_id", spotID).
		Str("booking_id", booking.ID).
		Msg("Booking created")

	respondJSON(w, http.StatusCreated, booking)
}

// DeleteBooking handles DELETE /api/bookings/{bookingId}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	bookingID := chi.URLParam(r, "bookingId")

	if err := h.bookingService.Delete(ctx, userID, bookingID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("booking_id", bookingID).
		Msg("Booking deleted")

	respondJSON(w, http.StatusOK, messageResponse{Message: "Successfully deleted", StatusCode: http.StatusOK})
}
