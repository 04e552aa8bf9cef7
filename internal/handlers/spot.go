package handlers

import (
	"net/http"

	"staybnb-backend/internal/middleware"
	"staybnb-backend/internal/models"
	"staybnb-backend/internal/services"
	"staybnb-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SpotHandler handles spot-related HTTP requests
type SpotHandler struct {
	spotService *services.SpotService
}

// NewSpotHandler creates a new spot handler
func NewSpotHandler(spotService *services.SpotService) *SpotHandler {
	return &SpotHandler{
		spotService: spotService,
	}
}

// spotsResponse wraps spot listings
type spotsResponse struct {
	Spots []models.SpotSummary `json:"Spots"`
}

// ListSpots handles GET /api/spots
func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.spotService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, spotsResponse{Spots: spots})
}

// ListCurrentUserSpots handles GET /api/spots/current
func (h *SpotHandler) ListCurrentUserSpots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	spots, err := h.spotService.ListByOwner(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, spotsResponse{Spots: spots})
}

// GetSpot handles GET /api/spots/{spotId}
func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	spotID := chi.URLParam(r, "spotId")

	details, err := h.spotService.Get(r.Context(), spotID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}

// CreateSpot handles POST /api/spots
func (h *SpotHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var input services.SpotInput
	if !decodeBody(w, r, &input) {
		return
	}

	if fieldErrors := validation.Check(input); fieldErrors != nil {
		respondValidationErrors(w, fieldErrors)
		return
	}

	spot, err := h.spotService.Create(ctx, userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("spot_id", spot.ID).
		Msg("Spot created")

	respondJSON(w, http.StatusCreated, spot)
}

// UpdateSpot handles PUT /api/spots/{spotId}
func (h *SpotHandler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	spotID := chi.URLParam(r, "spotId")

	var input services.SpotInput
	if !decodeBody(w, r, &input) {
		return
	}

	spot, err := h.spotService.Update(ctx, userID, spotID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("spot_id", spot.ID).
		Msg("Spot updated")

	respondJSON(w, http.StatusOK, spot)
}

// DeleteSpot handles DELETE /api/spots/{spotId}
func (h *SpotHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	spotID := chi.URLParam(r, "spotId")

	if err := h.spotService.Delete(ctx, userID, spotID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("spot_id", spotID).
		Msg("Spot deleted")

	respondJSON(w, http.StatusOK, messageResponse{Message: "Successfully deleted", StatusCode: http.StatusOK})
}

// AddSpotImage handles POST /api/spots/{spotId}/images
func (h *SpotHandler) AddSpotImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	spotID := chi.URLParam(r, "spotId")

	var input services.ImageInput
	if !decodeBody(w, r, &input) {
		return
	}

	image, err := h.spotService.AddImage(ctx, userID, spotID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("spot_id", spotID).
		Str("image_id", image.ID).
		Msg("Spot image added")

	respondJSON(w, http.StatusOK, image)
}
