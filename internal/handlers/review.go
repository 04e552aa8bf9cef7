package handlers

import (
	"net/http"

	"staybnb-backend/internal/middleware"
	"staybnb-backend/internal/models"
	"staybnb-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// reviewsResponse wraps review listings
type reviewsResponse struct {
	Reviews []models.ReviewWithUser `json:"Reviews"`
}

// ListSpotReviews handles GET /api/spots/{spotId}/reviews
func (h *ReviewHandler) ListSpotReviews(w http.ResponseWriter, r *http.Request) {
	spotID := chi.URLParam(r, "spotId")

	reviews, err := h.reviewService.ListBySpot(r.Context(), spotID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reviewsResponse{Reviews: reviews})
}

// CreateReview handles POST /api/spots/{spotId}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	spotID := chi.URLParam(r, "spotId")

	var input services.ReviewInput
	if !decodeBody(w, r, &input) {
		return
	}

	review, err := h.reviewService.Create(ctx, userID, spotID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("spot_id", spotID).
		Str("review_id", review.ID).
		Msg("Review created")

	respondJSON(w, http.StatusCreated, review)
}

// UpdateReview handles PUT /api/reviews/{reviewId}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	reviewID := chi.URLParam(r, "reviewId")

	var input services.ReviewInput
	if !decodeBody(w, r, &input) {
		return
	}

	review, err := h.reviewService.Update(ctx, userID, reviewID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("review_id", review.ID).
		Msg("Review updated")

	respondJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{reviewId}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	reviewID := chi.URLParam(r, "reviewId")

	if err := h.reviewService.Delete(ctx, userID, reviewID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("review_id", reviewID).
		Msg("Review deleted")

	respondJSON(w, http.StatusOK, messageResponse{Message: "Successfully deleted", StatusCode: http.StatusOK})
}
