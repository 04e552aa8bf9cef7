package handlers

import (
	"staybnb-backend/internal/middleware"
	"staybnb-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the API routes. Every /api request passes through the
// session-restoring middleware; mutating groups additionally require an
// authenticated identity.
func NewRouter(
	userService *services.UserService,
	sessionHandler *SessionHandler,
	spotHandler *SpotHandler,
	reviewHandler *ReviewHandler,
	bookingHandler *BookingHandler,
) chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(userService))

		// Session bridge
		r.Post("/users", sessionHandler.Signup)
		r.Post("/session", sessionHandler.Login)
		r.Get("/session", sessionHandler.Restore)
		r.Delete("/session", sessionHandler.Logout)

		// Public reads
		r.Get("/spots", spotHandler.ListSpots)
		r.Get("/spots/{spotId}", spotHandler.GetSpot)
		r.Get("/spots/{spotId}/reviews", reviewHandler.ListSpotReviews)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/spots/current", spotHandler.ListCurrentUserSpots)
			r.Post("/spots", spotHandler.CreateSpot)
			r.Put("/spots/{spotId}", spotHandler.UpdateSpot)
			r.Delete("/spots/{spotId}", spotHandler.DeleteSpot)
			r.Post("/spots/{spotId}/images", spotHandler.AddSpotImage)
			r.Post("/spots/{spotId}/reviews", reviewHandler.CreateReview)
			r.Put("/reviews/{reviewId}", reviewHandler.UpdateReview)
			r.Delete("/reviews/{reviewId}", reviewHandler.DeleteReview)
			r.Get("/bookings/current", bookingHandler.ListCurrentUserBookings)
			r.Post("/spots/{spotId}/bookings", bookingHandler.CreateBooking)
			r.Delete("/bookings/{bookingId}", bookingHandler.DeleteBooking)
		})
	})

	return r
}
