package services

import "net/http"

// Error is a domain error carrying the HTTP status and message the API
// contract requires for it.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrSpotNotFound    = &Error{Message: "Spot couldn't be found", StatusCode: http.StatusNotFound}
	ErrReviewNotFound  = &Error{Message: "Review couldn't be found", StatusCode: http.StatusNotFound}
	ErrBookingNotFound = &Error{Message: "Booking couldn't be found", StatusCode: http.StatusNotFound}
	ErrUserNotFound    = &Error{Message: "User couldn't be found", StatusCode: http.StatusNotFound}

	ErrForbidden          = &Error{Message: "Forbidden", StatusCode: http.StatusForbidden}
	ErrDuplicateReview    = &Error{Message: "User already has a review for this spot", StatusCode: http.StatusForbidden}
	ErrUserExists         = &Error{Message: "User already exists", StatusCode: http.StatusForbidden}
	ErrInvalidCredentials = &Error{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// ValidationError reports payload rule violations as a field-to-message
// map covering every failed rule, never just the first.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation error"
}

// Authorize decides whether the current user may mutate a resource owned
// by ownerID. Pure ownership check; authentication is enforced earlier by
// the middleware with a distinct 401.
func Authorize(currentUserID, ownerID string) error {
	if currentUserID != ownerID {
		return ErrForbidden
	}
	return nil
}
