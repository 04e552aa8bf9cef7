package handlers

import (
	"net/http"

	"staybnb-backend/internal/middleware"
	"staybnb-backend/internal/models"
	"staybnb-backend/internal/services"
	"staybnb-backend/internal/validation"

	"github.com/rs/zerolog/log"
)

// SessionHandler handles signup, login, restore and logout
type SessionHandler struct {
	userService *services.UserService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(userService *services.UserService) *SessionHandler {
	return &SessionHandler{
		userService: userService,
	}
}

// LoginInput is the request body for logging in. The credential is a
// username or an email.
type LoginInput struct {
	Credential string `json:"credential" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// sessionUser is the identity shape exposed to the frontend
type sessionUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

type sessionResponse struct {
	User *sessionUser `json:"user"`
}

func newSessionUser(user *models.User) *sessionUser {
	return &sessionUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Username:  user.Username,
	}
}

// setTokenCookie issues a session token for the user and sets it as an
// httpOnly cookie
func (h *SessionHandler) setTokenCookie(w http.ResponseWriter, userID string) error {
	token, err := h.userService.GenerateJWT(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.userService.TokenLifetime().Seconds()),
	})
	return nil
}

// Signup handles POST /api/users
func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input services.SignupInput
	if !decodeBody(w, r, &input) {
		return
	}

	if fieldErrors := validation.Check(input); fieldErrors != nil {
		respondValidationErrors(w, fieldErrors)
		return
	}

	user, err := h.userService.Signup(ctx, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.setTokenCookie(w, user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session token")
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User signed up")

	respondJSON(w, http.StatusCreated, sessionResponse{User: newSessionUser(user)})
}

// Login handles POST /api/session
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input LoginInput
	if !decodeBody(w, r, &input) {
		return
	}

	if fieldErrors := validation.Check(input); fieldErrors != nil {
		respondValidationErrors(w, fieldErrors)
		return
	}

	user, err := h.userService.Login(ctx, input.Credential, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.setTokenCookie(w, user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session token")
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User logged in")

	respondJSON(w, http.StatusOK, sessionResponse{User: newSessionUser(user)})
}

// Restore handles GET /api/session. An anonymous or stale session yields
// {user: null}, never an error.
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middleware.GetUserID(ctx)
	if userID == "" {
		respondJSON(w, http.StatusOK, sessionResponse{User: nil})
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		respondJSON(w, http.StatusOK, sessionResponse{User: nil})
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse{User: newSessionUser(user)})
}

// Logout handles DELETE /api/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	respondJSON(w, http.StatusOK, struct{}{})
}
