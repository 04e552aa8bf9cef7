package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybnb-backend/internal/models"
	"staybnb-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const jwtExpDays = 7

// UserStore is the persistence interface consumed by UserService
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByCredential(ctx context.Context, credential string) (*models.User, error)
}

// UserService handles signup, login and session tokens
type UserService struct {
	userStore UserStore
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userStore UserStore, jwtSecret string) *UserService {
	return &UserService{
		userStore: userStore,
		jwtSecret: jwtSecret,
	}
}

// SignupInput is the payload for creating a user
type SignupInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=4,excludes=@"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Signup creates a new user with a bcrypt-hashed password
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New().String(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Username:       input.Username,
		HashedPassword: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies a credential (username or email) and password
func (s *UserService) Login(ctx context.Context, credential, password string) (*models.User, error) {
	user, err := s.userStore.GetByCredential(ctx, credential)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GenerateJWT generates a session token for a user
func (s *UserService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a session token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}

// TokenLifetime returns how long issued session tokens remain valid
func (s *UserService) TokenLifetime() time.Duration {
	return time.Duration(jwtExpDays) * 24 * time.Hour
}
