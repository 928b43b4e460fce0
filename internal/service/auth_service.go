package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwarren/todoapp/internal/auth"
	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/models"
	"github.com/mwarren/todoapp/internal/storage"
	"github.com/mwarren/todoapp/internal/validation"
)

// AuthService implements registration and login. Both return the same
// result shape: the public user plus a freshly signed bearer token.
type AuthService struct {
	users storage.UserStore
	jwt   *auth.JWTManager
	log   *logger.Logger
}

type AuthResult struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

func NewAuthService(users storage.UserStore, jwt *auth.JWTManager, log *logger.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, models.NewValidationError("Please provide name, email, and password")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !validation.IsValidEmail(email) {
		return nil, models.NewValidationError("Please provide a valid email")
	}

	if ok, msg := validation.ValidatePassword(password); !ok {
		return nil, models.NewValidationError(msg)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check existing user: %v", err)
		return nil, models.NewServerError("Failed to register user")
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists with this email")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password: %v", err)
		return nil, models.NewServerError("Failed to register user")
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The existence check above is not atomic with the insert; the
		// store's unique constraint is the real guarantee.
		if err == storage.ErrDuplicateEmail {
			return nil, models.NewValidationError("User already exists with this email")
		}
		s.log.Error("Failed to create user: %v", err)
		return nil, models.NewServerError("Failed to register user")
	}

	token, _, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		s.log.Error("Failed to generate token: %v", err)
		return nil, models.NewServerError("Failed to register user")
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Please provide email and password")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to get user: %v", err)
		return nil, models.NewServerError("Failed to log in")
	}
	// Unknown email and wrong password produce the same response, so the
	// error text never confirms whether an account exists.
	if user == nil {
		return nil, models.NewAuthError("Invalid credentials")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, models.NewAuthError("Invalid credentials")
	}

	token, _, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		s.log.Error("Failed to generate token: %v", err)
		return nil, models.NewServerError("Failed to log in")
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}
