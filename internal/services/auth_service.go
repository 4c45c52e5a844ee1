package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/userbase/userbase-be/internal/auth"
	"github.com/userbase/userbase-be/internal/models"
	"github.com/userbase/userbase-be/internal/store"
)

// AuthServiceProvider defines the interface for registration and login.
type AuthServiceProvider interface {
	Register(ctx context.Context, name, email, password string) (models.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, models.PublicUser, error)
}

// AuthService orchestrates registration and login over the store, the
// password hasher and the token service.
type AuthService struct {
	store  *store.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userStore *store.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{store: userStore, hasher: hasher, tokens: tokens}
}

// Register validates the input, hashes the password and persists the
// new user, returning the public projection.
//
// A duplicate email is reported as such. That reveals account
// existence, while Login stays generic; the asymmetry follows the
// registration UX and is intentional.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return models.PublicUser{}, validationError("Please provide name, email, and password")
	}

	name, nameOK := validName(name)
	email = normalizeEmail(email)

	var problems []string
	if !nameOK {
		problems = append(problems, "Name must be between 2 and 50 characters long")
	}
	if !validEmail(email) {
		problems = append(problems, "Please provide a valid email address")
	}
	if !validPassword(password) {
		problems = append(problems, "Password must be at least 6 characters long")
	}
	if len(problems) > 0 {
		return models.PublicUser{}, validationError(problems...)
	}

	// Early duplicate check for a friendly error; the unique index
	// still decides the winner when two registrations race.
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return models.PublicUser{}, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Msg("Failed to check email uniqueness")
		return models.PublicUser{}, ErrInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		return models.PublicUser{}, ErrInternal
	}

	user, err := s.store.Create(ctx, models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.PublicUser{}, store.ErrDuplicateEmail
		}
		log.Error().Err(err).Msg("Failed to create user")
		return models.PublicUser{}, ErrInternal
	}

	return user.Public(), nil
}

// Login verifies the credentials and issues a session token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", models.PublicUser{}, validationError("Please provide email and password")
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", models.PublicUser{}, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("Failed to look up user for login")
		return "", models.PublicUser{}, ErrInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue session token")
		return "", models.PublicUser{}, ErrInternal
	}

	return token, user.Public(), nil
}
