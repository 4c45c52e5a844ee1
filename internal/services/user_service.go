package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/userbase/userbase-be/internal/auth"
	"github.com/userbase/userbase-be/internal/models"
	"github.com/userbase/userbase-be/internal/store"
)

// UserServiceProvider defines the interface for user record management.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (models.PublicUser, error)
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	UpdateUser(ctx context.Context, id, name, email, password string) (models.PublicUser, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserService provides the CRUD surface around the credential store.
type UserService struct {
	store  *store.UserStore
	hasher *auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(userStore *store.UserStore, hasher *auth.PasswordHasher) *UserService {
	return &UserService{store: userStore, hasher: hasher}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.PublicUser, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.PublicUser{}, s.mapStoreError(err, "Failed to get user")
	}
	return user.Public(), nil
}

// ListUsers returns the public projection of every user.
func (s *UserService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "Failed to list users")
	}
	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// UpdateUser applies a partial update. Empty fields are left untouched;
// the password hash is re-derived only when a new password is supplied.
func (s *UserService) UpdateUser(ctx context.Context, id, name, email, password string) (models.PublicUser, error) {
	var patch models.UserPatch
	var problems []string

	if name != "" {
		trimmed, ok := validName(name)
		if !ok {
			problems = append(problems, "Name must be between 2 and 50 characters long")
		}
		patch.Name = &trimmed
	}
	if email != "" {
		normalized := normalizeEmail(email)
		if !validEmail(normalized) {
			problems = append(problems, "Please provide a valid email address")
		}
		patch.Email = &normalized
	}
	if password != "" && !validPassword(password) {
		problems = append(problems, "Password must be at least 6 characters long")
	}
	if len(problems) > 0 {
		return models.PublicUser{}, validationError(problems...)
	}

	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			log.Error().Err(err).Str("user_id", id).Msg("Failed to hash new password")
			return models.PublicUser{}, ErrInternal
		}
		patch.PasswordHash = &hash
	}

	user, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.PublicUser{}, s.mapStoreError(err, "Failed to update user")
	}
	return user.Public(), nil
}

// DeleteUser removes a user record.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.mapStoreError(err, "Failed to delete user")
	}
	return nil
}

// mapStoreError passes business errors through and collapses anything
// else to ErrInternal after logging it.
func (s *UserService) mapStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrInvalidID),
		errors.Is(err, store.ErrDuplicateEmail):
		return err
	default:
		log.Error().Err(err).Msg(msg)
		return ErrInternal
	}
}
