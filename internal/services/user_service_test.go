package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userbase/userbase-be/internal/auth"
	"github.com/userbase/userbase-be/internal/database"
	"github.com/userbase/userbase-be/internal/models"
	"github.com/userbase/userbase-be/internal/store"
)

func newTestUserService(t *testing.T) (*UserService, *AuthService) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	userStore := store.NewUserStore(db)
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewUserService(userStore, hasher), NewAuthService(userStore, hasher, tokens)
}

func registerTestUser(t *testing.T, authService *AuthService) models.PublicUser {
	t.Helper()
	user, err := authService.Register(context.Background(), "Ada Lovelace", "ada@example.com", "secret1")
	require.NoError(t, err)
	return user
}

func TestUserService_GetAndList(t *testing.T) {
	users, authService := newTestUserService(t)
	ctx := context.Background()
	registered := registerTestUser(t, authService)

	got, err := users.GetUserByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, got.Email)

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, registered.ID, list[0].ID)

	_, err = users.GetUserByID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = users.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserService_UpdateNameOnly(t *testing.T) {
	users, authService := newTestUserService(t)
	ctx := context.Background()
	registered := registerTestUser(t, authService)

	updated, err := users.UpdateUser(ctx, registered.ID, "Ada King", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, registered.Email, updated.Email)

	// Password untouched, login still works with the original one.
	_, _, err = authService.Login(ctx, "ada@example.com", "secret1")
	assert.NoError(t, err)
}

func TestUserService_UpdatePasswordRehashes(t *testing.T) {
	users, authService := newTestUserService(t)
	ctx := context.Background()
	registered := registerTestUser(t, authService)

	_, err := users.UpdateUser(ctx, registered.ID, "", "", "newsecret")
	require.NoError(t, err)

	_, _, err = authService.Login(ctx, "ada@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login(ctx, "ada@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestUserService_UpdateValidation(t *testing.T) {
	users, authService := newTestUserService(t)
	ctx := context.Background()
	registered := registerTestUser(t, authService)

	var vErr *ValidationError

	_, err := users.UpdateUser(ctx, registered.ID, "A", "", "")
	assert.ErrorAs(t, err, &vErr)

	_, err = users.UpdateUser(ctx, registered.ID, "", "bogus", "")
	assert.ErrorAs(t, err, &vErr)

	_, err = users.UpdateUser(ctx, registered.ID, "", "", "123")
	assert.ErrorAs(t, err, &vErr)
}

func TestUserService_UpdateNormalizesEmail(t *testing.T) {
	users, authService := newTestUserService(t)
	ctx := context.Background()
	registered := registerTestUser(t, authService)

	updated, err := users.UpdateUser(ctx, registered.ID, "", " New@Example.COM ", "")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUserService_Delete(t *testing.T) {
	users, authService := newTestUserService(t)
	ctx := context.Background()
	registered := registerTestUser(t, authService)

	require.NoError(t, users.DeleteUser(ctx, registered.ID))

	err := users.DeleteUser(ctx, registered.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = users.GetUserByID(ctx, registered.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
