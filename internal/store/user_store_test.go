package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/userbase/userbase-be/internal/database"
	"github.com/userbase/userbase-be/internal/models"
)

func newTestStore(t *testing.T) (*UserStore, *sql.DB) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewUserStore(db), db
}

func testUser(email string) models.User {
	return models.User{
		ID:           uuid.New().String(),
		Name:         "Ada Lovelace",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
}

func TestUserStore_CreateAndFind(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	byEmail, err := s.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "$2a$10$fakefakefakefakefakefake", byEmail.PasswordHash)

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)

	_, err = s.Create(ctx, testUser("ada@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserStore_ConcurrentDuplicateRegistrations(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Create(ctx, testUser("race@example.com"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent registration may succeed")
}

func TestUserStore_FindErrors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.FindByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_PartialUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)

	name := "Ada King"
	updated, err := s.Update(ctx, created.ID, models.UserPatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	hash := "$2a$10$anotherfakehashvalue"
	updated, err = s.Update(ctx, created.ID, models.UserPatch{PasswordHash: &hash})
	require.NoError(t, err)
	assert.Equal(t, hash, updated.PasswordHash)
	assert.Equal(t, "Ada King", updated.Name)
}

func TestUserStore_UpdateErrors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)
	_, err = s.Create(ctx, testUser("grace@example.com"))
	require.NoError(t, err)

	// Moving onto an email someone else holds violates the index.
	email := "grace@example.com"
	_, err = s.Update(ctx, first.ID, models.UserPatch{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = s.Update(ctx, "not-a-uuid", models.UserPatch{})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.Update(ctx, uuid.New().String(), models.UserPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_Delete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrInvalidID)
}

func TestUserStore_CorruptTimestampStillLoads(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "UPDATE users SET created_at = 'garbage' WHERE id = ?", created.ID)
	require.NoError(t, err)

	// The row loads rather than erroring; the bad column reads as the
	// zero time and the intact one survives.
	got, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestUserStore_List(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Create(ctx, testUser("ada@example.com"))
	require.NoError(t, err)
	_, err = s.Create(ctx, testUser("grace@example.com"))
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	emails := []string{list[0].Email, list[1].Email}
	assert.ElementsMatch(t, []string{"ada@example.com", "grace@example.com"}, emails)
}
