package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/userbase/userbase-be/internal/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

// UserStore persists user records in SQLite. Email uniqueness is
// enforced by the unique index, so concurrent conflicting writes lose
// with ErrDuplicateEmail instead of racing.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user record, stamping creation and update times.
func (s *UserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByEmail retrieves a user by email, including the password hash.
// The caller is responsible for normalizing the email first.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

// FindByID retrieves a user by id.
func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrInvalidID
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// List returns all users, oldest first.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var created, updated string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt, u.UpdatedAt = parseTime(created), parseTime(updated)
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies a partial patch to a user. Nil patch fields are left
// untouched; updated_at always advances.
func (s *UserStore) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.User{}, ErrInvalidID
	}

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now().UTC())}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *patch.PasswordHash)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return models.User{}, ErrNotFound
	}
	return s.FindByID(ctx, id)
}

// Delete removes a user by id.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var created, updated string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt, u.UpdatedAt = parseTime(created), parseTime(updated)
	return u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// parseTime falls back to the zero time for an unreadable timestamp so
// a corrupted row still loads, but the corruption is logged.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Warn().Err(err).Str("value", s).Msg("Corrupt timestamp in users table")
		return time.Time{}
	}
	return t
}
