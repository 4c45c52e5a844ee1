// Package client holds the pieces that live on the consuming side of
// the API: the locally stored session, the guard that gates protected
// views, and the email-availability probe used during registration.
package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/userbase/userbase-be/internal/models"
)

// Session is the locally held login state: the bearer token and the
// public projection of the logged-in user.
type Session struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user,omitempty"`
}

// Empty reports whether either half of the session is missing.
func (s Session) Empty() bool {
	return s.Token == "" || s.User == nil
}

// SessionStore persists the session to a single JSON file. It is the
// explicit replacement for ambient browser storage: everything that
// needs the session asks the store.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore creates a store backed by the given file path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load reads the stored session. A missing file is an empty session,
// not an error; a corrupt file is treated the same way so a bad write
// can never lock the user out of the login screen.
func (s *SessionStore) Load() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}
	}
	return session
}

// Save writes the session to disk, readable by the owner only.
func (s *SessionStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the stored session. Clearing an absent session is a
// no-op.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
