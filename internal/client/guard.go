package client

import (
	"time"

	"github.com/userbase/userbase-be/internal/auth"
)

// Guard decides whether a protected view may render. The token is
// checked by decoding only; the signature belongs to the server and
// cannot be verified here.
type Guard struct {
	store *SessionStore
}

// NewGuard creates a Guard over the given session store.
func NewGuard(store *SessionStore) *Guard {
	return &Guard{store: store}
}

// Check returns the current session and whether protected content may
// be shown. When the session is missing, undecodable or expired, the
// stored session is cleared and the caller should redirect to login.
func (g *Guard) Check(now time.Time) (Session, bool) {
	session := g.store.Load()
	if session.Empty() {
		g.store.Clear()
		return Session{}, false
	}

	claims, err := auth.DecodeUnverified(session.Token)
	if err != nil {
		g.store.Clear()
		return Session{}, false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		g.store.Clear()
		return Session{}, false
	}

	return session, true
}

// Logout discards the stored session.
func (g *Guard) Logout() error {
	return g.store.Clear()
}

// DisplayClaims decodes a token's payload for presentation, returning
// nil for anything undecodable rather than failing the render.
func DisplayClaims(token string) *auth.Claims {
	claims, err := auth.DecodeUnverified(token)
	if err != nil {
		return nil
	}
	return claims
}
