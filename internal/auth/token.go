package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the token's expiry is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned when the token cannot be decoded at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenInvalidSignature is returned when the signature does not verify.
	ErrTokenInvalidSignature = errors.New("invalid token signature")
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed session tokens. The secret
// is read-only after construction, so the service is safe for
// concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed token for the given user id, expiring at
// issuance time plus the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate checks a token and returns its claims, or one of
// ErrTokenExpired, ErrTokenMalformed, ErrTokenInvalidSignature.
//
// Expiry is checked on the decoded payload before signature
// verification: an expired token reports expiry even when it has also
// been tampered with, which the library's verify-then-validate order
// would otherwise mask.
func (s *TokenService) Validate(tokenStr string) (*Claims, error) {
	unverified, err := DecodeUnverified(tokenStr)
	if err != nil {
		return nil, ErrTokenMalformed
	}
	if unverified.ExpiresAt != nil && unverified.ExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return s.secret, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenInvalidSignature
	default:
		return nil, ErrTokenMalformed
	}
}

// DecodeUnverified decodes a token's payload without checking the
// signature. Used for client-side expiry pre-checks and display; the
// result must never be trusted for authentication.
func DecodeUnverified(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
