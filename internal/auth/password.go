package auth

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor for password hashing.
const HashCost = 10

// PasswordHasher produces and verifies salted one-way password hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: HashCost}
}

// Hash generates a bcrypt hash of the given plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the plaintext password matches the hash.
// bcrypt's comparison is constant time with respect to the hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
