package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

// PasswordHasher wraps bcrypt hashing for principal secrets. Hashing runs
// exactly once per secret write (user creation, password change), never on
// read.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted digest from the plaintext secret. Empty secrets
// are rejected.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", domain.ErrInvalidCredentials
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored digest. bcrypt performs
// the comparison in constant time.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
