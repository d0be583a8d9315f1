package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

// bcryptCost is fixed so hashing stays expensive enough to slow brute force
// while keeping login latency predictable.
const bcryptCost = 12

// HashPassword derives a salted one-way hash from a plaintext password.
// Empty input is rejected; everything else is the algorithm's business.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches hash, using the library's
// constant-time comparison. Never compare password material with string
// equality.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
