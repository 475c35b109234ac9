// Package password hashes and verifies user passwords with bcrypt.
// Hashes are salted by bcrypt itself; comparison is constant-time.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avasiliev/cadastral-service/internal/domain"
)

// Hash creates a bcrypt hash of the provided plaintext password.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password cannot be empty", domain.ErrValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", domain.ErrValidation)
		}
		return "", fmt.Errorf("password.Hash: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches a previously computed hash.
// A mismatch is not an error condition — callers decide how to respond.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
