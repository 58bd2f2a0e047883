// Package cryptox hashes and verifies account passwords with bcrypt.
package cryptox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsocial/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password in the modular crypt
// format ("$2a$10$..."), compatible with hashes written by other bcrypt
// implementations.
func HashPassword(password []byte) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword(password, Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword compares password with hash in constant time. A mismatch
// is reported as common.ErrInvalidCredential; a malformed hash is returned
// as-is.
func VerifyPassword(hash, password []byte) error {
	err := bcrypt.CompareHashAndPassword(hash, password)
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrInvalidCredential
	}
	return fmt.Errorf("verify password: %w", err)
}

// Wipe zeroes b. Use it on password buffers once they are no longer needed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
