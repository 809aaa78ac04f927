// Package auth provides credential hashing and bearer token primitives.
package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher produces salted one-way password digests and verifies
// plaintexts against them.
type PasswordHasher interface {
	// Hash produces a salted digest of the password. Two calls with the same
	// plaintext yield different digests; both verify.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the digest. Malformed
	// digests verify as false, never as an error.
	Verify(password, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt at the default cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword(preDigest(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), preDigest(password)) == nil
}

// preDigest folds the password to a fixed 44 bytes so inputs longer than
// bcrypt's 72-byte limit hash instead of erroring.
func preDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
