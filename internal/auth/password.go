package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 4096
	pbkdf2KeyLen     = 32
)

// PasswordHasher derives deterministic password digests keyed with a server
// secret. The same password and secret always produce the same digest, so
// login verification is a re-derivation plus constant-time compare.
type PasswordHasher struct {
	secret []byte
}

// NewPasswordHasher creates a hasher keyed with the given server secret.
func NewPasswordHasher(secret string) *PasswordHasher {
	return &PasswordHasher{secret: []byte(secret)}
}

// Hash derives the hex-encoded digest for a password.
func (h *PasswordHasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.secret, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// Verify reports whether password derives to the stored digest.
func (h *PasswordHasher) Verify(password, storedHash string) bool {
	derived := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1
}
