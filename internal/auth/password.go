package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count for new records.
	// Existing records carry their own count, so this can be raised without
	// invalidating stored credentials.
	DefaultIterations = 100_000

	saltLength = 16
	keyLength  = 32
)

// hashPassword derives a hex-encoded PBKDF2-HMAC-SHA256 key from the
// password and salt.
func hashPassword(password string, salt []byte, iterations int) string {
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}

// newSalt returns a fresh random salt.
func newSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// verifyHash recomputes the hash with the stored parameters and compares in
// constant time.
func verifyHash(password, storedHash, saltHex string, iterations int) (bool, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	computed := hashPassword(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1, nil
}
