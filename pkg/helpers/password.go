package helpers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// legacyDigest matches the unsalted hex SHA-256 digests written by the
// previous version of the service.
var legacyDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

// prehash folds a password of any length into 44 bytes, below bcrypt's
// 72-byte input limit.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a stored hash with a plain password.
// Legacy SHA-256 digests are still accepted so old accounts can log in.
func CompareHashAndPassword(hash string, plain string) bool {
	if hash == "" {
		return false
	}
	if IsLegacyDigest(hash) {
		sum := sha256.Sum256([]byte(plain))
		return subtle.ConstantTimeCompare([]byte(hash), []byte(hex.EncodeToString(sum[:]))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)) == nil
}

// IsLegacyDigest reports whether hash is an unsalted SHA-256 hex digest.
func IsLegacyDigest(hash string) bool {
	return legacyDigest.MatchString(hash)
}
