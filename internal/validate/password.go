package validate

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Iterated SHA-512 password hashing parameters. The iteration count is fixed
// and high; it is recorded in the encoded hash so it can be raised later
// without invalidating stored credentials.
const (
	hashScheme     = "pbkdf2_sha512"
	hashIterations = 90000
	hashSaltBytes  = 16
	hashKeyBytes   = 64
)

// HashPassword derives a salted hash from a raw password. The result is
// self-describing: scheme$iterations$salt$key, all base64 where binary.
func HashPassword(raw string) (string, error) {
	salt := make([]byte, hashSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(raw), salt, hashIterations, hashKeyBytes, sha512.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		hashScheme,
		hashIterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether raw verifies against an encoded hash
// produced by HashPassword.
func VerifyPassword(raw, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != hashScheme {
		return false
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}
	candidate := pbkdf2.Key([]byte(raw), salt, iterations, len(key), sha512.New)
	return subtle.ConstantTimeCompare(candidate, key) == 1
}
