package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives a scrypt key from password with a fresh random salt.
// The result is encoded as hex(salt):hex(key).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	key, err := scrypt.Key([]byte(password), []byte(saltHex), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return saltHex + ":" + hex.EncodeToString(key), nil
}

// CheckPassword reports whether password matches a hash produced by HashPassword.
func CheckPassword(hashedPassword, password string) bool {
	saltHex, keyHex, ok := strings.Cut(hashedPassword, ":")
	if !ok || saltHex == "" || keyHex == "" {
		return false
	}

	expected, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	actual, err := scrypt.Key([]byte(password), []byte(saltHex), scryptN, scryptR, scryptP, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(actual, expected) == 1
}
