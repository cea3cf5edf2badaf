package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	hashIter   = 1000
	hashKeyLen = 64
)

// HashPassword derives a PBKDF2-SHA512 hash from the password with a random
// salt and returns it as a single "salt:hash" string.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)

	hash := pbkdf2.Key([]byte(password), []byte(saltHex), hashIter, hashKeyLen, sha512.New)
	return saltHex + ":" + hex.EncodeToString(hash), nil
}

// CheckPassword re-derives the hash with the stored salt and compares in
// constant time.
func CheckPassword(password, stored string) bool {
	saltHex, hashHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(saltHex), hashIter, hashKeyLen, sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail 验证邮箱格式
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}
