package auth

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// Conservative address grammar, adapted from the RFC 5322 addr-spec subset.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9_!#$%&'*+/=?`{|}~^.-]+@[a-zA-Z0-9.-]+$")

// ValidEmail reports whether email matches the accepted address grammar.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// StrongPassword reports whether password meets the minimum length rule.
func StrongPassword(password string, minLength int) bool {
	return len(password) >= minLength
}

// HashPassword hashes a plaintext password with configured cost. The output
// is one-way and fixed-length; the plaintext is never stored.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
