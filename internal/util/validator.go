package util

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

// ValidateUsername allows 3-32 letters, digits, '_', '.' or '-'.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is empty")
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-32 letters, digits, '_', '.' or '-'")
	}
	return nil
}

// ValidateEmail checks for a bare address such as user@example.com.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address")
	}
	if len(email) > 255 {
		return fmt.Errorf("email too long, max 255 characters")
	}
	return nil
}

// ValidatePassword enforces bcrypt's 72 byte input limit and a minimum length.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if len(password) > 72 {
		return fmt.Errorf("password too long, max 72 bytes")
	}
	return nil
}

// ValidateName checks a first or last name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long, max 64 characters")
	}
	return nil
}
