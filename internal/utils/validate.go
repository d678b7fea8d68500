package utils

// Field validation rules for registration, admin creation and rating
// submission. Each function returns nil or an error whose message is safe
// to surface to the client as-is; handlers respond with the first violation
// they hit.

import (
	"errors"
	"net/mail"
	"unicode"
)

var (
	errName      = errors.New("name must be between 2 and 60 characters")
	errStoreName = errors.New("store name must be between 2 and 120 characters")
	errAddress   = errors.New("address must be at most 400 characters")
	errEmail     = errors.New("invalid email address")
	errPassLen   = errors.New("password must be between 8 and 16 characters")
	errPassUpper = errors.New("password must include at least one uppercase letter")
	errPassSpec  = errors.New("password must include at least one special character")
	errRating    = errors.New("rating value must be an integer between 1 and 5")
)

// ValidateName checks a user display name (2–60 characters).
func ValidateName(name string) error {
	if n := len([]rune(name)); n < 2 || n > 60 {
		return errName
	}
	return nil
}

// ValidateStoreName checks a store name (2–120 characters).
func ValidateStoreName(name string) error {
	if n := len([]rune(name)); n < 2 || n > 120 {
		return errStoreName
	}
	return nil
}

// ValidateAddress checks an address (up to 400 characters, empty allowed).
func ValidateAddress(addr string) error {
	if len([]rune(addr)) > 400 {
		return errAddress
	}
	return nil
}

// ValidateEmail checks email syntax. mail.ParseAddress accepts the
// "Name <a@b>" form too, so require the parsed address to equal the input.
func ValidateEmail(email string) error {
	a, err := mail.ParseAddress(email)
	if err != nil || a.Address != email {
		return errEmail
	}
	return nil
}

// ValidatePassword enforces the password policy: 8–16 characters with at
// least one uppercase letter and one non-alphanumeric character.
func ValidatePassword(pw string) error {
	runes := []rune(pw)
	if len(runes) < 8 || len(runes) > 16 {
		return errPassLen
	}
	hasUpper, hasSpecial := false, false
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return errPassUpper
	}
	if !hasSpecial {
		return errPassSpec
	}
	return nil
}

// ValidateRatingValue checks a rating score is in [1,5].
func ValidateRatingValue(v int) error {
	if v < 1 || v > 5 {
		return errRating
	}
	return nil
}
