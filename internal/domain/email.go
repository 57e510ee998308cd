package domain

import (
	"net/mail"
	"strings"
)

// Email is a normalized (lowercased, trimmed) address.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return Email{}, NewInvalidEmailError(value)
	}

	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}
