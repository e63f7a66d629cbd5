package client

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyFirstName = errors.New("first name cannot be empty")
	ErrEmptyLastName  = errors.New("last name cannot be empty")
	ErrInvalidPhone   = errors.New("phone must be 8-20 digits or '+'")
)

var phoneRegex = regexp.MustCompile(`^[0-9+]{8,20}$`)

// GuestProfile is what the guest quick-registration form collects.
type GuestProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (p GuestProfile) Normalize() GuestProfile {
	return GuestProfile{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Phone:     strings.TrimSpace(p.Phone),
	}
}

// Validate checks a normalised profile.
func (p GuestProfile) Validate() error {
	if p.FirstName == "" {
		return ErrEmptyFirstName
	}
	if p.LastName == "" {
		return ErrEmptyLastName
	}
	if !IsValidPhone(p.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}
