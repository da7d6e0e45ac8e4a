package user

import (
	"regexp"
	"strings"

	"wheelshare/internal/pkg/errs"
)

var (
	ErrInvalidEmail       = errs.Define("invalid email format", errs.ErrValidation)
	ErrInvalidRole        = errs.Define("invalid role", errs.ErrValidation)
	ErrRoleNotRegistrable = errs.Define("role cannot be chosen at registration", errs.ErrValidation)
	ErrPasswordTooWeak    = errs.Define("password must be at least 8 characters long", errs.ErrValidation)
	ErrEmptyName          = errs.Define("name cannot be empty", errs.ErrValidation)
	ErrNameTooLong        = errs.Define("name is too long (max 100 characters)", errs.ErrValidation)
)

const MaxNameLength = 100

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type Password struct {
	value string
}

func NewPassword(s string) (Password, error) {
	if len(s) < 8 {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string {
	return p.value
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
