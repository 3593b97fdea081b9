// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameInvalid = errors.New("username invalid")
)

// Username identifies one connected user for the lifetime of a session.
// Comparison is case-sensitive.
type Username string

var validate = validator.New()

type usernameCandidate struct {
	Name string `validate:"required,max=36,excludesall=0x20,printascii"`
}

// ParseUsername validates a raw login line and returns it as a Username.
// The caller is expected to have trimmed surrounding whitespace already.
func ParseUsername(raw string) (Username, error) {
	if len(raw) == 0 {
		return "", ErrUsernameEmpty
	}
	if len(raw) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	if err := validate.Struct(usernameCandidate{Name: raw}); err != nil {
		return "", ErrUsernameInvalid
	}
	return Username(raw), nil
}
