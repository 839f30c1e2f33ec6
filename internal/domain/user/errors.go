package user

import "errors"

var (
	// ErrNotFound indicates the user doesn't exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidInput indicates invalid user input.
	ErrInvalidInput = errors.New("invalid user input")
)
