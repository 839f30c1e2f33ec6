package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNoMatch is returned when a conditional update's predicate did not
	// hold against the current stored state
	ErrNoMatch = errors.New("conditional update matched nothing")

	// ErrDuplicate is returned when a uniqueness constraint rejects a write
	ErrDuplicate = errors.New("duplicate entity")

	// ErrUnavailable is returned when the store is transiently unreachable
	// or a bounded operation timed out
	ErrUnavailable = errors.New("store unavailable")
)
