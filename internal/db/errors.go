package db

import "errors"

var (
	// ErrNotFound means the record does not exist or is not owned by the
	// acting user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("record not found")

	// ErrNoActiveTimer means a stop was requested while no timer runs.
	ErrNoActiveTimer = errors.New("no active timer found")

	// ErrEmailTaken means a registration reused an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidField means a create or update carried a value outside the
	// allowed status/priority sets.
	ErrInvalidField = errors.New("invalid field value")
)
