package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (duplicate registration, duplicate key).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized indicates missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable indicates the remote commerce API could not be reached.
	ErrUnavailable = errors.New("commerce api unavailable")
)
