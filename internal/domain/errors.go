package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates the request was malformed or missing fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable indicates the backing store could not be reached in time.
	ErrUnavailable = errors.New("service unavailable")
)
