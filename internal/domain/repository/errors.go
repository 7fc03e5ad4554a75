package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist, including
	// products looked up outside the requesting merchant's shop.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned on unique-constraint violations
	// (username, one shop per merchant).
	ErrDuplicateKey = errors.New("duplicate key")
)
