// Package common defines sentinel errors and small helpers shared by the
// storage, account and presentation layers of notekeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrCapacityExceeded = errors.New("file is too large for storage, try a smaller file or free some space")
	ErrCorruptIndex     = errors.New("file index is corrupt")

	// File lookup errors.
	ErrNotFound       = errors.New("file not found")
	ErrContentMissing = errors.New("file content not found")

	// Account errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLastAdminProtected = errors.New("cannot remove the last administrator")
	ErrCorruptAccounts    = errors.New("account list is corrupt")
	ErrIncompleteAccount  = errors.New("username and password are required")

	// Presentation-level gating.
	ErrorUnauthorized = errors.New("unauthorized")
)
