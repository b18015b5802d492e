// Package common defines shared sentinel errors and small helpers used across
// the Vigil client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Keyring / secure tier errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Session errors (invalid, expired or malformed access token).
	ErrInvalidToken = errors.New("invalid token")

	// Preference errors.
	ErrUnknownPreference = errors.New("unknown preference")
	ErrInvalidPreference = errors.New("invalid preference value")
)
