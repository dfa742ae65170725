// Package common contains shared constants, sentinel errors, and random
// helpers used across accountd components. Callers should use errors.Is to
// match the sentinel values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Account lifecycle errors. Each maps to a fixed client-facing status
	// at the HTTP boundary; the message never varies per request.
	ErrUserNotFound            = errors.New("user not found")
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrUserAlreadyActivated    = errors.New("user already activated")
	ErrUserNotActivated        = errors.New("user not activated")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")

	// Auth errors (invalid, expired, malformed, or wrong-type token).
	ErrInvalidToken = errors.New("invalid token")

	// Validation errors (bad input shape, not a lifecycle violation).
	ErrValidation = errors.New("validation error")

	// Service-level errors (unclassified lower-level failures).
	ErrorInternal = errors.New("internal error")
)
