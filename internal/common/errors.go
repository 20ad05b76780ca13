// Package common defines shared constants and sentinel errors used across
// server and client layers of gophauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Directory-level errors.
	ErrorDuplicateUsername = errors.New("username already exists")
	ErrorCredentialHashing = errors.New("credential hashing failure")
	ErrorInvalidInput      = errors.New("invalid input")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized covers unknown user, wrong password and unknown or
	// revoked session tokens alike.
	ErrorUnauthorized = errors.New("unauthorized")

	// Admin token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
