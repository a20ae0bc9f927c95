// Package common defines shared constants and sentinel errors used across
// client and server layers of ClinicLink. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation failed")

	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired   = errors.New("token expired")
	ErrSessionExpired = errors.New("session expired")

	// Account state errors.
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrAccountPending     = errors.New("account pending approval")

	// MFA errors.
	ErrNoMFASession       = errors.New("no MFA session active")
	ErrMFACodeInvalid     = errors.New("invalid MFA code")
	ErrMFACodeExpired     = errors.New("MFA code expired")
	ErrMFATooManyAttempts = errors.New("too many MFA attempts")
)
