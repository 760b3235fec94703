// Package services contains the business logic layer between the HTTP
// handlers and the repositories.
package services

import "errors"

// Sentinel errors returned by the service layer. The API layer maps them to
// HTTP status codes.
var (
	// ErrNotFound is returned when a requested record does not exist or is
	// not visible to the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("record already exists")

	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrEmailNotConfirmed is returned on login before email verification.
	ErrEmailNotConfirmed = errors.New("email address not confirmed")

	// ErrInvalidToken is returned when a token fails validation for any
	// reason: bad signature, expiry, or wrong scope.
	ErrInvalidToken = errors.New("invalid or expired token")
)
