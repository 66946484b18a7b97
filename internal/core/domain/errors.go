package domain

import "errors"

// Sentinel errors shared across the service and handler layers. The HTTP
// error handler maps each to a deterministic status code.
var (
	// ErrUnauthenticated: no session credential at a protected boundary.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrSessionInvalid: a credential was present but the upstream rejected
	// it (expired or revoked). Both credential copies must already have
	// been cleared by the time this error surfaces.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrInvalidCredentials: login rejected by the upstream.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccessDenied: the resolved role is not granted the route category.
	// Never triggers credential destruction and never redirects.
	ErrAccessDenied = errors.New("access denied")

	ErrUserNotFound = errors.New("user not found")

	// ErrVerificationExpired: the email verification token is invalid or
	// has expired (upstream 400/410).
	ErrVerificationExpired = errors.New("verification token invalid or expired")

	// ErrUpstream: the marketplace API could not be reached or returned an
	// unexpected response.
	ErrUpstream = errors.New("upstream service error")
)
