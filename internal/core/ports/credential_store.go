package ports

import (
	"context"

	"github.com/labstack/echo/v4"
)

// CredentialStore owns both copies of the session credential: the cookie on
// the HTTP exchange and the mirrored persistent record. It is the only
// writer of either copy; Put and Clear always touch both, so the pair can
// never be partially applied.
type CredentialStore interface {
	// Put stores the credential in the cookie and the persistent mirror.
	Put(c echo.Context, token string) error

	// Clear removes the cookie and the persistent mirror in one operation.
	// Clearing an absent credential is a no-op, not an error.
	Clear(c echo.Context, token string) error

	// CookieToken returns the cookie copy of the credential, if present.
	CookieToken(c echo.Context) (string, bool)

	// MirrorExists reports whether the persistent copy of the credential
	// exists. A cookie without a mirror counts as unauthenticated.
	MirrorExists(ctx context.Context, token string) (bool, error)
}
