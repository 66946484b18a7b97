package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/api/metrics"
	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

// Context keys set by ResolveSession and read by the guard and handlers.
const (
	ctxProfileKey = "session_profile"
	ctxTokenKey   = "session_token"
)

// CurrentProfile returns the identity resolved for this request, if any.
func CurrentProfile(c echo.Context) (*domain.User, bool) {
	p, ok := c.Get(ctxProfileKey).(*domain.User)
	return p, ok && p != nil
}

// CurrentToken returns the session credential attached to this request.
func CurrentToken(c echo.Context) string {
	t, _ := c.Get(ctxTokenKey).(string)
	return t
}

// ResolveSession resolves the caller's identity exactly once per request and
// caches it in the request context for everything downstream.
//
// Failure handling follows the session taxonomy:
//   - no cookie, or a cookie without its persistent mirror → redirect to
//     sign-in without calling the profile endpoint;
//   - profile fetch rejected (401, transport, malformed) → both credential
//     copies are cleared and the caller is redirected to sign-in;
//   - a later 401 from any authenticated call surfaces from the handler as
//     domain.ErrSessionInvalid, and the credential pair is cleared here on
//     the way out.
func ResolveSession(store ports.CredentialStore, resolver ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := store.CookieToken(c)
			if !ok {
				metrics.SessionResolutionsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			mirrored, err := store.MirrorExists(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if !mirrored {
				// Half a credential pair is no credential. Clear the
				// cookie so the edge sees the same state we do.
				metrics.SessionResolutionsTotal.WithLabelValues("unauthenticated").Inc()
				_ = store.Clear(c, token)
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			profile, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				metrics.SessionResolutionsTotal.WithLabelValues("invalid").Inc()
				_ = store.Clear(c, token)
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			metrics.SessionResolutionsTotal.WithLabelValues("resolved").Inc()

			c.Set(ctxProfileKey, profile)
			c.Set(ctxTokenKey, token)

			err = next(c)
			if errors.Is(err, domain.ErrSessionInvalid) {
				// The session died mid-request (401 on an authenticated
				// call). Destroy the pair before the error is rendered.
				_ = store.Clear(c, token)
			}
			return err
		}
	}
}
