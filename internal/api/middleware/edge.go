package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/api/metrics"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

// Route surface seen by the edge gatekeeper. Skipped prefixes are not
// evaluated at all; everything else is classified as protected, auth-only,
// or public.
var (
	protectedPrefixes = []string{"/dashboard"}
	authPrefixes      = []string{"/login", "/register", "/verify-email"}
	skippedPrefixes   = []string{"/api", "/metrics", "/health", "/swagger", "/static", "/favicon.ico"}
)

// EdgeAction is the outcome of the edge decision procedure.
type EdgeAction int

const (
	EdgeAllow EdgeAction = iota
	EdgeRedirectLogin
	EdgeRedirectDashboard
)

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// DecideEdgeAction classifies a navigation using only the request path and
// whether a session credential cookie is present. It is deliberately pure:
// no identity fetch, no role knowledge. A role requires a round trip the
// edge cannot afford. The effectful redirect lives in EdgeGatekeeper.
func DecideEdgeAction(path string, hasCredential bool) EdgeAction {
	if matchesPrefix(path, skippedPrefixes) {
		return EdgeAllow
	}
	if matchesPrefix(path, protectedPrefixes) && !hasCredential {
		return EdgeRedirectLogin
	}
	if matchesPrefix(path, authPrefixes) && hasCredential {
		return EdgeRedirectDashboard
	}
	return EdgeAllow
}

// EdgeGatekeeper runs on every incoming request before any handler:
//   - protected path without a credential → redirect to sign-in, carrying
//     the original path as the return target;
//   - auth-only path with a credential → redirect to the dashboard so an
//     authenticated user never re-enters the auth funnel;
//   - anything else passes through untouched.
//
// Presence check only; the cookie value is never validated here.
func EdgeGatekeeper(store ports.CredentialStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			_, hasCredential := store.CookieToken(c)

			switch DecideEdgeAction(path, hasCredential) {
			case EdgeRedirectLogin:
				metrics.EdgeDecisionsTotal.WithLabelValues("redirect_login").Inc()
				q := url.Values{}
				q.Set("redirectedFrom", path)
				return c.Redirect(http.StatusSeeOther, "/login?"+q.Encode())
			case EdgeRedirectDashboard:
				metrics.EdgeDecisionsTotal.WithLabelValues("redirect_dashboard").Inc()
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			default:
				metrics.EdgeDecisionsTotal.WithLabelValues("pass").Inc()
				return next(c)
			}
		}
	}
}
