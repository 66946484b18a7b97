package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/api/middleware"
	"github.com/markethub/admin-gateway/internal/core/domain"
)

// ctxSession extracts the identity and credential injected by the session
// resolver and performs a fast-fail check before any service call: a
// missing profile means the resolver never ran on this route, which is a
// wiring error surfaced as 401 rather than a panic downstream.
func ctxSession(c echo.Context) (*domain.User, string, error) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}

	token := middleware.CurrentToken(c)
	if token == "" {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing session credential")
	}

	return profile, token, nil
}
