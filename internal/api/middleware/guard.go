package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/api/metrics"
	"github.com/markethub/admin-gateway/internal/core/domain"
)

const ctxRoleParamKey = "validated_role_param"

// RoleParam returns the role path parameter validated by ValidateRoleParam.
func RoleParam(c echo.Context) domain.Role {
	r, _ := c.Get(ctxRoleParamKey).(domain.Role)
	return r
}

// denialResponse is the access-denied view: an explanation plus an explicit
// affordance back to the landing route. Role denial is a user-recoverable
// state, so unlike the edge gatekeeper this never redirects.
type denialResponse struct {
	Error string `json:"error"`
	Home  string `json:"home"`
}

// Guard enforces the role authorization table for one route category. It
// must run after ResolveSession; role-scoped handlers and their upstream
// data requests only execute once the guard has granted access.
func Guard(category domain.Category) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile, ok := CurrentProfile(c)
			if !ok {
				// The resolver did not run; treat as unauthenticated
				// rather than guessing at a role.
				return domain.ErrUnauthenticated
			}

			if !domain.CanAccess(profile.Role, category) {
				metrics.GuardDecisionsTotal.WithLabelValues(string(category), "denied").Inc()
				return c.JSON(http.StatusForbidden, denialResponse{
					Error: "You do not have permission to view this page.",
					Home:  "/dashboard",
				})
			}

			metrics.GuardDecisionsTotal.WithLabelValues(string(category), "granted").Inc()
			return next(c)
		}
	}
}

// ValidateRoleParam checks a role path parameter against the closed role
// set. Validation is independent of the authorization decision: an unknown
// role is "invalid role specified" (400), never conflated with the guard's
// 403. Runs after Guard so a denied caller learns nothing about the
// parameter space.
func ValidateRoleParam(category domain.Category, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := domain.ParseRole(c.Param(param))
			if err != nil {
				if errors.Is(err, domain.ErrInvalidRole) {
					metrics.GuardDecisionsTotal.WithLabelValues(string(category), "invalid_role").Inc()
				}
				return err
			}
			c.Set(ctxRoleParamKey, role)
			return next(c)
		}
	}
}
