package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// DashboardHandler serves the authenticated landing and profile view
// models. Navigation links come straight from the authorization table, so
// what a role can see and what it can reach are the same decision.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Profile  *domain.User     `json:"profile"`
	Links    []domain.NavLink `json:"links"`
}

type profileResponse struct {
	Profile     *domain.User `json:"profile"`
	DisplayName string       `json:"displayName"`
	Initials    string       `json:"initials"`
}

func dashboardSubtitle(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "Manage platform users and their roles from here."
	case domain.RoleManager:
		return "Oversee market operations, listings, and related activities."
	default:
		return "You have access to the platform. Specific dashboard features for your role may be limited or under development."
	}
}

// Landing renders the default authenticated landing view.
//
// @Summary      Dashboard landing
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Landing(c echo.Context) error {
	profile, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Title:    domain.HubTitle(profile.Role),
		Subtitle: dashboardSubtitle(profile.Role),
		Profile:  profile,
		Links:    domain.NavLinksFor(profile.Role),
	})
}

// Profile renders the caller's own profile.
//
// @Summary      Own profile
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/profile [get]
func (h *DashboardHandler) Profile(c echo.Context) error {
	profile, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Profile:     profile,
		DisplayName: profile.FullName(),
		Initials:    profile.Initials(),
	})
}
