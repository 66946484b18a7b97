package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// MarketsHandler serves the market-management area. There is no upstream
// market endpoint yet; the view model is the guarded shell the market
// tooling will grow into.
type MarketsHandler struct{}

func NewMarketsHandler() *MarketsHandler {
	return &MarketsHandler{}
}

type marketsResponse struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Manager  *domain.User `json:"manager"`
	Sections []string     `json:"sections"`
}

// Overview renders the market-management landing view.
//
// @Summary      Market management overview
// @Tags         markets
// @Produce      json
// @Success      200  {object}  marketsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /dashboard/markets [get]
func (h *MarketsHandler) Overview(c echo.Context) error {
	profile, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, marketsResponse{
		Title:    "Market Management",
		Subtitle: "Oversee market operations, listings, and related activities.",
		Manager:  profile,
		Sections: []string{"Listings", "Operations", "Activity"},
	})
}
