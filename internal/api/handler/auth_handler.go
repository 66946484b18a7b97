package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	store       ports.CredentialStore
}

func NewAuthHandler(authService ports.AuthService, store ports.CredentialStore) *AuthHandler {
	return &AuthHandler{authService: authService, store: store}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message    string       `json:"message"`
	RedirectTo string       `json:"redirectTo"`
	Profile    *domain.User `json:"profile,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type verifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// safeReturnTarget keeps the post-login redirect on this site. Anything
// that is not a plain absolute path falls back to the dashboard.
func safeReturnTarget(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/dashboard"
}

// Login authenticates against the upstream and stores the credential pair.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        redirectedFrom  query     string        false  "Path to return to after login"
// @Param        body            body      loginRequest  true   "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	// Cookie and persistent mirror are written together; a failure here
	// means no credential exists anywhere.
	if err := h.store.Put(c, res.Token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:    res.Message,
		RedirectTo: safeReturnTarget(c.QueryParam("redirectedFrom")),
		Profile:    res.Profile,
	})
}

// Register creates a new account through the upstream.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// VerifyEmail redeems an email verification token.
//
// @Summary      Verify email address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Verification token"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /verify-email [post]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.authService.VerifyEmail(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Logout ends the session. The upstream call is best effort; the local
// credential pair is cleared no matter what, so logout cannot fail.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := h.store.CookieToken(c)

	h.authService.Logout(c.Request().Context(), token)

	if err := h.store.Clear(c, token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout processed."})
}
