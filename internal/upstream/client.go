// Package upstream implements the HTTP client for the external marketplace
// REST API. It is the only place that speaks the upstream wire format;
// responses are normalized to domain values at this boundary.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/markethub/admin-gateway/internal/api/metrics"
	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// StatusError carries an upstream rejection that has no dedicated domain
// sentinel: the gateway relays its status code and message to the caller.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// Client talks to the marketplace API. It implements ports.AuthAPI and
// ports.DirectoryAPI.
type Client struct {
	base  string
	httpc *http.Client
	log   zerolog.Logger
}

// NewClient creates a Client for the given base URL, e.g.
// "https://api.marketplace.internal". A non-positive timeout falls back to
// defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{Timeout: timeout},
		log:   log,
	}
}

// do performs a single round trip. No retries: a failure is the caller's to
// surface. Returns the status code and the full response body.
func (c *Client) do(ctx context.Context, op, method, path, token string, body any) (int, []byte, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal %s request: %w", op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(op).Inc()
		c.log.Error().Err(err).Str("op", op).Msg("upstream request failed")
		return 0, nil, fmt.Errorf("%s: %v: %w", op, err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(op).Inc()
		return 0, nil, fmt.Errorf("read %s response: %w", op, domain.ErrUpstream)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		metrics.UpstreamErrorsTotal.WithLabelValues(op).Inc()
	}
	return resp.StatusCode, data, nil
}

// adminError maps the status codes shared by all authenticated directory
// calls. 401 means the session itself is no longer valid, which the caller
// must treat as credential destruction, not as an operation failure.
func adminError(status int, data []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrSessionInvalid
	case http.StatusForbidden:
		return domain.ErrAccessDenied
	case http.StatusNotFound:
		return domain.ErrUserNotFound
	default:
		return &StatusError{Code: status, Message: apiMessage(data)}
	}
}

func ok(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// --- ports.AuthAPI ---

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	status, data, err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", "", in)
	if err != nil {
		return "", err
	}
	if !ok(status) {
		return "", &StatusError{Code: status, Message: apiMessage(data)}
	}
	return apiMessage(data), nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	req := map[string]string{"email": email, "password": password}
	status, data, err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, domain.ErrInvalidCredentials
	}
	if !ok(status) {
		return nil, &StatusError{Code: status, Message: apiMessage(data)}
	}

	var body struct {
		Token   string       `json:"token"`
		Profile *domain.User `json:"profile"`
		Message string       `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode login response: %w", domain.ErrUpstream)
	}
	if body.Token == "" {
		return nil, fmt.Errorf("login response missing token: %w", domain.ErrUpstream)
	}
	return &ports.LoginResult{Token: body.Token, Profile: body.Profile, Message: body.Message}, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	status, data, err := c.do(ctx, "logout", http.MethodPost, "/api/auth/logout", token, nil)
	if err != nil {
		return err
	}
	if !ok(status) {
		return &StatusError{Code: status, Message: apiMessage(data)}
	}
	return nil
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.User, error) {
	status, data, err := c.do(ctx, "profile", http.MethodGet, "/api/auth/profile", token, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, domain.ErrSessionInvalid
	}
	if !ok(status) {
		return nil, &StatusError{Code: status, Message: apiMessage(data)}
	}
	return decodeProfile(data)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	status, data, err := c.do(ctx, "verify_email", http.MethodPost, "/api/auth/verify-email", "", map[string]string{"token": token})
	if err != nil {
		return "", err
	}
	if status == http.StatusBadRequest || status == http.StatusGone {
		return "", domain.ErrVerificationExpired
	}
	if !ok(status) {
		return "", &StatusError{Code: status, Message: apiMessage(data)}
	}
	return apiMessage(data), nil
}

// --- ports.DirectoryAPI ---

func (c *Client) ListUsers(ctx context.Context, token string, role domain.Role) ([]domain.User, error) {
	status, data, err := c.do(ctx, "list_users", http.MethodGet, "/api/admin/"+string(role), token, nil)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, adminError(status, data)
	}
	return decodeUsers(data)
}

func (c *Client) GetUser(ctx context.Context, token string, role domain.Role, id string) (*domain.User, error) {
	status, data, err := c.do(ctx, "get_user", http.MethodGet, "/api/admin/"+string(role)+"/"+id, token, nil)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, adminError(status, data)
	}
	return decodeUser(data)
}

func (c *Client) CreateUser(ctx context.Context, token string, role domain.Role, in ports.UserInput) (*domain.User, error) {
	status, data, err := c.do(ctx, "create_user", http.MethodPost, "/api/admin/"+string(role), token, in)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, adminError(status, data)
	}
	return decodeUser(data)
}

func (c *Client) UpdateUser(ctx context.Context, token string, role domain.Role, id string, in ports.UserInput) (*domain.User, error) {
	status, data, err := c.do(ctx, "update_user", http.MethodPut, "/api/admin/"+string(role)+"/"+id, token, in)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, adminError(status, data)
	}
	return decodeUser(data)
}

func (c *Client) DeleteUser(ctx context.Context, token string, role domain.Role, id string) error {
	status, data, err := c.do(ctx, "delete_user", http.MethodDelete, "/api/admin/"+string(role)+"/"+id, token, nil)
	if err != nil {
		return err
	}
	if !ok(status) {
		return adminError(status, data)
	}
	return nil
}
