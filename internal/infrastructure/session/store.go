// Package session implements the paired credential store: the auth cookie
// on the HTTP exchange plus a mirrored Redis record with the same lifetime.
// All writes to the pair go through Put and Clear so the two copies cannot
// drift apart.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Store is the Redis-backed ports.CredentialStore implementation.
// Key format: session:<token>
type Store struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
}

// NewStore creates a Store. A non-positive ttl falls back to defaultTTL
// (one day, matching the cookie the dashboard has always issued).
func NewStore(client *redis.Client, cookieName string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, cookieName: cookieName, ttl: ttl}
}

func (s *Store) key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Put writes both halves of the credential pair. The Redis record is
// written first; if it fails the cookie is never set, so a stored cookie
// always implies a mirror existed at issue time.
func (s *Store) Put(c echo.Context, token string) error {
	ctx := c.Request().Context()
	if err := s.client.Set(ctx, s.key(token), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("store session mirror: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes both halves in one operation. Deleting an absent record is
// a no-op; the expired cookie is always emitted so the browser copy dies
// even when Redis already lost the mirror.
func (s *Store) Clear(c echo.Context, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if token == "" {
		return nil
	}
	if err := s.client.Del(c.Request().Context(), s.key(token)).Err(); err != nil {
		return fmt.Errorf("clear session mirror: %w", err)
	}
	return nil
}

// CookieToken returns the cookie half of the pair, if the request carries it.
func (s *Store) CookieToken(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// MirrorExists reports whether the persistent half of the pair is present.
func (s *Store) MirrorExists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("session mirror check: %w", err)
	}
	return n > 0, nil
}
