package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

const testCookieName = "authToken"

// fakeStore is an in-memory ports.CredentialStore that still honours the
// pairing invariant: Put and Clear always touch the cookie and the mirror
// together.
type fakeStore struct {
	mirror    map[string]bool
	mirrorErr error
	puts      []string
	clears    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{mirror: make(map[string]bool)}
}

func (f *fakeStore) Put(c echo.Context, token string) error {
	f.mirror[token] = true
	f.puts = append(f.puts, token)
	c.SetCookie(&http.Cookie{Name: testCookieName, Value: token, Path: "/"})
	return nil
}

func (f *fakeStore) Clear(c echo.Context, token string) error {
	delete(f.mirror, token)
	f.clears = append(f.clears, token)
	c.SetCookie(&http.Cookie{Name: testCookieName, Value: "", Path: "/", MaxAge: -1})
	return nil
}

func (f *fakeStore) CookieToken(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(testCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (f *fakeStore) MirrorExists(_ context.Context, token string) (bool, error) {
	if f.mirrorErr != nil {
		return false, f.mirrorErr
	}
	return f.mirror[token], nil
}
