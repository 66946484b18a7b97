package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

type stubResolver struct {
	profile *domain.User
	err     error
	calls   int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (*domain.User, error) {
	s.calls++
	return s.profile, s.err
}

func sessionContext(path, token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResolveSession_NoCookieRedirects(t *testing.T) {
	store := newFakeStore()
	resolver := &stubResolver{}
	c, rec := sessionContext("/dashboard", "")

	handler := ResolveSession(store, resolver)(func(c echo.Context) error {
		t.Fatalf("next must not run without a credential")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if resolver.calls != 0 {
		t.Fatalf("profile endpoint must not be called, got %d calls", resolver.calls)
	}
}

func TestResolveSession_MissingMirrorClearsAndRedirects(t *testing.T) {
	store := newFakeStore() // cookie present, mirror absent
	resolver := &stubResolver{}
	c, rec := sessionContext("/dashboard", "orphan-token")

	handler := ResolveSession(store, resolver)(func(c echo.Context) error {
		t.Fatalf("next must not run")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if resolver.calls != 0 {
		t.Fatalf("half a credential pair must not reach the profile endpoint")
	}
	if len(store.clears) != 1 || store.clears[0] != "orphan-token" {
		t.Fatalf("expected the orphan cookie to be cleared, got %v", store.clears)
	}
}

func TestResolveSession_ResolverFailureClearsBothCopies(t *testing.T) {
	store := newFakeStore()
	store.mirror["stale"] = true
	resolver := &stubResolver{err: domain.ErrSessionInvalid}
	c, rec := sessionContext("/dashboard", "stale")

	handler := ResolveSession(store, resolver)(func(c echo.Context) error {
		t.Fatalf("next must not run")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if len(store.clears) != 1 || store.clears[0] != "stale" {
		t.Fatalf("expected both credential copies cleared, got %v", store.clears)
	}
	if store.mirror["stale"] {
		t.Fatalf("mirror copy still present after invalidation")
	}
}

func TestResolveSession_SuccessCachesIdentityOnce(t *testing.T) {
	store := newFakeStore()
	store.mirror["tok-1"] = true
	resolver := &stubResolver{profile: &domain.User{ID: "u1", Role: domain.RoleAdmin}}
	c, rec := sessionContext("/dashboard", "tok-1")

	handler := ResolveSession(store, resolver)(func(c echo.Context) error {
		profile, ok := CurrentProfile(c)
		if !ok || profile.ID != "u1" {
			t.Fatalf("profile not cached in context: %+v", profile)
		}
		if CurrentToken(c) != "tok-1" {
			t.Fatalf("token not cached in context")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resolver.calls != 1 {
		t.Fatalf("expected exactly one resolution per request, got %d", resolver.calls)
	}
	if len(store.clears) != 0 {
		t.Fatalf("nothing should be cleared on success")
	}
}

func TestResolveSession_MidRequestSessionDeathClearsPair(t *testing.T) {
	store := newFakeStore()
	store.mirror["tok-1"] = true
	resolver := &stubResolver{profile: &domain.User{ID: "u1", Role: domain.RoleAdmin}}
	c, _ := sessionContext("/dashboard/users/buyer", "tok-1")

	// Handler simulates a 401 from an authenticated upstream call.
	handler := ResolveSession(store, resolver)(func(c echo.Context) error {
		return domain.ErrSessionInvalid
	})
	err := handler(c)
	if err != domain.ErrSessionInvalid {
		t.Fatalf("expected the session error to propagate, got %v", err)
	}

	if len(store.clears) != 1 || store.clears[0] != "tok-1" {
		t.Fatalf("expected credential pair cleared on mid-request 401, got %v", store.clears)
	}
}
