package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/markethub/admin-gateway/internal/core/ports"
	"github.com/markethub/admin-gateway/internal/upstream"
)

const testCookieName = "authToken"

// routerStore is an in-memory ports.CredentialStore for end-to-end tests.
type routerStore struct {
	mu     sync.Mutex
	mirror map[string]bool
	puts   []string
	clears []string
}

func newRouterStore() *routerStore {
	return &routerStore{mirror: make(map[string]bool)}
}

func (f *routerStore) Put(c echo.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mirror[token] = true
	f.puts = append(f.puts, token)
	c.SetCookie(&http.Cookie{Name: testCookieName, Value: token, Path: "/"})
	return nil
}

func (f *routerStore) Clear(c echo.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.mirror, token)
	f.clears = append(f.clears, token)
	c.SetCookie(&http.Cookie{Name: testCookieName, Value: "", Path: "/", MaxAge: -1})
	return nil
}

func (f *routerStore) CookieToken(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(testCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (f *routerStore) MirrorExists(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mirror[token], nil
}

var _ ports.CredentialStore = (*routerStore)(nil)

// fakeMarketplace is an httptest stand-in for the upstream marketplace API.
// It knows two sessions: "admin-token" and "manager-token".
type fakeMarketplace struct {
	mu           sync.Mutex
	profileCalls int
	adminCalls   int
}

func (f *fakeMarketplace) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "let-me-in" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"token": "admin-token",
			"message": "Login successful.",
			"profile": {"id":"a1","firstName":"Ada","lastName":"Admin","email":"ada@markethub.io","role":"admin","isVerified":true}
		}`))
	})

	mux.HandleFunc("GET /api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.profileCalls++
		f.mu.Unlock()
		switch r.Header.Get("Authorization") {
		case "Bearer admin-token":
			_, _ = w.Write([]byte(`{"profile":{"id":"a1","firstName":"Ada","lastName":"Admin","email":"ada@markethub.io","role":"admin","isVerified":true}}`))
		case "Bearer manager-token":
			_, _ = w.Write([]byte(`{"profile":{"id":"m1","firstName":"Max","lastName":"Manager","email":"max@markethub.io","role":"manager","isVerified":true}}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
		}
	})

	mux.HandleFunc("/api/admin/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.adminCalls++
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"users":[{"id":"b1","firstName":"Bea","lastName":"Buyer","email":"bea@markethub.io","role":"buyer","isVerified":true}]}`))
	})

	return mux
}

type gatewayFixture struct {
	srv      *httptest.Server
	upstream *fakeMarketplace
	store    *routerStore
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()

	market := &fakeMarketplace{}
	upstreamSrv := httptest.NewServer(market.handler())
	t.Cleanup(upstreamSrv.Close)

	store := newRouterStore()
	client := upstream.NewClient(upstreamSrv.URL, 0, zerolog.Nop())
	rdb := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	e := NewRouter(rdb, client, store, zerolog.Nop(), prometheus.NewRegistry())
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &gatewayFixture{srv: srv, upstream: market, store: store}
}

func (g *gatewayFixture) request(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != "" {
		req, err = http.NewRequest(method, g.srv.URL+path, strings.NewReader(body))
	} else {
		req, err = http.NewRequest(method, g.srv.URL+path, nil)
	}
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestNewRouter_RepeatedConstructionDoesNotCollide(t *testing.T) {
	// Each router registers its request-metrics collectors with the
	// registry it is given; with a fresh registry per instance, building
	// several routers in one process must not panic on duplicate
	// registration.
	store := newRouterStore()
	client := upstream.NewClient("http://localhost:9", 0, zerolog.Nop())
	rdb := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	for i := 0; i < 3; i++ {
		if e := NewRouter(rdb, client, store, zerolog.Nop(), prometheus.NewRegistry()); e == nil {
			t.Fatalf("router %d was not built", i)
		}
	}
}

func TestGateway_LoginEstablishesCredentialPair(t *testing.T) {
	g := newGatewayFixture(t)

	resp := g.request(t, http.MethodPost, "/login", "",
		`{"email":"ada@markethub.io","password":"let-me-in"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var hasCookie bool
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookieName && ck.Value == "admin-token" {
			hasCookie = true
		}
	}
	if !hasCookie {
		t.Fatalf("login response did not set the session cookie")
	}
	if !g.store.mirror["admin-token"] {
		t.Fatalf("login did not write the persistent mirror")
	}
}

func TestGateway_DashboardResolvesIdentityOnce(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["admin-token"] = true

	resp := g.request(t, http.MethodGet, "/dashboard", "admin-token", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if g.upstream.profileCalls != 1 {
		t.Fatalf("expected exactly one profile fetch, got %d", g.upstream.profileCalls)
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Title != "Admin Hub" {
		t.Fatalf("expected the admin landing title, got %q", body.Title)
	}
}

func TestGateway_UnauthenticatedDashboardRedirectsWithReturnTarget(t *testing.T) {
	g := newGatewayFixture(t)

	resp := g.request(t, http.MethodGet, "/dashboard/users/buyer", "", "")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if loc != "/login?redirectedFrom=%2Fdashboard%2Fusers%2Fbuyer" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
	if g.upstream.profileCalls != 0 {
		t.Fatalf("edge must not touch the upstream, got %d profile calls", g.upstream.profileCalls)
	}
}

func TestGateway_AuthenticatedLoginPageBouncesToDashboard(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["admin-token"] = true

	resp := g.request(t, http.MethodGet, "/login", "admin-token", "")
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestGateway_ManagerDeniedUserManagement(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["manager-token"] = true

	resp := g.request(t, http.MethodGet, "/dashboard/users/buyer", "manager-token", "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if g.upstream.adminCalls != 0 {
		t.Fatalf("denied request must not reach admin endpoints, got %d calls", g.upstream.adminCalls)
	}

	var body struct {
		Error string `json:"error"`
		Home  string `json:"home"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Home != "/dashboard" {
		t.Fatalf("denial missing landing affordance: %+v", body)
	}
}

func TestGateway_ManagerGrantedMarkets(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["manager-token"] = true

	resp := g.request(t, http.MethodGet, "/dashboard/markets", "manager-token", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGateway_AdminInvalidRoleParamIsBadRequest(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["admin-token"] = true

	resp := g.request(t, http.MethodGet, "/dashboard/users/wizard", "admin-token", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if g.upstream.adminCalls != 0 {
		t.Fatalf("invalid role must not reach admin endpoints")
	}
}

func TestGateway_AdminListsUsers(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["admin-token"] = true

	resp := g.request(t, http.MethodGet, "/dashboard/users/buyer", "admin-token", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if g.upstream.adminCalls != 1 {
		t.Fatalf("expected one admin call, got %d", g.upstream.adminCalls)
	}

	var body struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Users) != 1 || body.Users[0].ID != "b1" {
		t.Fatalf("unexpected roster %+v", body.Users)
	}
}

func TestGateway_LogoutClearsPairEvenWhenUpstreamFails(t *testing.T) {
	g := newGatewayFixture(t)
	g.store.mirror["admin-token"] = true

	// The fake marketplace has no /api/auth/logout route, so the upstream
	// call fails with a 404. Logout must still succeed locally.
	resp := g.request(t, http.MethodPost, "/logout", "admin-token", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if g.store.mirror["admin-token"] {
		t.Fatalf("mirror copy still present after logout")
	}
	if len(g.store.clears) != 1 {
		t.Fatalf("expected one clear, got %v", g.store.clears)
	}
}
