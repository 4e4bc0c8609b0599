package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/api/middleware"
	"github.com/skillsling/marketplace/internal/infrastructure/storage/memory"
)

// client replays the device cookie across requests like a browser would.
type client struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Store:        memory.NewKVStore(),
		StoreName:    "memory",
		DeviceSecret: "test-secret",
		Logger:       zerolog.Nop(),
		Registerer:   reg,
		Gatherer:     reg,
		Now:          func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	return &client{t: t, e: e}
}

func (cl *client) do(method, path, body string) *httptest.ResponseRecorder {
	cl.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.DeviceCookie {
			cl.cookie = ck
		}
	}
	return rec
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if rec.Code != code || rec.Header().Get(echo.HeaderLocation) != location {
		t.Fatalf("expected %d to %s, got %d to %q (%s)", code, location, rec.Code, rec.Header().Get(echo.HeaderLocation), rec.Body.String())
	}
}

func TestRouter_ProviderSignupFlow(t *testing.T) {
	cl := newClient(t)

	rec := cl.do(http.MethodPost, "/auth/signup", `{"roles":["provider"],"name":"Alice","email":"a@x.com","password":"secret"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"step":"provider_details"`) {
		t.Fatalf("expected provider_details step, got %d %s", rec.Code, rec.Body.String())
	}

	rec = cl.do(http.MethodPost, "/auth/signup/details", `{"services":["DJ"],"bio":"Weddings","price":""}`)
	expectRedirect(t, rec, http.StatusSeeOther, "/provider")

	rec = cl.do(http.MethodGet, "/providers", "")
	var resp struct {
		Header struct {
			User string `json:"user"`
		} `json:"header"`
		Data struct {
			Providers []struct {
				Title string `json:"title"`
				Price string `json:"price"`
				Name  string `json:"name"`
			} `json:"providers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Header.User != "Alice" || len(resp.Data.Providers) != 1 {
		t.Fatalf("unexpected directory: %s", rec.Body.String())
	}
	if p := resp.Data.Providers[0]; p.Title != "DJ" || p.Price != "Contact for price" || p.Name != "Alice" {
		t.Fatalf("unexpected listing: %+v", p)
	}

	rec = cl.do(http.MethodGet, "/provider", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("provider dashboard should render, got %d", rec.Code)
	}

	rec = cl.do(http.MethodPost, "/provider/create", `{"title":"MC","price":"Ksh 2,000"}`)
	expectRedirect(t, rec, http.StatusSeeOther, "/providers")

	rec = cl.do(http.MethodGet, "/providers", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data.Providers) != 2 || resp.Data.Providers[0].Title != "MC" {
		t.Fatalf("newest listing must come first: %s", rec.Body.String())
	}
}

func TestRouter_ClientSignupIsGated(t *testing.T) {
	cl := newClient(t)

	rec := cl.do(http.MethodPost, "/auth/signup", `{"roles":["client"],"name":"Bob","email":"b@x.com","password":"secret"}`)
	expectRedirect(t, rec, http.StatusSeeOther, "/client")

	expectRedirect(t, cl.do(http.MethodGet, "/provider", ""), http.StatusFound, "/auth")
	expectRedirect(t, cl.do(http.MethodGet, "/provider/create", ""), http.StatusFound, "/auth")
	expectRedirect(t, cl.do(http.MethodPost, "/provider/create", `{"title":"x","price":"1"}`), http.StatusFound, "/auth")

	if rec := cl.do(http.MethodGet, "/client", ""); rec.Code != http.StatusOK {
		t.Fatalf("client dashboard should render, got %d", rec.Code)
	}

	rec = cl.do(http.MethodGet, "/providers", "")
	if !strings.Contains(rec.Body.String(), "No providers yet.") {
		t.Fatalf("client signup must leave the directory empty: %s", rec.Body.String())
	}
}

func TestRouter_LoginFlow(t *testing.T) {
	cl := newClient(t)

	rec := cl.do(http.MethodPost, "/auth/login", `{"email":"b@x.com","password":"secret"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "No account found. Please sign up.") {
		t.Fatalf("expected 404 no account, got %d %s", rec.Code, rec.Body.String())
	}

	cl.do(http.MethodPost, "/auth/signup", `{"roles":["client"],"name":"Bob","email":"b@x.com","password":"secret"}`)

	rec = cl.do(http.MethodPost, "/auth/login", `{"email":"x@x.com","password":"secret"}`)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Incorrect email.") {
		t.Fatalf("expected 401 mismatch, got %d %s", rec.Code, rec.Body.String())
	}

	expectRedirect(t, cl.do(http.MethodPost, "/auth/login", `{"email":"b@x.com","password":"anything"}`), http.StatusSeeOther, "/client")

	expectRedirect(t, cl.do(http.MethodPost, "/auth/logout", ""), http.StatusSeeOther, "/auth")
	expectRedirect(t, cl.do(http.MethodGet, "/client", ""), http.StatusFound, "/auth")
}

func TestRouter_SignupValidation(t *testing.T) {
	cl := newClient(t)

	rec := cl.do(http.MethodPost, "/auth/signup", `{"roles":["client"],"name":"Bob","email":"b@x.com","password":"12345"}`)
	if rec.Code != http.StatusUnprocessableEntity ||
		!strings.Contains(rec.Body.String(), "Enter name, valid email and password (min 6 chars).") {
		t.Fatalf("expected 422, got %d %s", rec.Code, rec.Body.String())
	}

	rec = cl.do(http.MethodPost, "/auth/signup/details", `{}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without a provider draft, got %d", rec.Code)
	}
}

func TestRouter_DevicesAreIsolated(t *testing.T) {
	alice := newClient(t)
	alice.do(http.MethodPost, "/auth/signup", `{"roles":["client"],"name":"Alice","email":"a@x.com","password":"secret"}`)

	stranger := &client{t: t, e: alice.e}
	rec := stranger.do(http.MethodGet, "/profile", "")
	if strings.Contains(rec.Body.String(), "Alice") {
		t.Fatalf("another device must not see the session: %s", rec.Body.String())
	}
}

func TestRouter_RootAndUnknown(t *testing.T) {
	cl := newClient(t)
	expectRedirect(t, cl.do(http.MethodGet, "/", ""), http.StatusFound, "/providers")

	if rec := cl.do(http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	cl := newClient(t)

	if rec := cl.do(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}
	rec := cl.do(http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"memory"`) {
		t.Fatalf("ready: %d %s", rec.Code, rec.Body.String())
	}

	cl.do(http.MethodGet, "/providers", "")
	rec = cl.do(http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "skillsling_http_requests_total") {
		t.Fatalf("metrics: %d", rec.Code)
	}
}
