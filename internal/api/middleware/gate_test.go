package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
	"github.com/skillsling/marketplace/internal/core/service"
	"github.com/skillsling/marketplace/internal/infrastructure/storage/memory"
)

func deviceWith(t *testing.T, user *domain.User) *ports.Device {
	t.Helper()
	dev := service.OpenDevice(context.Background(), memory.NewKVStore(), "dev-1", zerolog.Nop())
	if user != nil {
		if err := dev.Session.Set(context.Background(), user); err != nil {
			t.Fatalf("set session: %v", err)
		}
	}
	return dev
}

func runGate(t *testing.T, path string, dev *ports.Device) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	c.Set("device", dev)

	called := false
	handler := Gate(service.NewNavigator(domain.Routes))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called, c
}

func TestGate_AllowsProviderDashboardForProvider(t *testing.T) {
	dev := deviceWith(t, &domain.User{ID: 1, Roles: domain.NewRoleSet(domain.RoleProvider)})

	rec, called, c := runGate(t, domain.PathProviderDashboard, dev)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
	if c.Get("screen") != domain.ScreenProviderDashboard {
		t.Fatalf("expected screen in context, got %v", c.Get("screen"))
	}
}

func TestGate_RedirectsClientAwayFromProviderDashboard(t *testing.T) {
	dev := deviceWith(t, &domain.User{ID: 1, Roles: domain.NewRoleSet(domain.RoleClient)})

	rec, called, _ := runGate(t, domain.PathProviderDashboard, dev)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != domain.PathAuth {
		t.Fatalf("expected 302 to /auth, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGate_RedirectsAnonymousFromClientDashboard(t *testing.T) {
	rec, called, _ := runGate(t, domain.PathClientDashboard, deviceWith(t, nil))
	if called || rec.Header().Get(echo.HeaderLocation) != domain.PathAuth {
		t.Fatalf("expected redirect to /auth")
	}
}

func TestGate_PublicRouteRendersWithoutSession(t *testing.T) {
	rec, called, _ := runGate(t, domain.PathProfile, deviceWith(t, nil))
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("public route must render without a session")
	}
}

func TestGate_RootRedirectsToProviders(t *testing.T) {
	rec, called, _ := runGate(t, domain.PathRoot, deviceWith(t, nil))
	if called || rec.Header().Get(echo.HeaderLocation) != domain.PathProviders {
		t.Fatalf("expected redirect to /providers, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}
