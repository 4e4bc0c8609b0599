package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/ports"
	"github.com/skillsling/marketplace/internal/infrastructure/storage/memory"
)

func runDevice(t *testing.T, secret string, cookie *http.Cookie) (*ports.Device, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *ports.Device
	mw := Device(secret, memory.NewKVStore(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		got, _ = c.Get("device").(*ports.Device)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil {
		t.Fatalf("device not set in context")
	}
	return got, rec
}

func issuedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == DeviceCookie {
			return ck
		}
	}
	return nil
}

func TestDevice_IssuesCookieForNewClient(t *testing.T) {
	dev, rec := runDevice(t, "secret", nil)

	ck := issuedCookie(t, rec)
	if ck == nil {
		t.Fatalf("expected %s cookie to be set", DeviceCookie)
	}
	if !ck.HttpOnly {
		t.Fatalf("device cookie must be HttpOnly")
	}
	if dev.ID == "" {
		t.Fatalf("expected device id")
	}
	if _, ok := dev.Session.Current(); ok {
		t.Fatalf("new device must start signed out")
	}
}

func TestDevice_ReusesValidCookie(t *testing.T) {
	first, rec := runDevice(t, "secret", nil)
	ck := issuedCookie(t, rec)

	second, rec2 := runDevice(t, "secret", &http.Cookie{Name: DeviceCookie, Value: ck.Value})
	if second.ID != first.ID {
		t.Fatalf("expected same device id, got %s and %s", first.ID, second.ID)
	}
	if issuedCookie(t, rec2) != nil {
		t.Fatalf("valid cookie must not be reissued")
	}
}

func TestDevice_ReplacesForgedCookie(t *testing.T) {
	first, rec := runDevice(t, "secret", nil)
	ck := issuedCookie(t, rec)

	second, rec2 := runDevice(t, "other-secret", &http.Cookie{Name: DeviceCookie, Value: ck.Value})
	if second.ID == first.ID {
		t.Fatalf("cookie signed with another key must not be trusted")
	}
	if issuedCookie(t, rec2) == nil {
		t.Fatalf("expected a fresh cookie")
	}
}

func TestDevice_ReplacesExpiredCookie(t *testing.T) {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    deviceIssuer,
		Subject:   "9b2f3c1e-8a47-4a8e-bf3a-0c1d2e3f4a5b",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := tkn.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	dev, rec := runDevice(t, "secret", &http.Cookie{Name: DeviceCookie, Value: signed})
	if dev.ID == "9b2f3c1e-8a47-4a8e-bf3a-0c1d2e3f4a5b" {
		t.Fatalf("expired cookie must not be trusted")
	}
	if issuedCookie(t, rec) == nil {
		t.Fatalf("expected a fresh cookie")
	}
}

func TestDevice_RejectsNonUUIDSubject(t *testing.T) {
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  deviceIssuer,
		Subject: "../admin",
	})
	signed, _ := tkn.SignedString([]byte("secret"))

	dev, _ := runDevice(t, "secret", &http.Cookie{Name: DeviceCookie, Value: signed})
	if dev.ID == "../admin" {
		t.Fatalf("non-uuid subject must not be used as a namespace")
	}
}
