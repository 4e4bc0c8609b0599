package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/api/metrics"
	"github.com/skillsling/marketplace/internal/core/ports"
	"github.com/skillsling/marketplace/internal/core/service"
)

const (
	DeviceCookie = "skillsling_device"

	deviceIssuer = "skillsling"
	deviceTTL    = 365 * 24 * time.Hour
)

// Device identifies the client by a signed cookie and opens its private
// slice of store. A missing, expired or forged cookie gets a fresh device,
// which starts out with an empty session and directory.
func Device(secret string, store ports.KVStore, log zerolog.Logger) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := deviceFromCookie(c, key)
			if !ok {
				var err error
				id, err = issueDevice(c, key)
				if err != nil {
					return err
				}
			}

			reqLog := log.With().Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Logger()
			c.Set("device", service.OpenDevice(c.Request().Context(), store, id, reqLog))
			return next(c)
		}
	}
}

func deviceFromCookie(c echo.Context, key []byte) (string, bool) {
	ck, err := c.Cookie(DeviceCookie)
	if err != nil || ck.Value == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(ck.Value, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(deviceIssuer))
	if err != nil || !tkn.Valid {
		return "", false
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", false
	}
	return claims.Subject, true
}

func issueDevice(c echo.Context, key []byte) (string, error) {
	id := uuid.NewString()
	now := time.Now()

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    deviceIssuer,
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(deviceTTL)),
	})
	signed, err := tkn.SignedString(key)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "could not issue device").SetInternal(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     DeviceCookie,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(deviceTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	metrics.DevicesIssuedTotal.Inc()
	return id, nil
}
