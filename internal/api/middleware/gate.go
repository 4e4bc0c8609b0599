package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillsling/marketplace/internal/api/metrics"
	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
	"github.com/skillsling/marketplace/internal/core/service"
)

// Gate resolves the matched route against the device session. Aliases and
// failed role checks answer with a redirect; otherwise the resolved screen
// is stored under "screen" for the handler.
func Gate(nav *service.Navigator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var user *domain.User
			if dev, ok := c.Get("device").(*ports.Device); ok && dev != nil {
				user, _ = dev.Session.Current()
			}

			dec, err := nav.Resolve(c.Path(), user)
			if err != nil {
				return err
			}
			if dec.Redirect != "" {
				if dec.Gated {
					metrics.GateRedirectsTotal.WithLabelValues(c.Path()).Inc()
				}
				return c.Redirect(http.StatusFound, dec.Redirect)
			}

			c.Set("screen", dec.Screen)
			return next(c)
		}
	}
}
