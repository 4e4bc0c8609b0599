package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
)

// ctxDevice returns the device opened by the Device middleware. A missing
// device means the route was registered without it, which is a wiring bug.
func ctxDevice(c echo.Context) (*ports.Device, error) {
	dev, _ := c.Get("device").(*ports.Device)
	if dev == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "device not initialised")
	}
	return dev, nil
}

// ctxUser returns the signed-in user, or nil.
func ctxUser(dev *ports.Device) *domain.User {
	u, ok := dev.Session.Current()
	if !ok {
		return nil
	}
	return u
}
