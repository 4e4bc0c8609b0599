package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skillsling/marketplace/internal/core/domain"
)

type messageData struct {
	Message string `json:"message"`
}

type profileData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles string `json:"roles"`
}

// PageHandler serves the screens that only read the session.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// ProviderDashboard handles GET /provider.
//
// @Summary      Provider dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  screenResponse
// @Success      302  "Redirect to /auth without the provider role"
// @Router       /provider [get]
func (h *PageHandler) ProviderDashboard(c echo.Context) error {
	return h.welcome(c, domain.ScreenProviderDashboard,
		`Welcome, %s. Create and manage your provider profile from the "Create Profile" link.`)
}

// ClientDashboard handles GET /client.
//
// @Summary      Client dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  screenResponse
// @Success      302  "Redirect to /auth without the client role"
// @Router       /client [get]
func (h *PageHandler) ClientDashboard(c echo.Context) error {
	return h.welcome(c, domain.ScreenClientDashboard, "Welcome, %s. Browse providers and start bookings.")
}

func (h *PageHandler) welcome(c echo.Context, screen domain.Screen, format string) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	u := ctxUser(dev)
	var name string
	if u != nil {
		name = u.Name
	}
	return renderScreen(c, screen, u, messageData{Message: fmt.Sprintf(format, name)})
}

// Profile handles GET /profile. Fields are empty when nobody is signed in.
//
// @Summary      Profile
// @Tags         pages
// @Produce      json
// @Success      200  {object}  screenResponse
// @Router       /profile [get]
func (h *PageHandler) Profile(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	u := ctxUser(dev)
	var data profileData
	if u != nil {
		roles := make([]string, 0, u.Roles.Len())
		for _, r := range u.Roles.Slice() {
			roles = append(roles, string(r))
		}
		data = profileData{Name: u.Name, Email: u.Email, Roles: strings.Join(roles, ", ")}
	}
	return renderScreen(c, domain.ScreenProfile, u, data)
}

// Search handles GET /search.
//
// @Summary      Search
// @Tags         pages
// @Produce      json
// @Success      200  {object}  screenResponse
// @Router       /search [get]
func (h *PageHandler) Search(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}
	return renderScreen(c, domain.ScreenSearch, ctxUser(dev), messageData{Message: "Search providers (coming soon)"})
}

// Root handles GET /.
func (h *PageHandler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, domain.PathProviders)
}
