package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillsling/marketplace/internal/core/domain"
)

// headerView is the navigation bar shown on every screen.
type headerView struct {
	User               string `json:"user,omitempty"`
	LoginLink          string `json:"loginLink,omitempty"`
	BecomeProviderLink string `json:"becomeProviderLink,omitempty"`
	LogoutAction       string `json:"logoutAction,omitempty"`
}

type screenResponse struct {
	Screen domain.Screen `json:"screen"`
	Header headerView    `json:"header"`
	Data   any           `json:"data,omitempty"`
}

func newHeaderView(u *domain.User) headerView {
	if u == nil {
		return headerView{LoginLink: domain.PathAuth}
	}

	h := headerView{User: u.Name, LogoutAction: "/auth/logout"}
	if u.Roles.Only(domain.RoleClient) {
		h.BecomeProviderLink = domain.PathProviderCreate
	}
	return h
}

func renderScreen(c echo.Context, screen domain.Screen, u *domain.User, data any) error {
	return c.JSON(http.StatusOK, screenResponse{
		Screen: screen,
		Header: newHeaderView(u),
		Data:   data,
	})
}
