package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillsling/marketplace/internal/api/metrics"
	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
)

const msgNoProviders = "No providers yet. Sign up as a provider to create a profile."

// DirectoryHandler serves the provider directory and profile creation.
type DirectoryHandler struct {
	service ports.ListingService
}

func NewDirectoryHandler(service ports.ListingService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// List handles GET /providers.
//
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Success      200  {object}  screenResponse
// @Router       /providers [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	data := directoryData{Providers: h.service.List(c.Request().Context(), dev)}
	if len(data.Providers) == 0 {
		data.Message = msgNoProviders
	}
	return renderScreen(c, domain.ScreenProviders, ctxUser(dev), data)
}

// CreateForm handles GET /provider/create.
//
// @Summary      Provider profile form
// @Tags         providers
// @Produce      json
// @Success      200  {object}  screenResponse
// @Success      302  "Redirect to /auth without the provider role"
// @Router       /provider/create [get]
func (h *DirectoryHandler) CreateForm(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}
	return renderScreen(c, domain.ScreenProviderCreate, ctxUser(dev), nil)
}

// Create handles POST /provider/create.
//
// @Summary      Create a provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        body  body      createListingRequest  true  "Title, bio and price"
// @Success      303   "Redirect to /providers"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /provider/create [post]
func (h *DirectoryHandler) Create(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	_, err = h.service.Create(c.Request().Context(), dev, ctxUser(dev), ports.CreateListingInput{
		Title: req.Title,
		Bio:   req.Bio,
		Price: req.Price,
	})
	if err != nil {
		return err
	}

	metrics.ListingsCreatedTotal.WithLabelValues("profile").Inc()
	return c.Redirect(http.StatusSeeOther, domain.PathProviders)
}
