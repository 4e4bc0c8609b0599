package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillsling/marketplace/internal/api/metrics"
	"github.com/skillsling/marketplace/internal/core/domain"
	"github.com/skillsling/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Screen renders the auth screen with the device's signup draft.
//
// @Summary      Auth screen
// @Tags         auth
// @Produce      json
// @Success      200  {object}  screenResponse
// @Router       /auth [get]
func (h *AuthHandler) Screen(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	return renderScreen(c, domain.ScreenAuth, ctxUser(dev), authScreenData{
		Draft:    h.authService.CurrentDraft(c.Request().Context(), dev),
		Services: domain.ServiceCatalogue,
	})
}

// Signup submits roles and basic info. A provider signup continues to the
// details step; a client-only signup commits and redirects.
//
// @Summary      Submit signup basic info
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Roles, name, email and password"
// @Success      200   {object}  signupStepResponse
// @Success      303   "Redirect to the post-auth route"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
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

	res, err := h.authService.SubmitBasicInfo(c.Request().Context(), dev, ports.BasicInfoInput{
		Roles:    req.Roles,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		countRejection(err, domain.StepBasicInfo)
		return err
	}

	if res.Step == domain.StepProviderDetails {
		return c.JSON(http.StatusOK, signupStepResponse{Step: res.Step, Draft: res.Form})
	}
	return committed(c, res)
}

// SignupDetails finishes a provider signup.
//
// @Summary      Submit provider details
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupDetailsRequest  true  "Services, bio and price"
// @Success      303   "Redirect to the post-auth route"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/signup/details [post]
func (h *AuthHandler) SignupDetails(c echo.Context) error {
	var req signupDetailsRequest
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

	res, err := h.authService.SubmitProviderDetails(c.Request().Context(), dev, ports.ProviderDetailsInput{
		Services: req.Services,
		Bio:      req.Bio,
		Price:    req.Price,
	})
	if err != nil {
		countRejection(err, domain.StepProviderDetails)
		return err
	}
	return committed(c, res)
}

// SignupBack returns a provider signup to the basic info step.
//
// @Summary      Go back to basic info
// @Tags         auth
// @Produce      json
// @Success      200  {object}  signupStepResponse
// @Failure      409  {object}  map[string]string
// @Router       /auth/signup/back [post]
func (h *AuthHandler) SignupBack(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	form, err := h.authService.BackToBasicInfo(c.Request().Context(), dev)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, signupStepResponse{Step: form.Step, Draft: form})
}

// Login re-adopts the account stored on this device.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email and password"
// @Success      303   "Redirect to the post-auth route"
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
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

	res, err := h.authService.Login(c.Request().Context(), dev, ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, domain.ErrNoAccount):
		metrics.LoginsTotal.WithLabelValues("no_account").Inc()
		return err
	case errors.Is(err, domain.ErrEmailMismatch):
		metrics.LoginsTotal.WithLabelValues("mismatch").Inc()
		return err
	case err != nil:
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.Redirect(http.StatusSeeOther, res.Route)
}

// Logout clears the session.
//
// @Summary      Log out
// @Tags         auth
// @Success      303  "Redirect to /auth"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	dev, err := ctxDevice(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), dev); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, domain.PathAuth)
}

func committed(c echo.Context, res *ports.SignupResult) error {
	metrics.SignupsTotal.WithLabelValues(res.User.Roles.String()).Inc()
	if res.Listing != nil {
		metrics.ListingsCreatedTotal.WithLabelValues("signup").Inc()
	}
	return c.Redirect(http.StatusSeeOther, res.Route)
}

func countRejection(err error, step domain.SignupStep) {
	if errors.Is(err, domain.ErrValidation) {
		metrics.SignupRejectionsTotal.WithLabelValues(string(step)).Inc()
	}
}
