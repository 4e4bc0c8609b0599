package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillsling/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Prefers the user-facing message carried by a domain.MessageError.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Error().Err(he.Internal).Str("path", c.Path()).Msg("request failed")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownRole):
		return http.StatusUnprocessableEntity, message(err)
	case errors.Is(err, domain.ErrNoAccount):
		return http.StatusNotFound, message(err)
	case errors.Is(err, domain.ErrEmailMismatch):
		return http.StatusUnauthorized, message(err)
	case errors.Is(err, domain.ErrNoSignupInProgress), errors.Is(err, domain.ErrInvalidSignupStep):
		return http.StatusConflict, message(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUnknownRoute):
		return http.StatusNotFound, "not found"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func message(err error) string {
	var me *domain.MessageError
	if errors.As(err, &me) {
		return me.Message
	}
	return err.Error()
}
