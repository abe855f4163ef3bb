package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ratehub/storefront/internal/core/domain"
	"github.com/ratehub/storefront/internal/gateway"
)

// errorPage is the viewmodel of the shared error template.
type errorPage struct {
	Status  int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the user.
//   - Renders the shared error page instead of a JSON envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if rerr := c.Render(code, "error", errorPage{Status: code, Message: msg}); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from the router, gate refusals, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// A backend rejection that no handler translated into an inline form
	// error surfaces with the backend's own message.
	var ge *gateway.Error
	if errors.As(err, &ge) {
		return http.StatusBadGateway, ge.Message
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have access to this page."
	case errors.Is(err, domain.ErrInvalidRating):
		return http.StatusUnprocessableEntity, "Ratings must be between 1 and 5 stars."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Please try again."
}
