package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/core/domain"
)

// GenericErrorMessage is returned for every failure that is not a known
// client error. Details are logged, never sent.
const GenericErrorMessage = "Your request could not be processed. Please try again."

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// notFoundResponse is the envelope used for missing resources.
type notFoundResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders missing resources as {"message": "..."} and everything else as
//     {"error": "..."}.
//   - Logs unexpected errors and collapses them to a generic 400.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (bind failures, 404 from router, rate limiting, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorResponse{Error: verr.Message}
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, notFoundResponse{Message: "No product found."}
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, notFoundResponse{Message: "No category found."}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, notFoundResponse{Message: "No user found for this email address."}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "Unauthorized"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "You are not allowed to make this request."}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "Invalid email or password."}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "That email address is already in use."}
	}

	// Malformed sort specs, store failures and anything unexpected share one
	// response so callers cannot probe internals.
	evt := log.Warn()
	if !errors.Is(err, domain.ErrInvalidSortSpec) {
		evt = log.Error()
	}
	evt.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")

	return http.StatusBadRequest, errorResponse{Error: GenericErrorMessage}
}
