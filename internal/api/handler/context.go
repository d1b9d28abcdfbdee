package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fashionstore/storefront/internal/api/middleware"
	"github.com/fashionstore/storefront/internal/core/domain"
)

// callerIdentity returns the identity injected by the Authenticate middleware.
// Its absence means the route was registered without authentication.
func callerIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("body", "Invalid request payload.")
	}
	return c.Validate(req)
}
