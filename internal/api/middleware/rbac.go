package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/fashionstore/storefront/internal/api/metrics"
	"github.com/fashionstore/storefront/internal/core/domain"
)

// RequireRoles admits callers whose role is one of roles. It must run after
// Authenticate; a request without an identity is unauthenticated.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	required := domain.NewRoleSet(roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := domain.Authorize(required, IdentityFrom(c)); err != nil {
				reason := "forbidden"
				if errors.Is(err, domain.ErrUnauthenticated) {
					reason = "unauthenticated"
				}
				metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
				return err
			}
			return next(c)
		}
	}
}
