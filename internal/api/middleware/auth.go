package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fashionstore/storefront/internal/api/metrics"
	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/ports"
)

// IdentityKey is the echo context key holding the caller's *domain.Identity.
const IdentityKey = "identity"

// Authenticate verifies the bearer token and attaches the caller's identity to
// both the echo context and the request context. It never touches storage.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}

			id, err := verifier.Verify(token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}

			c.Set(IdentityKey, id)
			req := c.Request()
			c.SetRequest(req.WithContext(domain.ContextWithIdentity(req.Context(), id)))

			return next(c)
		}
	}
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	if id, ok := c.Get(IdentityKey).(*domain.Identity); ok {
		return id
	}
	if id, ok := domain.IdentityFromContext(c.Request().Context()); ok {
		return id
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
