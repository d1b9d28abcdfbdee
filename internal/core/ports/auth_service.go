package ports

import (
	"context"

	"github.com/fashionstore/storefront/internal/core/domain"
)

// RegisterInput carries the fields of a self-service signup.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenVerifier resolves a bearer token to the caller's identity. Any failure
// is reported as domain.ErrUnauthenticated.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
