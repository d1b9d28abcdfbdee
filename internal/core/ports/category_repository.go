package ports

import (
	"context"

	"github.com/fashionstore/storefront/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// Create stores c, assigning its id and a unique slug derived from its name.
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	// DetachProducts removes the given product ids from every category.
	DetachProducts(ctx context.Context, productIDs []string) error
}
