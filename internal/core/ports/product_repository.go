package ports

import (
	"context"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/listing"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create stores p, assigning its id and a unique slug derived from its name.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// FindByID retrieves a product by id, restricted to the given scope.
	FindByID(ctx context.Context, id string, scope listing.Scope) (*domain.Product, error)
	// FindConflicting returns any product using slug or sku. Empty values are
	// not matched. Returns domain.ErrProductNotFound when there is none.
	FindConflicting(ctx context.Context, slug, sku string) (*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]domain.ProductSummary, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListOptions(ctx context.Context) ([]domain.ProductOption, error)

	// Count and FindPage evaluate the same filter stages for c.
	Count(ctx context.Context, c listing.Criteria) (int64, error)
	FindPage(ctx context.Context, c listing.Criteria, sort listing.SortSpec, w listing.Window) ([]*domain.Product, error)

	Update(ctx context.Context, id string, u domain.ProductUpdate) error
	// Delete removes the product and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Product, error)
}
