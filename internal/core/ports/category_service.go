package ports

import (
	"context"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/listing"
)

// CreateCategoryInput carries the fields of a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Products    []string
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	// Resolve maps a category slug to the product ids it contains.
	Resolve(ctx context.Context, slug string) (listing.CategoryRestriction, error)
	Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
}
