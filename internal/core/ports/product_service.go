package ports

import (
	"context"
	"io"

	"github.com/fashionstore/storefront/internal/core/domain"
)

// ListStorefrontInput carries the raw query parameters of the storefront
// listing. Values are parsed by the service.
type ListStorefrontInput struct {
	SortOrder string
	Min       string
	Max       string
	Category  string
	Page      int
}

// ListStorefrontResult is one page of the storefront listing.
type ListStorefrontResult struct {
	Products    []*domain.Product
	TotalPages  int64
	CurrentPage int
	Count       int64
}

// ImageUpload is an image file received with a product.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateProductInput carries the raw form values of a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Quantity    string
	Price       string
	SKU         string
	MerchantID  string
	Image       *ImageUpload // optional
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	ListStorefront(ctx context.Context, in ListStorefrontInput) (*ListStorefrontResult, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]domain.ProductSummary, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListOptions(ctx context.Context) ([]domain.ProductOption, error)
	// GetByID applies the caller's visibility scope.
	GetByID(ctx context.Context, id string, caller *domain.Identity) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, u domain.ProductUpdate) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
}
