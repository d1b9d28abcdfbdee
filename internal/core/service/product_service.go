package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/listing"
	"github.com/fashionstore/storefront/internal/core/ports"
)

// allowedImageExts mirrors the formats accepted by the upload provider.
var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// CategoryResolver maps a category slug to a listing restriction.
type CategoryResolver interface {
	Resolve(ctx context.Context, slug string) (listing.CategoryRestriction, error)
}

type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	resolver   CategoryResolver
	images     ports.ImageStore
	cleanup    ports.ImageCleanupQueue
	log        zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	resolver CategoryResolver,
	images ports.ImageStore,
	cleanup ports.ImageCleanupQueue,
	log zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		resolver:   resolver,
		images:     images,
		cleanup:    cleanup,
		log:        log,
	}
}

// ListStorefront runs the storefront listing: sort and price parsing, category
// resolution, count, pagination and the page query. On any failure no partial
// result is returned.
func (s *ProductService) ListStorefront(ctx context.Context, in ports.ListStorefrontInput) (*ports.ListStorefrontResult, error) {
	sortSpec, err := listing.ParseSort(in.SortOrder)
	if err != nil {
		return nil, err
	}

	criteria := listing.Criteria{Scope: listing.Unscoped}
	if r, ok := listing.ParsePriceRange(in.Min, in.Max); ok {
		criteria.Price = &r
	}

	criteria.Category, err = s.resolver.Resolve(ctx, in.Category)
	if err != nil {
		return nil, requestFailed("list products", err)
	}

	total, err := s.products.Count(ctx, criteria)
	if err != nil {
		return nil, requestFailed("count products", err)
	}

	window := listing.Paginate(total, in.Page)

	products := []*domain.Product{}
	if window.Offset >= 0 && window.Offset < total {
		products, err = s.products.FindPage(ctx, criteria, sortSpec, window)
		if err != nil {
			return nil, requestFailed("find products", err)
		}
	}

	return &ports.ListStorefrontResult{
		Products:    products,
		TotalPages:  window.TotalPages,
		CurrentPage: window.CurrentPage,
		Count:       window.Count,
	}, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, slug)
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]domain.ProductSummary, error) {
	return s.products.SearchByName(ctx, name)
}

func (s *ProductService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *ProductService) ListOptions(ctx context.Context) ([]domain.ProductOption, error) {
	return s.products.ListOptions(ctx)
}

// GetByID retrieves a product within the caller's visibility scope.
func (s *ProductService) GetByID(ctx context.Context, id string, caller *domain.Identity) (*domain.Product, error) {
	return s.products.FindByID(ctx, id, listing.ScopeFor(caller))
}

// Create validates the form, uploads the optional image and stores the
// product. Validation always happens before anything is written.
func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	p, err := newProductFromInput(in)
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		ext := strings.ToLower(filepath.Ext(in.Image.Filename))
		if _, ok := allowedImageExts[ext]; !ok {
			return nil, domain.NewValidationError("image", "Image must be a jpg or png file.")
		}
		ref, err := s.images.Upload(ctx, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, requestFailed("upload image", err)
		}
		p.ImageURL = ref.URL
		p.ImageKey = ref.Key
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		if p.ImageKey != "" {
			s.cleanup.Enqueue(p.ImageKey)
		}
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, requestFailed("create product", err)
	}

	s.log.Info().Str("product_id", created.ID).Str("slug", created.Slug).Msg("product created")
	return created, nil
}

// Update applies u to product id. A slug or SKU already used by a different
// product is rejected before any write.
func (s *ProductService) Update(ctx context.Context, id string, u domain.ProductUpdate) error {
	if err := validateUpdate(u); err != nil {
		return err
	}

	var newSlug, newSKU string
	if u.Slug != nil {
		newSlug = *u.Slug
	}
	if u.SKU != nil {
		newSKU = *u.SKU
	}
	if newSlug != "" || newSKU != "" {
		found, err := s.products.FindConflicting(ctx, newSlug, newSKU)
		switch {
		case err == nil && found.ID != id:
			return domain.NewValidationError("slug", "Sku or slug is already in use.")
		case err != nil && !errors.Is(err, domain.ErrProductNotFound):
			return requestFailed("check product conflicts", err)
		}
	}

	if err := s.products.Update(ctx, id, u); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return err
		}
		return requestFailed("update product", err)
	}

	s.log.Info().Str("product_id", id).Msg("product updated")
	return nil
}

// SetActive toggles the product's active flag. A missing product is a no-op,
// not an error.
func (s *ProductService) SetActive(ctx context.Context, id string, active bool) error {
	err := s.Update(ctx, id, domain.ProductUpdate{IsActive: &active})
	if errors.Is(err, domain.ErrProductNotFound) {
		s.log.Debug().Str("product_id", id).Msg("set active on missing product")
		return nil
	}
	return err
}

// Delete removes a product, detaches it from its category and schedules its
// image for removal. Deleting a missing product reports zero deletions.
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return &domain.DeleteResult{DeletedCount: 0}, nil
		}
		return nil, requestFailed("delete product", err)
	}

	if err := s.categories.DetachProducts(ctx, []string{deleted.ID}); err != nil {
		s.log.Warn().Err(err).Str("product_id", deleted.ID).Msg("failed to detach product from categories")
	}
	if deleted.ImageKey != "" {
		s.cleanup.Enqueue(deleted.ImageKey)
	}

	s.log.Info().Str("product_id", deleted.ID).Msg("product deleted")
	return &domain.DeleteResult{DeletedCount: 1}, nil
}

func newProductFromInput(in ports.CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, domain.NewValidationError("name", "You must enter description & name.")
	}
	if strings.TrimSpace(in.Quantity) == "" {
		return nil, domain.NewValidationError("quantity", "You must enter a quantity.")
	}
	if strings.TrimSpace(in.Price) == "" {
		return nil, domain.NewValidationError("price", "You must enter a price.")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil || quantity < 0 {
		return nil, domain.NewValidationError("quantity", "Quantity must be a non-negative whole number.")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || !validPrice(price) {
		return nil, domain.NewValidationError("price", "Price must be a non-negative number.")
	}

	return &domain.Product{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Price:       price,
		SKU:         strings.TrimSpace(in.SKU),
		MerchantID:  strings.TrimSpace(in.MerchantID),
		IsActive:    true,
		Created:     time.Now().UTC(),
	}, nil
}

func validateUpdate(u domain.ProductUpdate) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return domain.NewValidationError("name", "Name cannot be empty.")
	}
	if u.Slug != nil && !slug.IsSlug(*u.Slug) {
		return domain.NewValidationError("slug", "Slug must contain only lowercase letters, digits and dashes.")
	}
	if u.Price != nil && !validPrice(*u.Price) {
		return domain.NewValidationError("price", "Price must be a non-negative number.")
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return domain.NewValidationError("quantity", "Quantity must be a non-negative whole number.")
	}
	return nil
}

func validPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

func requestFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRequestFailed, err)
}
