package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/listing"
	"github.com/fashionstore/storefront/internal/core/ports"
)

type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

// Resolve maps slug to its member product ids. An empty slug means no
// restriction; an unknown slug restricts to nothing.
func (s *CategoryService) Resolve(ctx context.Context, slug string) (listing.CategoryRestriction, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return listing.NoCategoryRestriction, nil
	}

	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return listing.Restrict(nil), nil
		}
		return listing.CategoryRestriction{}, fmt.Errorf("resolve category %q: %w", slug, err)
	}
	return listing.Restrict(c.Products), nil
}

// Create stores a new category. Listed products are first detached from any
// other category so each product keeps at most one.
func (s *CategoryService) Create(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "You must enter a name.")
	}

	products := dedupe(in.Products)
	if len(products) > 0 {
		if err := s.repo.DetachProducts(ctx, products); err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Products:    products,
		Created:     now,
		Updated:     now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("slug", created.Slug).Int("products", len(products)).Msg("category created")
	return created, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
