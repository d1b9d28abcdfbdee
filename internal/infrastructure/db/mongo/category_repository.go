package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/pkg/slugs"
)

const categoriesCollection = "categories"

type CategoryRepository struct {
	col   *mongo.Collection
	slugs slugs.Strategy
}

func NewCategoryRepository(db *mongo.Database, strategy slugs.Strategy) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(categoriesCollection), slugs: strategy}
}

type mongoCategory struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Slug        string               `bson:"slug"`
	Description string               `bson:"description,omitempty"`
	Products    []primitive.ObjectID `bson:"products"`
	Created     time.Time            `bson:"created"`
	Updated     time.Time            `bson:"updated,omitempty"`
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCategory
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCategory{
		ID:          primitive.NewObjectID(),
		Name:        c.Name,
		Description: c.Description,
		Products:    objectIDs(c.Products),
		Created:     c.Created,
		Updated:     c.Updated,
	}

	base := r.slugs.Base(c.Name)
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := nextSlug(ctx, r.col, r.slugs, base)
		if err != nil {
			return nil, err
		}
		doc.Slug = slug

		_, err = r.col.InsertOne(ctx, doc)
		if err == nil {
			return doc.toDomain(), nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert category: %w", err)
		}
	}
	return nil, fmt.Errorf("insert category: no free slug for %q after %d attempts", base, maxSlugAttempts)
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var docs []mongoCategory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	out := make([]*domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// DetachProducts pulls the given product ids out of every category.
func (r *CategoryRepository) DetachProducts(ctx context.Context, productIDs []string) error {
	oids := objectIDs(productIDs)
	if len(oids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"products": bson.M{"$in": oids}},
		bson.M{"$pull": bson.M{"products": bson.M{"$in": oids}}},
	)
	if err != nil {
		return fmt.Errorf("detach products: %w", err)
	}
	return nil
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("categories_slug_unique")},
		{Keys: bson.D{{Key: "products", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("category indexes: %w", err)
	}
	return nil
}

func (d mongoCategory) toDomain() *domain.Category {
	return &domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Products:    hexIDs(d.Products),
		Created:     d.Created,
		Updated:     d.Updated,
	}
}
