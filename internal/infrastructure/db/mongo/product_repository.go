package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/listing"
	"github.com/fashionstore/storefront/internal/pkg/slugs"
)

const (
	productsCollection = "products"

	productSlugIndex = "products_slug_unique"
	productSKUIndex  = "products_sku_unique"
)

var errSlugOrSKUTaken = domain.NewValidationError("slug", "Sku or slug is already in use.")

type ProductRepository struct {
	col   *mongo.Collection
	slugs slugs.Strategy
}

func NewProductRepository(db *mongo.Database, strategy slugs.Strategy) *ProductRepository {
	return &ProductRepository{col: db.Collection(productsCollection), slugs: strategy}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	SKU         string             `bson:"sku,omitempty"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	ImageKey    string             `bson:"imageKey,omitempty"`
	IsActive    bool               `bson:"isActive"`
	Merchant    string             `bson:"merchant,omitempty"`
	Created     time.Time          `bson:"created"`
	Updated     time.Time          `bson:"updated,omitempty"`
}

// Create inserts p under a fresh slug derived from its name. A lost slug race
// is retried with the next free suffix; a duplicate SKU is a validation error.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoProduct(p)
	doc.ID = primitive.NewObjectID()
	if doc.Created.IsZero() {
		doc.Created = time.Now().UTC()
	}

	base := r.slugs.Base(p.Name)
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
			return nil, fmt.Errorf("insert product: %w", err)
		}
		if strings.Contains(err.Error(), productSKUIndex) {
			return nil, errSlugOrSKUTaken
		}
	}
	return nil, fmt.Errorf("insert product: no free slug for %q after %d attempts", base, maxSlugAttempts)
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// FindByID looks the product up by id. A merchant scope adds an owner filter,
// so products of other merchants are reported as not found.
func (r *ProductRepository) FindByID(ctx context.Context, id string, scope listing.Scope) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	filter := bson.M{"_id": oid}
	if scope.MerchantID != "" {
		filter["merchant"] = scope.MerchantID
	}
	return r.findOne(ctx, filter)
}

func (r *ProductRepository) FindConflicting(ctx context.Context, slug, sku string) (*domain.Product, error) {
	var or bson.A
	if slug != "" {
		or = append(or, bson.M{"slug": slug})
	}
	if sku != "" {
		or = append(or, bson.M{"sku": sku})
	}
	if len(or) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.findOne(ctx, bson.M{"$or": or})
}

// SearchByName matches name as a case-insensitive literal substring.
func (r *ProductRepository) SearchByName(ctx context.Context, name string) ([]domain.ProductSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	opts := options.Find().SetProjection(bson.M{"name": 1, "slug": 1, "imageUrl": 1, "price": 1, "_id": 0})

	docs, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProductSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ProductSummary{Name: d.Name, Slug: d.Slug, ImageURL: d.ImageURL, Price: d.Price})
	}
	return out, nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created", Value: -1}}))
	if err != nil {
		return nil, err
	}
	return toDomainProducts(docs), nil
}

func (r *ProductRepository) ListOptions(ctx context.Context) ([]domain.ProductOption, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProductOption, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ProductOption{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (r *ProductRepository) Count(ctx context.Context, c listing.Criteria) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, CountPipeline(c))
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	var res []struct {
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &res); err != nil {
		return 0, fmt.Errorf("decode product count: %w", err)
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0].Count, nil
}

func (r *ProductRepository) FindPage(ctx context.Context, c listing.Criteria, sort listing.SortSpec, w listing.Window) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, PagePipeline(c, sort, w))
	if err != nil {
		return nil, fmt.Errorf("find product page: %w", err)
	}

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode product page: %w", err)
	}
	return toDomainProducts(docs), nil
}

// Update applies the non-nil fields of u. Clearing the SKU removes the field
// so the sparse unique index keeps ignoring it.
func (r *ProductRepository) Update(ctx context.Context, id string, u domain.ProductUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.D{{Key: "updated", Value: time.Now().UTC()}}
	unset := bson.D{}
	if u.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *u.Name})
	}
	if u.Slug != nil {
		set = append(set, bson.E{Key: "slug", Value: *u.Slug})
	}
	if u.SKU != nil {
		if *u.SKU == "" {
			unset = append(unset, bson.E{Key: "sku", Value: ""})
		} else {
			set = append(set, bson.E{Key: "sku", Value: *u.SKU})
		}
	}
	if u.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *u.Description})
	}
	if u.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *u.Price})
	}
	if u.Quantity != nil {
		set = append(set, bson.E{Key: "quantity", Value: *u.Quantity})
	}
	if u.IsActive != nil {
		set = append(set, bson.E{Key: "isActive", Value: *u.IsActive})
	}

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errSlugOrSKUTaken
		}
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProduct
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique slug and SKU indexes plus the lookups used
// by listing filters.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName(productSlugIndex)},
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true).SetName(productSKUIndex)},
		{Keys: bson.D{{Key: "merchant", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "created", Value: -1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}
	return nil
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProduct
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]mongoProduct, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return docs, nil
}

func toMongoProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		Name:        p.Name,
		Slug:        p.Slug,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		ImageURL:    p.ImageURL,
		ImageKey:    p.ImageKey,
		IsActive:    p.IsActive,
		Merchant:    p.MerchantID,
		Created:     p.Created,
		Updated:     p.Updated,
	}
}

func (d mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Slug:        d.Slug,
		SKU:         d.SKU,
		Description: d.Description,
		Price:       d.Price,
		Quantity:    d.Quantity,
		ImageURL:    d.ImageURL,
		ImageKey:    d.ImageKey,
		IsActive:    d.IsActive,
		MerchantID:  d.Merchant,
		Created:     d.Created,
		Updated:     d.Updated,
	}
}

func toDomainProducts(docs []mongoProduct) []*domain.Product {
	out := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}
