package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fashionstore/storefront/internal/pkg/slugs"
)

// maxSlugAttempts bounds inserts that lose a slug race to a concurrent writer.
const maxSlugAttempts = 5

// nextSlug returns the first slug derived from base that coll does not use yet.
func nextSlug(ctx context.Context, coll *mongo.Collection, strategy slugs.Strategy, base string) (string, error) {
	cur, err := coll.Find(ctx,
		bson.M{"slug": bson.M{"$regex": strategy.Pattern(base)}},
		options.Find().SetProjection(bson.M{"slug": 1, "_id": 0}),
	)
	if err != nil {
		return "", fmt.Errorf("find slugs: %w", err)
	}

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return "", fmt.Errorf("decode slugs: %w", err)
	}

	taken := make([]string, 0, len(docs))
	for _, d := range docs {
		taken = append(taken, d.Slug)
	}
	return strategy.Unique(base, taken), nil
}
