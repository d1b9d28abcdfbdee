package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fashionstore/storefront/internal/core/listing"
)

// CountPipeline counts the products matching c. The result is a single
// {count: n} document, or no document when nothing matches.
func CountPipeline(c listing.Criteria) mongo.Pipeline {
	return append(filterStages(c), bson.D{{Key: "$count", Value: "count"}})
}

// PagePipeline returns the products of window w matching c, ordered by sort.
// It shares its filter stages with CountPipeline so both see the same set.
func PagePipeline(c listing.Criteria, sort listing.SortSpec, w listing.Window) mongo.Pipeline {
	return append(filterStages(c),
		bson.D{{Key: "$sort", Value: sortDocument(sort)}},
		bson.D{{Key: "$skip", Value: w.Offset}},
		bson.D{{Key: "$limit", Value: w.Limit}},
	)
}

// filterStages renders c in a fixed order: category, price, merchant scope.
func filterStages(c listing.Criteria) mongo.Pipeline {
	stages := mongo.Pipeline{}

	if c.Category.Applied {
		stages = append(stages, bson.D{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$in", Value: objectIDs(c.Category.ProductIDs)}}},
		}}})
	}

	if c.Price != nil {
		stages = append(stages, bson.D{{Key: "$match", Value: bson.D{
			{Key: "price", Value: bson.D{
				{Key: "$gte", Value: c.Price.Min},
				{Key: "$lte", Value: c.Price.Max},
			}},
		}}})
	}

	if c.Scope.MerchantID != "" {
		stages = append(stages, bson.D{{Key: "$match", Value: bson.D{
			{Key: "merchant", Value: c.Scope.MerchantID},
		}}})
	}

	return stages
}

// sortDocument keeps the client's key order and appends _id so pages do not
// overlap when sort keys tie.
func sortDocument(sort listing.SortSpec) bson.D {
	if len(sort) == 0 {
		sort = listing.DefaultSort
	}
	doc := make(bson.D, 0, len(sort)+1)
	for _, f := range sort {
		doc = append(doc, bson.E{Key: f.Field, Value: int(f.Direction)})
	}
	return append(doc, bson.E{Key: "_id", Value: 1})
}

// objectIDs converts hex ids, dropping any that are not valid ObjectIDs since
// they cannot match a stored product. The result is never nil.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}
