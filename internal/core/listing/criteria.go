package listing

import "github.com/fashionstore/storefront/internal/core/domain"

// CategoryRestriction limits a listing to the products of one category.
// Applied with an empty ProductIDs means a category was requested but matched
// nothing, which yields zero results.
type CategoryRestriction struct {
	Applied    bool
	ProductIDs []string
}

// NoCategoryRestriction means no category filter was requested.
var NoCategoryRestriction = CategoryRestriction{}

// Restrict returns an applied restriction over ids.
func Restrict(ids []string) CategoryRestriction {
	if ids == nil {
		ids = []string{}
	}
	return CategoryRestriction{Applied: true, ProductIDs: ids}
}

// Scope is the visibility scope of the caller. A non-empty MerchantID limits
// results to products owned by that merchant.
type Scope struct {
	MerchantID string
}

// Unscoped sees every product.
var Unscoped = Scope{}

// Criteria is the set of filters shared by the count and page queries.
type Criteria struct {
	Category CategoryRestriction
	Price    *PriceRange
	Scope    Scope
}

// ScopeFor returns the visibility scope of id. Callers bound to a merchant
// only see that merchant's products.
func ScopeFor(id *domain.Identity) Scope {
	if id == nil || id.MerchantID == "" {
		return Unscoped
	}
	return Scope{MerchantID: id.MerchantID}
}
