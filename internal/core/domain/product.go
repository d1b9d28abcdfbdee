package domain

import "time"

// Product is a catalog item. Slug is unique and derived from Name on creation.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	ImageKey    string    `json:"-"`
	IsActive    bool      `json:"isActive"`
	MerchantID  string    `json:"merchant,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated,omitempty"`
}

// ProductSummary is the projection returned by name search.
type ProductSummary struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Price    float64 `json:"price"`
}

// ProductOption is the id/name pair used by select inputs.
type ProductOption struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// ProductUpdate carries the mutable fields of a product. Nil fields are left
// untouched.
type ProductUpdate struct {
	Name        *string
	Slug        *string
	SKU         *string
	Description *string
	Price       *float64
	Quantity    *int
	IsActive    *bool
}

// Empty reports whether the update sets nothing.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Slug == nil && u.SKU == nil && u.Description == nil &&
		u.Price == nil && u.Quantity == nil && u.IsActive == nil
}

// DeleteResult reports the outcome of a delete, not the deleted record.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
