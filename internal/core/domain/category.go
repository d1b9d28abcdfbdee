package domain

import "time"

// Category groups products. Products holds the member product ids; a product
// belongs to at most one category.
type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Products    []string  `json:"products"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated,omitempty"`
}
