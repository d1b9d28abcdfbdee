package handler

import "github.com/fashionstore/storefront/internal/core/domain"

// --- Request / Response types ---

type listProductsResponse struct {
	Products    []*domain.Product `json:"products"`
	TotalPages  int64             `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
	Count       int64             `json:"count"`
}

type productResponse struct {
	Product *domain.Product `json:"product"`
}

type productsResponse struct {
	Products []*domain.Product `json:"products"`
}

type productSummariesResponse struct {
	Products []domain.ProductSummary `json:"products"`
}

type productOptionsResponse struct {
	Products []domain.ProductOption `json:"products"`
}

type addProductResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type deleteProductResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Product *domain.DeleteResult `json:"product"`
}

type productFields struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Slug        *string  `json:"slug" validate:"omitempty,min=1,max=120"`
	SKU         *string  `json:"sku" validate:"omitempty,max=64"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

type updateProductRequest struct {
	Product productFields `json:"product"`
}

type setActiveRequest struct {
	Product struct {
		IsActive *bool `json:"isActive" validate:"required"`
	} `json:"product"`
}

func (f productFields) toUpdate() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        f.Name,
		Slug:        f.Slug,
		SKU:         f.SKU,
		Description: f.Description,
		Price:       f.Price,
		Quantity:    f.Quantity,
		IsActive:    f.IsActive,
	}
}
