package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type addCategoryRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=1000"`
	Products    []string `json:"products"`
}

type addCategoryResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Category *domain.Category `json:"category"`
}

type categoriesResponse struct {
	Categories []*domain.Category `json:"categories"`
}

// Add creates a category and moves the listed products into it.
//
// @Summary      Add category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCategoryRequest  true  "Category"
// @Success      200   {object}  addCategoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /category/add [post]
func (h *CategoryHandler) Add(c echo.Context) error {
	var req addCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cat, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Products:    req.Products,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, addCategoryResponse{
		Success:  true,
		Message:  "Category has been added successfully!",
		Category: cat,
	})
}

// List returns every category.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Router       /category/list [get]
func (h *CategoryHandler) List(c echo.Context) error {
	cats, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: cats})
}
