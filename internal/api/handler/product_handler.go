package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fashionstore/storefront/internal/api/metrics"
	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListStorefront returns one page of the storefront listing.
//
// @Summary      List storefront products
// @Description  Filters by category slug and price range, sorts by a JSON sort object and pages 8 products at a time.
// @Tags         products
// @Produce      json
// @Param        sortOrder  query     string  false  "JSON sort object, e.g. {\"price\":-1}"
// @Param        min        query     number  false  "Minimum price (used only with max)"
// @Param        max        query     number  false  "Maximum price (used only with min)"
// @Param        category   query     string  false  "Category slug"
// @Param        page       query     int     false  "1-based page number"
// @Success      200        {object}  listProductsResponse
// @Failure      400        {object}  map[string]string
// @Router       /product/list [get]
func (h *ProductHandler) ListStorefront(c echo.Context) error {
	start := time.Now()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	res, err := h.service.ListStorefront(c.Request().Context(), ports.ListStorefrontInput{
		SortOrder: c.QueryParam("sortOrder"),
		Min:       c.QueryParam("min"),
		Max:       c.QueryParam("max"),
		Category:  c.QueryParam("category"),
		Page:      page,
	})

	result := "ok"
	switch {
	case errors.Is(err, domain.ErrInvalidSortSpec):
		result = "invalid_sort"
	case err != nil:
		result = "error"
	}
	metrics.ListingRequestsTotal.WithLabelValues(result).Inc()
	metrics.ListingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Products:    res.Products,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
		Count:       res.Count,
	})
}

// GetBySlug returns a single product by slug.
//
// @Summary      Get product by slug
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  productResponse
// @Failure      404   {object}  map[string]string
// @Router       /product/item/{slug} [get]
func (h *ProductHandler) GetBySlug(c echo.Context) error {
	p, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Product: p})
}

// SearchByName matches products whose name contains the given text.
//
// @Summary      Search products by name
// @Tags         products
// @Produce      json
// @Param        name  path      string  true  "Name fragment"
// @Success      200   {object}  productSummariesResponse
// @Router       /product/list/search/{name} [get]
func (h *ProductHandler) SearchByName(c echo.Context) error {
	products, err := h.service.SearchByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	if products == nil {
		products = []domain.ProductSummary{}
	}
	return c.JSON(http.StatusOK, productSummariesResponse{Products: products})
}

// ListOptions returns id and name of every product.
//
// @Summary      List product options
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productOptionsResponse
// @Failure      401  {object}  map[string]string
// @Router       /product/list/select [get]
func (h *ProductHandler) ListOptions(c echo.Context) error {
	products, err := h.service.ListOptions(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []domain.ProductOption{}
	}
	return c.JSON(http.StatusOK, productOptionsResponse{Products: products})
}

// ListAll returns every product.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /product [get]
func (h *ProductHandler) ListAll(c echo.Context) error {
	products, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, productsResponse{Products: products})
}

// GetByID returns a product by id. Merchants only see their own products.
//
// @Summary      Get product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /product/{id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	p, err := h.service.GetByID(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Product: p})
}

// Add creates a product from a multipart form with an optional image.
//
// @Summary      Add product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Name"
// @Param        description  formData  string  true   "Description"
// @Param        quantity     formData  int     true   "Quantity"
// @Param        price        formData  number  true   "Price"
// @Param        sku          formData  string  false  "SKU"
// @Param        image        formData  file    false  "Product image (jpg or png)"
// @Success      200          {object}  addProductResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /product/add [post]
func (h *ProductHandler) Add(c echo.Context) error {
	in := ports.CreateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Quantity:    c.FormValue("quantity"),
		Price:       c.FormValue("price"),
		SKU:         c.FormValue("sku"),
		MerchantID:  c.FormValue("merchant"),
	}

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return domain.NewValidationError("image", "Image could not be read.")
		}
		defer f.Close()
		in.Image = &ports.ImageUpload{Filename: fh.Filename, Content: f}
	}

	p, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	metrics.ProductsCreatedTotal.Inc()

	return c.JSON(http.StatusOK, addProductResponse{
		Success: true,
		Message: "Product has been added successfully!",
		Product: p,
	})
}

// Update applies a partial update to a product.
//
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), c.Param("id"), req.Product.toUpdate()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Product has been updated successfully!"})
}

// SetActive toggles a product's active flag.
//
// @Summary      Activate or deactivate product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Product id"
// @Param        body  body      setActiveRequest  true  "Active flag"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /product/{id}/active [put]
func (h *ProductHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.SetActive(c.Request().Context(), c.Param("id"), *req.Product.IsActive); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Product has been updated successfully!"})
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  deleteProductResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /product/delete/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	res, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteProductResponse{
		Success: true,
		Message: "Product has been deleted successfully!",
		Product: res,
	})
}
