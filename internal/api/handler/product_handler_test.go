package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fashionstore/storefront/internal/api/middleware"
	"github.com/fashionstore/storefront/internal/core/domain"
	"github.com/fashionstore/storefront/internal/core/ports"
)

type stubProductService struct {
	ports.ProductService

	listFn      func(ctx context.Context, in ports.ListStorefrontInput) (*ports.ListStorefrontResult, error)
	getByIDFn   func(ctx context.Context, id string, caller *domain.Identity) (*domain.Product, error)
	createFn    func(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error)
	updateFn    func(ctx context.Context, id string, u domain.ProductUpdate) error
	setActiveFn func(ctx context.Context, id string, active bool) error
	deleteFn    func(ctx context.Context, id string) (*domain.DeleteResult, error)
}

func (s *stubProductService) ListStorefront(ctx context.Context, in ports.ListStorefrontInput) (*ports.ListStorefrontResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubProductService) GetByID(ctx context.Context, id string, caller *domain.Identity) (*domain.Product, error) {
	return s.getByIDFn(ctx, id, caller)
}

func (s *stubProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Update(ctx context.Context, id string, u domain.ProductUpdate) error {
	return s.updateFn(ctx, id, u)
}

func (s *stubProductService) SetActive(ctx context.Context, id string, active bool) error {
	return s.setActiveFn(ctx, id, active)
}

func (s *stubProductService) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_ListStorefront(t *testing.T) {
	e := newEcho()
	var got ports.ListStorefrontInput
	handler := NewProductHandler(&stubProductService{
		listFn: func(_ context.Context, in ports.ListStorefrontInput) (*ports.ListStorefrontResult, error) {
			got = in
			return &ports.ListStorefrontResult{
				Products:    []*domain.Product{{ID: "p1", Name: "shirt"}},
				TotalPages:  4,
				CurrentPage: 2,
				Count:       25,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, `/product/list?sortOrder=%7B%22price%22%3A-1%7D&min=1&max=9&category=shoes&page=2&limit=50`, nil)
	rec := httptest.NewRecorder()
	if err := handler.ListStorefront(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got.SortOrder != `{"price":-1}` || got.Min != "1" || got.Max != "9" || got.Category != "shoes" || got.Page != 2 {
		t.Fatalf("unexpected service input: %+v", got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"products", "totalPages", "currentPage", "count"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("missing %q in response: %v", key, resp)
		}
	}
	if resp["count"].(float64) != 25 || resp["currentPage"].(float64) != 2 {
		t.Fatalf("unexpected paging: %v", resp)
	}
}

func TestProductHandler_ListStorefront_Error(t *testing.T) {
	e := newEcho()
	handler := NewProductHandler(&stubProductService{
		listFn: func(context.Context, ports.ListStorefrontInput) (*ports.ListStorefrontResult, error) {
			return nil, domain.ErrInvalidSortSpec
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/product/list?sortOrder=oops", nil)
	rec := httptest.NewRecorder()
	if err := handler.ListStorefront(e.NewContext(req, rec)); !errors.Is(err, domain.ErrInvalidSortSpec) {
		t.Fatalf("expected ErrInvalidSortSpec, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("no partial body may be written, got %s", rec.Body.String())
	}
}

func TestProductHandler_GetByID_PassesCaller(t *testing.T) {
	e := newEcho()
	caller := &domain.Identity{UserID: "u1", Role: domain.RoleMerchant, MerchantID: "m1"}
	handler := NewProductHandler(&stubProductService{
		getByIDFn: func(_ context.Context, id string, got *domain.Identity) (*domain.Product, error) {
			if id != "p1" || got != caller {
				t.Fatalf("unexpected args: %s %+v", id, got)
			}
			return &domain.Product{ID: id}, nil
		},
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set(middleware.IdentityKey, caller)

	if err := handler.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := handler.GetByID(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without identity, got %v", err)
	}
}

func TestProductHandler_Add_Multipart(t *testing.T) {
	e := newEcho()
	var got ports.CreateProductInput
	var image []byte
	handler := NewProductHandler(&stubProductService{
		createFn: func(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
			got = in
			if in.Image != nil {
				image, _ = io.ReadAll(in.Image.Content)
			}
			return &domain.Product{ID: "p1", Name: in.Name, Slug: "blue-shirt"}, nil
		},
	})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("name", "Blue Shirt")
	_ = w.WriteField("description", "cotton")
	_ = w.WriteField("quantity", "3")
	_ = w.WriteField("price", "19.99")
	fw, _ := w.CreateFormFile("image", "shirt.png")
	_, _ = fw.Write([]byte("png-bytes"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/product/add", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()

	if err := handler.Add(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Name != "Blue Shirt" || got.Quantity != "3" || got.Price != "19.99" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if got.Image == nil || got.Image.Filename != "shirt.png" || string(image) != "png-bytes" {
		t.Fatalf("image not forwarded")
	}

	var resp addProductResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message != "Product has been added successfully!" || resp.Product.Slug != "blue-shirt" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Update(t *testing.T) {
	e := newEcho()
	var got domain.ProductUpdate
	handler := NewProductHandler(&stubProductService{
		updateFn: func(_ context.Context, id string, u domain.ProductUpdate) error {
			got = u
			return nil
		},
	})

	c, rec := jsonContext(e, http.MethodPut, "/product/p1", `{"product":{"name":"New","price":12.5}}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Name == nil || *got.Name != "New" || got.Price == nil || *got.Price != 12.5 || got.Slug != nil {
		t.Fatalf("unexpected update: %+v", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = jsonContext(e, http.MethodPut, "/product/p1", `{"product":{"price":-1}}`)
	if err := handler.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProductHandler_SetActive(t *testing.T) {
	e := newEcho()
	var got *bool
	handler := NewProductHandler(&stubProductService{
		setActiveFn: func(_ context.Context, _ string, active bool) error {
			got = &active
			return nil
		},
	})

	c, _ := jsonContext(e, http.MethodPut, "/product/p1/active", `{"product":{"isActive":false}}`)
	if err := handler.SetActive(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got == nil || *got {
		t.Fatalf("expected isActive=false, got %v", got)
	}

	c, _ = jsonContext(e, http.MethodPut, "/product/p1/active", `{"product":{}}`)
	if err := handler.SetActive(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error when isActive is missing, got %v", err)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	e := newEcho()
	handler := NewProductHandler(&stubProductService{
		deleteFn: func(context.Context, string) (*domain.DeleteResult, error) {
			return &domain.DeleteResult{DeletedCount: 1}, nil
		},
	})

	rec := httptest.NewRecorder()
	if err := handler.Delete(e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	product, ok := resp["product"].(map[string]any)
	if !ok || product["deletedCount"].(float64) != 1 {
		t.Fatalf("unexpected response: %v", resp)
	}
}
