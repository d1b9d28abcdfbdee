package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
		wantMsg  string
	}{
		{"product not found", fmt.Errorf("get: %w", domain.ErrProductNotFound), http.StatusNotFound, "message", "No product found."},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "error", "Unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "error", "You are not allowed to make this request."},
		{"validation", domain.NewValidationError("price", "You must enter a price."), http.StatusBadRequest, "error", "You must enter a price."},
		{"invalid sort", fmt.Errorf("%w: bad", domain.ErrInvalidSortSpec), http.StatusBadRequest, "error", GenericErrorMessage},
		{"request failed", fmt.Errorf("count: %w", domain.ErrRequestFailed), http.StatusBadRequest, "error", GenericErrorMessage},
		{"unknown", fmt.Errorf("boom"), http.StatusBadRequest, "error", GenericErrorMessage},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "error", "That email address is already in use."},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "error", "slow down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body[tt.wantKey] != tt.wantMsg {
				t.Fatalf("expected %s=%q, got %v", tt.wantKey, tt.wantMsg, body)
			}
		})
	}
}
