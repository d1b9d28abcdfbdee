package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDisabledStore(t *testing.T) {
	var s DisabledStore
	if _, err := s.Upload(context.Background(), "a.jpg", strings.NewReader("x")); !errors.Is(err, ErrUploadsDisabled) {
		t.Fatalf("expected ErrUploadsDisabled, got %v", err)
	}
	if err := s.Delete(context.Background(), "k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestNewCloudinaryStore(t *testing.T) {
	s, err := NewCloudinaryStore(CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "products",
	})
	if err != nil {
		t.Fatalf("NewCloudinaryStore returned error: %v", err)
	}
	if s.folder != "products" || s.cld == nil {
		t.Fatalf("unexpected store: %+v", s)
	}
}
