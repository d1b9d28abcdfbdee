package ports

import (
	"context"
	"io"
)

// ImageRef locates an uploaded image.
type ImageRef struct {
	URL string
	Key string
}

// ImageStore is the third-party storage provider for product images.
type ImageStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (ImageRef, error)
	Delete(ctx context.Context, key string) error
}

// ImageCleanupQueue accepts image keys whose removal can happen in the
// background.
type ImageCleanupQueue interface {
	Enqueue(key string)
}
