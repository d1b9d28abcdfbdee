package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/fashionstore/storefront/internal/core/ports"
)

// ErrUploadsDisabled is returned when no storage provider is configured.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

var allowedFormats = api.CldAPIArray{"jpg", "jpeg", "png"}

// CloudinaryConfig holds the credentials and target folder for uploads.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CloudinaryStore keeps product images on Cloudinary. The image key is the
// asset's public id.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

// Upload stores content under a random public id and returns its secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, filename string, content io.Reader) (ports.ImageRef, error) {
	overwrite := false
	params := uploader.UploadParams{
		PublicID:       uuid.NewString(),
		Folder:         s.folder,
		ResourceType:   "image",
		AllowedFormats: allowedFormats,
		Overwrite:      &overwrite,
	}

	res, err := s.cld.Upload.Upload(ctx, content, params)
	if err != nil {
		return ports.ImageRef{}, fmt.Errorf("upload %s: %w", filename, err)
	}
	if res.Error.Message != "" {
		return ports.ImageRef{}, fmt.Errorf("upload %s: %s", filename, res.Error.Message)
	}
	if res.SecureURL == "" {
		return ports.ImageRef{}, fmt.Errorf("upload %s: no URL returned", filename)
	}

	key := res.PublicID
	if key == "" {
		key = path.Join(s.folder, params.PublicID)
	}
	return ports.ImageRef{URL: res.SecureURL, Key: key}, nil
}

// Delete removes the asset. An asset that is already gone is not an error.
func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", key, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", key, res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("destroy %s: unexpected result %q", key, res.Result)
	}
	return nil
}

// DisabledStore rejects uploads. It stands in when Cloudinary credentials are
// absent so the rest of the catalog keeps working.
type DisabledStore struct{}

func (DisabledStore) Upload(context.Context, string, io.Reader) (ports.ImageRef, error) {
	return ports.ImageRef{}, ErrUploadsDisabled
}

func (DisabledStore) Delete(context.Context, string) error {
	return nil
}
