package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"room_booking/config"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned by uploads when no image host is set up.
var ErrNotConfigured = errors.New("image storage is not configured")

// File is an uploaded file as received from a client.
type File struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

type Image struct {
	URL      string
	PublicID string
}

type ImageStore interface {
	Upload(ctx context.Context, file File, folder string) (*Image, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld  *cloudinary.Cloudinary
	root string
}

func NewCloudinaryStore(cfg config.CloudinarySettings) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld, root: cfg.Folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file File, folder string) (*Image, error) {
	res, err := s.cld.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		Folder:       path.Join(s.root, folder),
		PublicID:     uuid.NewString(),
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload %s: %w", file.Filename, err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload %s: %s", file.Filename, res.Error.Message)
	}
	return &Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Error.Message)
	}
	return nil
}

// Disabled rejects uploads. It lets the server run without image hosting.
type Disabled struct{}

func (Disabled) Upload(context.Context, File, string) (*Image, error) { return nil, ErrNotConfigured }

func (Disabled) Delete(context.Context, string) error { return nil }
