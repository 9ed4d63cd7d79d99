// Package cloudinary adapts the external media host behind the
// ports.MediaStorage interface. All validation happens upstream in the media
// service; this package only performs the network calls.
package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

// Config selects the account. URL takes precedence over the split
// credentials when both are set.
type Config struct {
	URL       string // cloudinary://<api_key>:<api_secret>@<cloud_name>
	CloudName string
	APIKey    string
	APISecret string
}

// Storage implements ports.MediaStorage against the Cloudinary API.
type Storage struct {
	cld *cloudinary.Cloudinary
}

// New initialises the Cloudinary client from cfg.
func New(cfg Config) (*Storage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Storage{cld: cld}, nil
}

// Upload streams r to the media host and returns the canonical asset.
func (s *Storage) Upload(ctx context.Context, r io.Reader, opts ports.UploadOptions) (*domain.MediaAsset, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         opts.Folder,
		PublicID:       opts.PublicID,
		Transformation: opts.Transformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return &domain.MediaAsset{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Width:    resp.Width,
		Height:   resp.Height,
		Format:   resp.Format,
		Bytes:    int64(resp.Bytes),
	}, nil
}

// Delete destroys an asset by public id. The host reports "not found" for
// already-absent assets; both that and "ok" count as success.
func (s *Storage) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}

	switch resp.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("cloudinary destroy: unexpected result %q", resp.Result)
	}
}
