package ports

import (
	"context"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

// MediaUploadOptions carries the caller-facing upload parameters.
type MediaUploadOptions struct {
	// Folder groups assets on the media host.
	Folder string
	// SizePreset selects a fixed transform: "thumbnail", "medium" or
	// "large". Unknown or empty presets mean no resize, auto quality.
	SizePreset string
	// PublicID pins the storage key. Empty means a generated one.
	PublicID string
}

// MediaService validates and relays binary uploads to the media host.
// Validation (extension, content type, size) happens before any network call.
type MediaService interface {
	Upload(ctx context.Context, file MediaFile, opts MediaUploadOptions) (*domain.MediaAsset, error)
	// UploadMany uploads in parallel and fails as a whole on the first error.
	UploadMany(ctx context.Context, files []MediaFile, opts MediaUploadOptions) ([]*domain.MediaAsset, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}
