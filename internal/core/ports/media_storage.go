package ports

import (
	"context"
	"io"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

// MediaFile is an in-flight binary upload as received from the transport
// layer, before any validation or network call.
type MediaFile struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// UploadOptions carries the storage-side parameters for a single upload.
type UploadOptions struct {
	Folder string
	// PublicID is the storage key. Empty means the storage assigns one.
	PublicID string
	// Transformation is an eager transform applied by the media host
	// (e.g. "c_fill,h_200,w_200"). Empty means no transform.
	Transformation string
}

// MediaStorage abstracts the external media host. Implementations stream the
// binary to the service and return its canonical asset description.
type MediaStorage interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*domain.MediaAsset, error)
	// Delete removes an asset by public id. "Already absent" is success.
	Delete(ctx context.Context, publicID, resourceType string) error
}
