package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/steelcraft/erp-api/internal/api/metrics"
	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

// MaxUploadBytes is the hard cap on a single upload, checked before any
// network call.
const MaxUploadBytes = 5 << 20 // 5MB

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// presetTransformations maps size presets to the eager transform requested
// from the media host. Unknown presets fall through to auto quality only.
var presetTransformations = map[string]string{
	"thumbnail": "c_fill,h_200,w_200,q_auto",
	"medium":    "c_limit,h_500,w_500,q_auto",
	"large":     "c_limit,h_1024,w_1024,q_auto",
	// profile is used internally for avatar replacement, not exposed as a
	// query parameter.
	"profile": "c_fill,g_face,h_400,w_400,q_auto",
}

const defaultTransformation = "q_auto"

// MediaService validates uploads and relays them to the external media host.
type MediaService struct {
	storage ports.MediaStorage
	log     zerolog.Logger
}

func NewMediaService(storage ports.MediaStorage, log zerolog.Logger) *MediaService {
	return &MediaService{storage: storage, log: log}
}

// Upload validates and relays a single file.
func (s *MediaService) Upload(ctx context.Context, file ports.MediaFile, opts ports.MediaUploadOptions) (*domain.MediaAsset, error) {
	if err := validateFile(file); err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.UploadBytes.Observe(float64(file.Size))

	asset, err := s.storage.Upload(ctx, file.Reader, ports.UploadOptions{
		Folder:         opts.Folder,
		PublicID:       publicID(opts.PublicID),
		Transformation: transformation(opts.SizePreset),
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("filename", file.Filename).Msg("media upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	return asset, nil
}

// UploadMany relays files in parallel. A single failing upload fails the
// whole batch; there is no partial-success reporting.
func (s *MediaService) UploadMany(ctx context.Context, files []ports.MediaFile, opts ports.MediaUploadOptions) ([]*domain.MediaAsset, error) {
	// Validate everything up front so no bytes leave the process when any
	// file is unacceptable.
	for _, f := range files {
		if err := validateFile(f); err != nil {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	assets := make([]*domain.MediaAsset, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			metrics.UploadBytes.Observe(float64(f.Size))
			asset, err := s.storage.Upload(gctx, f.Reader, ports.UploadOptions{
				Folder:         opts.Folder,
				PublicID:       publicID(""),
				Transformation: transformation(opts.SizePreset),
			})
			if err != nil {
				return fmt.Errorf("%w: %s: %v", domain.ErrUploadFailed, f.Filename, err)
			}
			assets[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Add(float64(len(files)))
	return assets, nil
}

// Delete removes an asset by public id. The storage treats "already absent"
// as success.
func (s *MediaService) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	if err := s.storage.Delete(ctx, publicID, resourceType); err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrUploadFailed, publicID, err)
	}
	return nil
}

func validateFile(file ports.MediaFile) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: extension %q", domain.ErrUnsupportedMedia, ext)
	}
	if _, ok := allowedContentTypes[strings.ToLower(file.ContentType)]; !ok {
		return fmt.Errorf("%w: content type %q", domain.ErrUnsupportedMedia, file.ContentType)
	}
	if file.Size > MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, file.Size)
	}
	return nil
}

func transformation(preset string) string {
	if t, ok := presetTransformations[preset]; ok {
		return t
	}
	return defaultTransformation
}

func publicID(pinned string) string {
	if pinned != "" {
		return pinned
	}
	return uuid.NewString()
}
