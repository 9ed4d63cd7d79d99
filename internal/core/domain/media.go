package domain

import "errors"

var ErrUploadFailed = errors.New("media upload failed")
var ErrUnsupportedMedia = errors.New("unsupported media type")
var ErrFileTooLarge = errors.New("file exceeds size limit")

// MediaAsset describes an asset hosted by the external media service.
type MediaAsset struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Bytes    int64  `json:"bytes,omitempty"`
}
