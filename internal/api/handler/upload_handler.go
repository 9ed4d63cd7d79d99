package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

// maxBatchFiles caps the multi-upload endpoint.
const maxBatchFiles = 10

const defaultUploadFolder = "erp/uploads"

// UploadHandler relays image uploads to the media service.
type UploadHandler struct {
	media ports.MediaService
}

func NewUploadHandler(media ports.MediaService) *UploadHandler {
	return &UploadHandler{media: media}
}

type uploadManyResponse struct {
	Assets []*domain.MediaAsset `json:"assets"`
}

// Single handles POST /api/uploads/image with query params folder and size.
//
// @Summary      Upload a single image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image   formData  file    true   "Image file (jpeg/png/gif/webp, max 5MB)"
// @Param        folder  query     string  false  "Target folder"
// @Param        size    query     string  false  "Size preset: thumbnail, medium or large"
// @Success      201  {object}  domain.MediaAsset
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/uploads/image [post]
func (h *UploadHandler) Single(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	file, err := openMediaFile(fh)
	if err != nil {
		return err
	}

	asset, err := h.media.Upload(c.Request().Context(), file, ports.MediaUploadOptions{
		Folder:     folderOrDefault(c.QueryParam("folder")),
		SizePreset: c.QueryParam("size"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, asset)
}

// Many handles POST /api/uploads/images — up to 10 files in one request.
//
// @Summary      Upload multiple images
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        images  formData  file    true   "Image files (max 10)"
// @Param        folder  query     string  false  "Target folder"
// @Param        size    query     string  false  "Size preset: thumbnail, medium or large"
// @Success      201  {object}  uploadManyResponse
// @Failure      400  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/uploads/images [post]
func (h *UploadHandler) Many(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form is required")
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one image file is required")
	}
	if len(headers) > maxBatchFiles {
		return echo.NewHTTPError(http.StatusBadRequest, "too many files (max 10)")
	}

	files := make([]ports.MediaFile, 0, len(headers))
	for _, fh := range headers {
		file, err := openMediaFile(fh)
		if err != nil {
			return err
		}
		files = append(files, file)
	}

	assets, err := h.media.UploadMany(c.Request().Context(), files, ports.MediaUploadOptions{
		Folder:     folderOrDefault(c.QueryParam("folder")),
		SizePreset: c.QueryParam("size"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadManyResponse{Assets: assets})
}

// Delete handles DELETE /api/uploads/:publicId with query param resourceType.
//
// @Summary      Delete an uploaded asset
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Param        publicId      path   string  true   "Asset public id"
// @Param        resourceType  query  string  false  "Resource type (default image)"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/uploads/{publicId} [delete]
func (h *UploadHandler) Delete(c echo.Context) error {
	publicID := c.Param("publicId")
	if publicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "publicId is required")
	}

	if err := h.media.Delete(c.Request().Context(), publicID, c.QueryParam("resourceType")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Asset deleted"})
}

func openMediaFile(fh *multipart.FileHeader) (ports.MediaFile, error) {
	f, err := fh.Open()
	if err != nil {
		return ports.MediaFile{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable file: "+fh.Filename)
	}
	// Closed by the multipart form teardown at end of request.
	return ports.MediaFile{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
	}, nil
}

func folderOrDefault(folder string) string {
	if folder == "" {
		return defaultUploadFolder
	}
	return folder
}
