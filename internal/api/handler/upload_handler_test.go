package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

type stubMediaSvc struct {
	uploadOpts  *ports.MediaUploadOptions
	manyFiles   []ports.MediaFile
	deletedID   string
	deletedType string
	asset       *domain.MediaAsset
	err         error
}

func (s *stubMediaSvc) Upload(_ context.Context, _ ports.MediaFile, opts ports.MediaUploadOptions) (*domain.MediaAsset, error) {
	s.uploadOpts = &opts
	if s.err != nil {
		return nil, s.err
	}
	return s.asset, nil
}

func (s *stubMediaSvc) UploadMany(_ context.Context, files []ports.MediaFile, opts ports.MediaUploadOptions) ([]*domain.MediaAsset, error) {
	s.manyFiles = files
	s.uploadOpts = &opts
	if s.err != nil {
		return nil, s.err
	}
	assets := make([]*domain.MediaAsset, len(files))
	for i := range files {
		assets[i] = s.asset
	}
	return assets, nil
}

func (s *stubMediaSvc) Delete(_ context.Context, publicID, resourceType string) error {
	s.deletedID = publicID
	s.deletedType = resourceType
	return s.err
}

// multipartImages builds a multipart body with the given file names under
// the field, one "bytes" payload each.
func multipartImages(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		if _, err := io.WriteString(part, "bytes"); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func uploadContext(t *testing.T, target string, body *bytes.Buffer, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadHandler_Single(t *testing.T) {
	svc := &stubMediaSvc{asset: &domain.MediaAsset{URL: "https://res.cloudinary.com/demo/a.jpg", PublicID: "erp/uploads/a"}}
	h := NewUploadHandler(svc)

	body, ct := multipartImages(t, "image", "photo.jpg")
	c, rec := uploadContext(t, "/api/uploads/image?size=thumbnail", body, ct)

	if err := h.Single(c); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.uploadOpts.Folder != defaultUploadFolder {
		t.Fatalf("expected default folder, got %q", svc.uploadOpts.Folder)
	}
	if svc.uploadOpts.SizePreset != "thumbnail" {
		t.Fatalf("size preset not forwarded: %+v", svc.uploadOpts)
	}
}

func TestUploadHandler_Single_FolderOverride(t *testing.T) {
	svc := &stubMediaSvc{asset: &domain.MediaAsset{PublicID: "x"}}
	h := NewUploadHandler(svc)

	body, ct := multipartImages(t, "image", "photo.jpg")
	c, _ := uploadContext(t, "/api/uploads/image?folder=erp/products", body, ct)

	if err := h.Single(c); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if svc.uploadOpts.Folder != "erp/products" {
		t.Fatalf("folder not forwarded: %+v", svc.uploadOpts)
	}
}

func TestUploadHandler_Single_MissingFile(t *testing.T) {
	h := NewUploadHandler(&stubMediaSvc{})

	body, ct := multipartImages(t, "wrongfield", "photo.jpg")
	c, _ := uploadContext(t, "/api/uploads/image", body, ct)

	err := h.Single(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUploadHandler_Many(t *testing.T) {
	svc := &stubMediaSvc{asset: &domain.MediaAsset{PublicID: "x"}}
	h := NewUploadHandler(svc)

	body, ct := multipartImages(t, "images", "a.jpg", "b.png", "c.webp")
	c, rec := uploadContext(t, "/api/uploads/images", body, ct)

	if err := h.Many(c); err != nil {
		t.Fatalf("batch upload failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(svc.manyFiles) != 3 {
		t.Fatalf("expected 3 files forwarded, got %d", len(svc.manyFiles))
	}

	var resp uploadManyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(resp.Assets))
	}
}

func TestUploadHandler_Many_TooManyFiles(t *testing.T) {
	h := NewUploadHandler(&stubMediaSvc{})

	names := make([]string, maxBatchFiles+1)
	for i := range names {
		names[i] = fmt.Sprintf("img%d.jpg", i)
	}
	body, ct := multipartImages(t, "images", names...)
	c, _ := uploadContext(t, "/api/uploads/images", body, ct)

	err := h.Many(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUploadHandler_Many_NoFiles(t *testing.T) {
	h := NewUploadHandler(&stubMediaSvc{})

	body, ct := multipartImages(t, "images")
	c, _ := uploadContext(t, "/api/uploads/images", body, ct)

	err := h.Many(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUploadHandler_Delete(t *testing.T) {
	svc := &stubMediaSvc{}
	h := NewUploadHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/abc?resourceType=video", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("publicId")
	c.SetParamValues("abc")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.deletedID != "abc" || svc.deletedType != "video" {
		t.Fatalf("delete args not forwarded: id=%q type=%q", svc.deletedID, svc.deletedType)
	}
}
