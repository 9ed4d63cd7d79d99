package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

// newTestContext builds an echo context with the request validator wired,
// mirroring the router setup.
func newTestContext(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubEnquiryService struct {
	created   *ports.CreateEnquiryInput
	updateIn  *ports.UpdateEnquiryInput
	deletedID string
	enquiry   *domain.Enquiry
	list      []*domain.Enquiry
	err       error
}

func (s *stubEnquiryService) Create(_ context.Context, in ports.CreateEnquiryInput) (*domain.Enquiry, error) {
	s.created = &in
	if s.err != nil {
		return nil, s.err
	}
	return s.enquiry, nil
}

func (s *stubEnquiryService) List(_ context.Context) ([]*domain.Enquiry, error) {
	return s.list, s.err
}

func (s *stubEnquiryService) GetByID(_ context.Context, _ string) (*domain.Enquiry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.enquiry, nil
}

func (s *stubEnquiryService) GetByEnquiryID(_ context.Context, _ string) (*domain.Enquiry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.enquiry, nil
}

func (s *stubEnquiryService) UpdateStatus(_ context.Context, _ string, in ports.UpdateEnquiryInput) (*domain.Enquiry, error) {
	s.updateIn = &in
	if s.err != nil {
		return nil, s.err
	}
	return s.enquiry, nil
}

func (s *stubEnquiryService) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func sampleEnquiry() *domain.Enquiry {
	return &domain.Enquiry{
		ID:            "653a1b2c3d4e5f6a7b8c9d0e",
		EnquiryID:     "ENQ-007",
		Customer:      "Acme Fabrication",
		ContactPerson: "Jane Roe",
		Email:         "jane@acme.example",
		Phone:         "+1-555-0100",
		Product:       "Steel brackets",
		Quantity:      250,
		Status:        domain.StatusOpen,
		CreatedAt:     time.Now().UTC(),
	}
}

const createEnquiryBody = `{
	"customer": "Acme Fabrication",
	"contactPerson": "Jane Roe",
	"email": "jane@acme.example",
	"phone": "+1-555-0100",
	"product": "Steel brackets",
	"quantity": 250
}`

func TestEnquiryHandler_Create(t *testing.T) {
	svc := &stubEnquiryService{enquiry: sampleEnquiry()}
	h := NewEnquiryHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/enquiries", createEnquiryBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	// Clients identify enquiries by the display id, so it is the "id" field.
	id, _ := resp["id"].(string)
	if !regexp.MustCompile(`^ENQ-\d{3}$`).MatchString(id) {
		t.Fatalf("body field %q = %q does not match ENQ-\\d{3}", "id", id)
	}
	if resp["_id"] != "653a1b2c3d4e5f6a7b8c9d0e" {
		t.Fatalf("expected system key under _id, got %v", resp["_id"])
	}
	if resp["status"] != "Open" {
		t.Fatalf("expected status Open, got %v", resp["status"])
	}
	if _, hasDate := resp["date"]; !hasDate {
		t.Fatalf("expected date field in response")
	}

	if svc.created == nil || svc.created.Quantity != 250 {
		t.Fatalf("service received wrong input: %+v", svc.created)
	}
}

func TestEnquiryHandler_Create_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"missing customer": `{"contactPerson":"J","email":"j@x.com","phone":"1","product":"p","quantity":1}`,
		"bad email":        `{"customer":"A","contactPerson":"J","email":"nope","phone":"1","product":"p","quantity":1}`,
		"zero quantity":    `{"customer":"A","contactPerson":"J","email":"j@x.com","phone":"1","product":"p","quantity":0}`,
	}

	for name, body := range cases {
		svc := &stubEnquiryService{enquiry: sampleEnquiry()}
		h := NewEnquiryHandler(svc)

		c, _ := newTestContext(http.MethodPost, "/api/enquiries", body)
		err := h.Create(c)

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
		if svc.created != nil {
			t.Fatalf("%s: service called despite invalid payload", name)
		}
	}
}

func TestEnquiryHandler_List(t *testing.T) {
	svc := &stubEnquiryService{list: []*domain.Enquiry{sampleEnquiry(), sampleEnquiry()}}
	h := NewEnquiryHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/api/enquiries", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp))
	}
}

func TestEnquiryHandler_Get_NotFoundPassthrough(t *testing.T) {
	svc := &stubEnquiryService{err: domain.ErrEnquiryNotFound}
	h := NewEnquiryHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/api/enquiries/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.Get(c); !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Fatalf("expected ErrEnquiryNotFound passthrough, got %v", err)
	}
}

func TestEnquiryHandler_UpdateStatus_OmittedFieldsStayNil(t *testing.T) {
	svc := &stubEnquiryService{enquiry: sampleEnquiry()}
	h := NewEnquiryHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/api/enquiries/x", `{"notes":"called back"}`)
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.updateIn.Status != nil {
		t.Fatalf("omitted status must stay nil, got %q", *svc.updateIn.Status)
	}
	if svc.updateIn.Notes == nil || *svc.updateIn.Notes != "called back" {
		t.Fatalf("notes not forwarded: %+v", svc.updateIn)
	}
}

func TestEnquiryHandler_Delete(t *testing.T) {
	svc := &stubEnquiryService{}
	h := NewEnquiryHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/api/enquiries/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Message != "Enquiry deleted" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if svc.deletedID != "x" {
		t.Fatalf("expected delete of %q, got %q", "x", svc.deletedID)
	}
}
