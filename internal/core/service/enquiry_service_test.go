package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

type stubEnquiryRepo struct {
	enquiries []*domain.Enquiry
	nextID    int
}

func (r *stubEnquiryRepo) Create(_ context.Context, e *domain.Enquiry) (*domain.Enquiry, error) {
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("%024d", r.nextID)
	r.enquiries = append(r.enquiries, &clone)
	out := clone
	return &out, nil
}

func (r *stubEnquiryRepo) List(_ context.Context) ([]*domain.Enquiry, error) {
	out := make([]*domain.Enquiry, 0, len(r.enquiries))
	for i := len(r.enquiries) - 1; i >= 0; i-- {
		clone := *r.enquiries[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubEnquiryRepo) FindByID(_ context.Context, id string) (*domain.Enquiry, error) {
	for _, e := range r.enquiries {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEnquiryNotFound
}

func (r *stubEnquiryRepo) FindByEnquiryID(_ context.Context, enquiryID string) (*domain.Enquiry, error) {
	for _, e := range r.enquiries {
		if e.EnquiryID == enquiryID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEnquiryNotFound
}

func (r *stubEnquiryRepo) Update(_ context.Context, id string, upd ports.EnquiryUpdate) (*domain.Enquiry, error) {
	for _, e := range r.enquiries {
		if e.ID == id {
			if upd.Status != nil {
				e.Status = *upd.Status
			}
			if upd.Notes != nil {
				e.Notes = *upd.Notes
			}
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEnquiryNotFound
}

func (r *stubEnquiryRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.enquiries {
		if e.ID == id {
			r.enquiries = append(r.enquiries[:i], r.enquiries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEnquiryNotFound
}

func (r *stubEnquiryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.enquiries)), nil
}

type stubSequencer struct {
	n   int64
	err error
}

func (s *stubSequencer) Next(_ context.Context) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.n++
	return s.n, nil
}

func validEnquiryInput() ports.CreateEnquiryInput {
	return ports.CreateEnquiryInput{
		Customer:      "Acme Fabrication",
		ContactPerson: "Jane Roe",
		Email:         "jane@acme.example",
		Phone:         "+1-555-0100",
		Product:       "Steel brackets",
		Quantity:      250,
	}
}

func TestEnquiryService_Create_SequentialDisplayIDs(t *testing.T) {
	svc := NewEnquiryService(&stubEnquiryRepo{}, &stubSequencer{}, zerolog.Nop())

	for i := 1; i <= 3; i++ {
		e, err := svc.Create(context.Background(), validEnquiryInput())
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		want := fmt.Sprintf("ENQ-%03d", i)
		if e.EnquiryID != want {
			t.Fatalf("expected %s, got %s", want, e.EnquiryID)
		}
		if e.Status != domain.StatusOpen {
			t.Fatalf("expected status %q, got %q", domain.StatusOpen, e.Status)
		}
		if e.CreatedAt.IsZero() {
			t.Fatalf("expected CreatedAt stamp")
		}
	}
}

func TestEnquiryService_Create_SequencerFallback(t *testing.T) {
	repo := &stubEnquiryRepo{}
	svc := NewEnquiryService(repo, &stubSequencer{err: errors.New("redis down")}, zerolog.Nop())

	first, err := svc.Create(context.Background(), validEnquiryInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.EnquiryID != "ENQ-001" {
		t.Fatalf("expected fallback ENQ-001, got %s", first.EnquiryID)
	}

	second, err := svc.Create(context.Background(), validEnquiryInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.EnquiryID != "ENQ-002" {
		t.Fatalf("expected fallback ENQ-002, got %s", second.EnquiryID)
	}
}

func TestEnquiryService_Create_Validation(t *testing.T) {
	svc := NewEnquiryService(&stubEnquiryRepo{}, &stubSequencer{}, zerolog.Nop())

	cases := map[string]func(*ports.CreateEnquiryInput){
		"missing customer": func(in *ports.CreateEnquiryInput) { in.Customer = "" },
		"missing contact":  func(in *ports.CreateEnquiryInput) { in.ContactPerson = "" },
		"missing email":    func(in *ports.CreateEnquiryInput) { in.Email = "" },
		"missing phone":    func(in *ports.CreateEnquiryInput) { in.Phone = "" },
		"missing product":  func(in *ports.CreateEnquiryInput) { in.Product = "" },
		"zero quantity":    func(in *ports.CreateEnquiryInput) { in.Quantity = 0 },
	}

	for name, mutate := range cases {
		in := validEnquiryInput()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidEnquiry) {
			t.Fatalf("%s: expected ErrInvalidEnquiry, got %v", name, err)
		}
	}
}

func TestEnquiryService_CreateReadRoundTrip(t *testing.T) {
	repo := &stubEnquiryRepo{}
	svc := NewEnquiryService(repo, &stubSequencer{}, zerolog.Nop())

	in := ports.CreateEnquiryInput{
		Customer:      "Acme Fabrication",
		ContactPerson: "Jane Roe",
		Email:         "jane@acme.example",
		Phone:         "+1-555-0100",
		Address:       "1 Forge Way",
		City:          "Sheffield",
		State:         "South Yorkshire",
		PostalCode:    "S1 2AB",
		Country:       "UK",

		Product:            "Steel brackets",
		Quantity:           250,
		Specifications:     "3mm mild steel, powder coated",
		DrawingRef:         "DRW-2291-B",
		ExpectedDelivery:   "2026-11-15",
		Timeline:           "6 weeks",
		Budget:             "12000 GBP",
		MaterialPreference: "S275JR",
		Notes:              "site access restricted on Fridays",
	}

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}

	// Every submitted field survives the round trip verbatim.
	fields := map[string][2]string{
		"customer":           {in.Customer, got.Customer},
		"contactPerson":      {in.ContactPerson, got.ContactPerson},
		"email":              {in.Email, got.Email},
		"phone":              {in.Phone, got.Phone},
		"address":            {in.Address, got.Address},
		"city":               {in.City, got.City},
		"state":              {in.State, got.State},
		"postalCode":         {in.PostalCode, got.PostalCode},
		"country":            {in.Country, got.Country},
		"product":            {in.Product, got.Product},
		"specifications":     {in.Specifications, got.Specifications},
		"drawingRef":         {in.DrawingRef, got.DrawingRef},
		"expectedDelivery":   {in.ExpectedDelivery, got.ExpectedDelivery},
		"timeline":           {in.Timeline, got.Timeline},
		"budget":             {in.Budget, got.Budget},
		"materialPreference": {in.MaterialPreference, got.MaterialPreference},
		"notes":              {in.Notes, got.Notes},
	}
	for name, v := range fields {
		if v[0] != v[1] {
			t.Errorf("%s: submitted %q, read back %q", name, v[0], v[1])
		}
	}
	if got.Quantity != in.Quantity {
		t.Errorf("quantity: submitted %d, read back %d", in.Quantity, got.Quantity)
	}
}

func TestEnquiryService_UpdateStatus(t *testing.T) {
	repo := &stubEnquiryRepo{}
	svc := NewEnquiryService(repo, &stubSequencer{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), validEnquiryInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quoted := "Quoted"
	updated, err := svc.UpdateStatus(context.Background(), created.ID, ports.UpdateEnquiryInput{Status: &quoted})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusQuoted {
		t.Fatalf("expected Quoted, got %q", updated.Status)
	}

	// Notes-only update leaves the status as is.
	notes := "customer called back"
	updated, err = svc.UpdateStatus(context.Background(), created.ID, ports.UpdateEnquiryInput{Notes: &notes})
	if err != nil {
		t.Fatalf("notes update failed: %v", err)
	}
	if updated.Status != domain.StatusQuoted || updated.Notes != notes {
		t.Fatalf("unexpected record after notes update: %+v", updated)
	}

	// Empty update is a plain read.
	updated, err = svc.UpdateStatus(context.Background(), created.ID, ports.UpdateEnquiryInput{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if updated.Status != domain.StatusQuoted || updated.Notes != notes {
		t.Fatalf("empty update changed the record: %+v", updated)
	}
}

func TestEnquiryService_UpdateStatus_StoresUnknownVerbatim(t *testing.T) {
	repo := &stubEnquiryRepo{}
	svc := NewEnquiryService(repo, &stubSequencer{}, zerolog.Nop())

	created, _ := svc.Create(context.Background(), validEnquiryInput())

	odd := "On Hold"
	updated, err := svc.UpdateStatus(context.Background(), created.ID, ports.UpdateEnquiryInput{Status: &odd})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if string(updated.Status) != "On Hold" {
		t.Fatalf("expected verbatim status, got %q", updated.Status)
	}
}

func TestEnquiryService_Delete(t *testing.T) {
	repo := &stubEnquiryRepo{}
	svc := NewEnquiryService(repo, &stubSequencer{}, zerolog.Nop())

	created, _ := svc.Create(context.Background(), validEnquiryInput())

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Fatalf("expected ErrEnquiryNotFound on repeat delete, got %v", err)
	}
}

func TestEnquiryService_List_NewestFirst(t *testing.T) {
	repo := &stubEnquiryRepo{}
	svc := NewEnquiryService(repo, &stubSequencer{}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), validEnquiryInput()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 enquiries, got %d", len(list))
	}
	if list[0].EnquiryID != "ENQ-003" || list[2].EnquiryID != "ENQ-001" {
		t.Fatalf("expected newest first, got %s .. %s", list[0].EnquiryID, list[2].EnquiryID)
	}
}
