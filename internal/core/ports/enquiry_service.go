package ports

import (
	"context"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

// CreateEnquiryInput carries the public submission payload.
type CreateEnquiryInput struct {
	Customer      string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	PostalCode    string
	Country       string

	Product            string
	Quantity           int
	Specifications     string
	DrawingRef         string
	ExpectedDelivery   string
	Timeline           string
	Budget             string
	MaterialPreference string
	Notes              string
}

// UpdateEnquiryInput is a partial update; nil pointers leave the stored
// value unchanged. Status values are stored verbatim, without a membership
// check against the declared set.
type UpdateEnquiryInput struct {
	Status *string
	Notes  *string
}

// EnquiryService defines the enquiry use-cases.
type EnquiryService interface {
	Create(ctx context.Context, in CreateEnquiryInput) (*domain.Enquiry, error)
	List(ctx context.Context) ([]*domain.Enquiry, error)
	GetByID(ctx context.Context, id string) (*domain.Enquiry, error)
	GetByEnquiryID(ctx context.Context, enquiryID string) (*domain.Enquiry, error)
	UpdateStatus(ctx context.Context, id string, in UpdateEnquiryInput) (*domain.Enquiry, error)
	Delete(ctx context.Context, id string) error
}
