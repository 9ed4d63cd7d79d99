package ports

import (
	"context"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

// EnquiryUpdate carries the mutable enquiry fields for a partial update.
// Nil pointers mean "leave unchanged".
type EnquiryUpdate struct {
	Status *domain.EnquiryStatus
	Notes  *string
}

// EnquiryRepository defines persistence operations for enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry) (*domain.Enquiry, error)
	// List returns all enquiries, most recently created first.
	List(ctx context.Context) ([]*domain.Enquiry, error)
	FindByID(ctx context.Context, id string) (*domain.Enquiry, error)
	FindByEnquiryID(ctx context.Context, enquiryID string) (*domain.Enquiry, error)
	// Update applies upd to the enquiry identified by id and returns the
	// updated record, or domain.ErrEnquiryNotFound.
	Update(ctx context.Context, id string, upd EnquiryUpdate) (*domain.Enquiry, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
