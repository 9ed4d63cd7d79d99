package domain

import (
	"errors"
	"fmt"
	"time"
)

// EnquiryStatus is the lifecycle state of a customer enquiry.
type EnquiryStatus string

const (
	StatusOpen      EnquiryStatus = "Open"
	StatusQuoted    EnquiryStatus = "Quoted"
	StatusConverted EnquiryStatus = "Converted"
	StatusClosed    EnquiryStatus = "Closed"
)

var ErrEnquiryNotFound = errors.New("enquiry not found")
var ErrInvalidEnquiry = errors.New("missing required enquiry fields")

// knownStatuses is the declared status set. Updates are NOT checked against
// it: any string sent by a caller is stored verbatim. The set exists for
// documentation and the default only.
var knownStatuses = map[EnquiryStatus]struct{}{
	StatusOpen:      {},
	StatusQuoted:    {},
	StatusConverted: {},
	StatusClosed:    {},
}

// IsKnownStatus reports whether s belongs to the declared status set.
func IsKnownStatus(s EnquiryStatus) bool {
	_, ok := knownStatuses[s]
	return ok
}

// FormatEnquiryID renders the human-facing identifier for sequence n,
// e.g. FormatEnquiryID(7) == "ENQ-007".
func FormatEnquiryID(n int64) string {
	return fmt.Sprintf("ENQ-%03d", n)
}

// Enquiry is a customer demo/quote request submitted through the public form.
// EnquiryID is the human-facing identifier and serializes as "id"; the
// storage key serializes as "_id".
type Enquiry struct {
	ID        string `json:"_id" bson:"_id,omitempty"`
	EnquiryID string `json:"id" bson:"enquiry_id"`

	// Contact
	Customer      string `json:"customer" bson:"customer"`
	ContactPerson string `json:"contactPerson" bson:"contact_person"`
	Email         string `json:"email" bson:"email"`
	Phone         string `json:"phone" bson:"phone"`
	Address       string `json:"address,omitempty" bson:"address,omitempty"`
	City          string `json:"city,omitempty" bson:"city,omitempty"`
	State         string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty" bson:"postal_code,omitempty"`
	Country       string `json:"country,omitempty" bson:"country,omitempty"`

	// Commercial
	Product            string `json:"product" bson:"product"`
	Quantity           int    `json:"quantity" bson:"quantity"`
	Specifications     string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	DrawingRef         string `json:"drawingRef,omitempty" bson:"drawing_ref,omitempty"`
	ExpectedDelivery   string `json:"expectedDelivery,omitempty" bson:"expected_delivery,omitempty"`
	Timeline           string `json:"timeline,omitempty" bson:"timeline,omitempty"`
	Budget             string `json:"budget,omitempty" bson:"budget,omitempty"`
	MaterialPreference string `json:"materialPreference,omitempty" bson:"material_preference,omitempty"`

	Status    EnquiryStatus `json:"status" bson:"status"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time     `json:"date" bson:"created_at"`
}
