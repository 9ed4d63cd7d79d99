package handler

import (
	"time"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

type createEnquiryRequest struct {
	Customer      string `json:"customer"      validate:"required"`
	ContactPerson string `json:"contactPerson" validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Phone         string `json:"phone"         validate:"required"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`

	Product            string `json:"product"  validate:"required"`
	Quantity           int    `json:"quantity" validate:"required,gt=0"`
	Specifications     string `json:"specifications"`
	DrawingRef         string `json:"drawingRef"`
	ExpectedDelivery   string `json:"expectedDelivery"`
	Timeline           string `json:"timeline"`
	Budget             string `json:"budget"`
	MaterialPreference string `json:"materialPreference"`
	Notes              string `json:"notes"`
}

// updateEnquiryRequest is a partial update. Omitted fields keep their stored
// values; status strings are stored verbatim.
type updateEnquiryRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// enquiryResponse serializes the display id (ENQ-xxx) as "id" — that is the
// identifier clients show and search by. The system key rides along as "_id"
// for the /:id routes.
type enquiryResponse struct {
	ID                 string    `json:"id"`
	SystemID           string    `json:"_id"`
	Customer           string    `json:"customer"`
	ContactPerson      string    `json:"contactPerson"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city,omitempty"`
	State              string    `json:"state,omitempty"`
	PostalCode         string    `json:"postalCode,omitempty"`
	Country            string    `json:"country,omitempty"`
	Product            string    `json:"product"`
	Quantity           int       `json:"quantity"`
	Specifications     string    `json:"specifications,omitempty"`
	DrawingRef         string    `json:"drawingRef,omitempty"`
	ExpectedDelivery   string    `json:"expectedDelivery,omitempty"`
	Timeline           string    `json:"timeline,omitempty"`
	Budget             string    `json:"budget,omitempty"`
	MaterialPreference string    `json:"materialPreference,omitempty"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes,omitempty"`
	Date               time.Time `json:"date"`
}

func toEnquiryResponse(e *domain.Enquiry) enquiryResponse {
	return enquiryResponse{
		ID:                 e.EnquiryID,
		SystemID:           e.ID,
		Customer:           e.Customer,
		ContactPerson:      e.ContactPerson,
		Email:              e.Email,
		Phone:              e.Phone,
		Address:            e.Address,
		City:               e.City,
		State:              e.State,
		PostalCode:         e.PostalCode,
		Country:            e.Country,
		Product:            e.Product,
		Quantity:           e.Quantity,
		Specifications:     e.Specifications,
		DrawingRef:         e.DrawingRef,
		ExpectedDelivery:   e.ExpectedDelivery,
		Timeline:           e.Timeline,
		Budget:             e.Budget,
		MaterialPreference: e.MaterialPreference,
		Status:             string(e.Status),
		Notes:              e.Notes,
		Date:               e.CreatedAt,
	}
}

func toEnquiryListResponse(enquiries []*domain.Enquiry) []enquiryResponse {
	out := make([]enquiryResponse, 0, len(enquiries))
	for _, e := range enquiries {
		out = append(out, toEnquiryResponse(e))
	}
	return out
}
