package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/steelcraft/erp-api/internal/core/ports"
)

// EnquiryHandler handles the enquiry lifecycle endpoints.
type EnquiryHandler struct {
	service ports.EnquiryService
}

func NewEnquiryHandler(service ports.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// Create handles POST /api/enquiries — the public submission form.
//
// @Summary      Submit a new enquiry
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Param        body  body      createEnquiryRequest  true  "Enquiry details"
// @Success      201   {object}  enquiryResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/enquiries [post]
func (h *EnquiryHandler) Create(c echo.Context) error {
	var req createEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enquiry, err := h.service.Create(c.Request().Context(), ports.CreateEnquiryInput{
		Customer:           req.Customer,
		ContactPerson:      req.ContactPerson,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		PostalCode:         req.PostalCode,
		Country:            req.Country,
		Product:            req.Product,
		Quantity:           req.Quantity,
		Specifications:     req.Specifications,
		DrawingRef:         req.DrawingRef,
		ExpectedDelivery:   req.ExpectedDelivery,
		Timeline:           req.Timeline,
		Budget:             req.Budget,
		MaterialPreference: req.MaterialPreference,
		Notes:              req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEnquiryResponse(enquiry))
}

// List handles GET /api/enquiries, newest first.
//
// @Summary      List all enquiries
// @Tags         enquiries
// @Produce      json
// @Success      200  {array}  enquiryResponse
// @Router       /api/enquiries [get]
func (h *EnquiryHandler) List(c echo.Context) error {
	enquiries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnquiryListResponse(enquiries))
}

// Get handles GET /api/enquiries/:id.
//
// @Summary      Get an enquiry by system id
// @Tags         enquiries
// @Produce      json
// @Param        id  path  string  true  "System id"
// @Success      200  {object}  enquiryResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/enquiries/{id} [get]
func (h *EnquiryHandler) Get(c echo.Context) error {
	enquiry, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnquiryResponse(enquiry))
}

// GetByEnquiryID handles GET /api/enquiries/custom/:displayId.
//
// @Summary      Get an enquiry by display id (ENQ-xxx)
// @Tags         enquiries
// @Produce      json
// @Param        displayId  path  string  true  "Display id, e.g. ENQ-042"
// @Success      200  {object}  enquiryResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/enquiries/custom/{displayId} [get]
func (h *EnquiryHandler) GetByEnquiryID(c echo.Context) error {
	enquiry, err := h.service.GetByEnquiryID(c.Request().Context(), c.Param("displayId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnquiryResponse(enquiry))
}

// UpdateStatus handles PUT /api/enquiries/:id. An omitted status leaves the
// stored value unchanged.
//
// @Summary      Update enquiry status/notes
// @Tags         enquiries
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "System id"
// @Param        body  body  updateEnquiryRequest  true  "Fields to update"
// @Success      200  {object}  enquiryResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/enquiries/{id} [put]
func (h *EnquiryHandler) UpdateStatus(c echo.Context) error {
	var req updateEnquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	enquiry, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), ports.UpdateEnquiryInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnquiryResponse(enquiry))
}

// Delete handles DELETE /api/enquiries/:id.
//
// @Summary      Delete an enquiry
// @Tags         enquiries
// @Produce      json
// @Param        id  path  string  true  "System id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Enquiry deleted"})
}
