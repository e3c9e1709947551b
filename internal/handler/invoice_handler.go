package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/middleware"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/response"
	"github.com/gymwarriors/fitnesshub-backend/internal/validator"
)

// Billing is the invoice surface. *service.InvoiceService implements it.
type Billing interface {
	ListInvoices(ctx context.Context) ([]model.Invoice, error)
	CreateInvoice(ctx context.Context, req *model.CreateInvoiceRequest, actor uuid.UUID) (*model.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id uuid.UUID, paidAt *time.Time, actor uuid.UUID) (*model.Invoice, error)
	DeleteInvoice(ctx context.Context, id, actor uuid.UUID) error
	MonthlyEarnings(ctx context.Context) ([]model.MonthlyEarning, error)
}

// InvoiceHandler serves membership billing to admins.
type InvoiceHandler struct {
	billing Billing
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(billing Billing) *InvoiceHandler {
	return &InvoiceHandler{billing: billing}
}

// ListInvoices godoc
// GET /api/v1/staff/invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.billing.ListInvoices(c.Request.Context())
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, invoices)
}

// MonthlyEarnings godoc
// GET /api/v1/staff/invoices/earnings
// Paid totals per payment month, for the dashboard chart.
func (h *InvoiceHandler) MonthlyEarnings(c *gin.Context) {
	earnings, err := h.billing.MonthlyEarnings(c.Request.Context())
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.List(c, earnings)
}

// CreateInvoice godoc
// POST /api/v1/staff/invoices
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req model.CreateInvoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	invoice, err := h.billing.CreateInvoice(c.Request.Context(), &req, middleware.GetClaims(c).UserID)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, invoice)
}

// MarkInvoicePaid godoc
// PATCH /api/v1/staff/invoices/:id/paid
// The body is optional; without payment_date the payment is dated now.
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	id, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.MarkInvoicePaidRequest
	if c.Request.ContentLength != 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	invoice, err := h.billing.MarkInvoicePaid(c.Request.Context(), id, req.PaymentDate, middleware.GetClaims(c).UserID)
	if err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, invoice)
}

// DeleteInvoice godoc
// DELETE /api/v1/staff/invoices/:id
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, ok := validator.ParamUUID(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.billing.DeleteInvoice(c.Request.Context(), id, middleware.GetClaims(c).UserID); err != nil {
		failWithServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice_id": id})
}
