package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	paymentapp "github.com/cargoflow/backend/internal/application/payment"
	"github.com/cargoflow/backend/internal/domain/payment"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record registers a payment claim against an invoice. The claim stays
// pending until a verifier matches it to a bank transaction.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req paymentapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	payment, err := h.paymentService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// Verify confirms a pending payment against a bank account. Verification
// books a credit transaction and rolls the amount into the invoice.
func (h *PaymentHandler) Verify(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req paymentapp.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	verifierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Verifier identity required")
		return
	}
	req.VerifierID = verifierID

	result, err := h.paymentService.Verify(c.Request.Context(), paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject declines a pending payment claim with a reason.
func (h *PaymentHandler) Reject(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req paymentapp.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	verifierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Verifier identity required")
		return
	}
	req.VerifierID = verifierID

	result, err := h.paymentService.Reject(c.Request.Context(), paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	result, err := h.paymentService.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of payments with optional filtering.
func (h *PaymentHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := payment.PaymentFilter{Filter: base}
	if v := c.Query("invoice_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid invoice ID format")
			return
		}
		filter.InvoiceID = &id
	}
	if v := c.Query("status"); v != "" {
		status := payment.VerificationStatus(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid verification status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("method"); v != "" {
		method := payment.Method(v)
		if !method.IsValid() {
			h.BadRequest(c, "Invalid payment method")
			return
		}
		filter.Method = &method
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListByInvoice returns all payments recorded against one invoice.
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("invoiceId"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}
