package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/cargoflow/backend/internal/application/billing"
	"github.com/cargoflow/backend/internal/domain/billing"
)

// EstimateHandler handles estimate HTTP requests
type EstimateHandler struct {
	BaseHandler
	estimateService *billingapp.EstimateService
	invoiceService  *billingapp.InvoiceService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimateService *billingapp.EstimateService, invoiceService *billingapp.InvoiceService) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		invoiceService:  invoiceService,
	}
}

// Create prices a shipment against the region's active rate card and
// stores the result as a pending estimate.
func (h *EstimateHandler) Create(c *gin.Context) {
	var req billingapp.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	estimate, err := h.estimateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, estimate)
}

// Update reprices a pending estimate with new figures.
func (h *EstimateHandler) Update(c *gin.Context) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid estimate ID format")
		return
	}

	var req billingapp.UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	estimate, err := h.estimateService.Update(c.Request.Context(), estimateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// Get retrieves an estimate by ID.
func (h *EstimateHandler) Get(c *gin.Context) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid estimate ID format")
		return
	}

	estimate, err := h.estimateService.GetByID(c.Request.Context(), estimateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// List returns a paginated list of estimates with optional filtering.
func (h *EstimateHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := billing.EstimateFilter{Filter: base}
	if v := c.Query("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		filter.CustomerID = &id
	}
	if v := c.Query("region_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid region ID format")
			return
		}
		filter.RegionID = &id
	}
	if v := c.Query("status"); v != "" {
		status := billing.EstimateStatus(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid estimate status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		estType := billing.EstimateType(v)
		if !estType.IsValid() {
			h.BadRequest(c, "Invalid estimate type")
			return
		}
		filter.Type = &estType
	}

	estimates, total, err := h.estimateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, estimates, total, filter.Page, filter.PageSize)
}

// ConvertToInvoice converts a pending estimate into an invoice.
// An estimate converts at most once; a repeat call is a conflict.
func (h *EstimateHandler) ConvertToInvoice(c *gin.Context) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid estimate ID format")
		return
	}

	invoice, err := h.invoiceService.ConvertEstimate(c.Request.Context(), estimateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// RejectEstimateRequest carries the rejection reason
type RejectEstimateRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Reject declines a pending estimate.
func (h *EstimateHandler) Reject(c *gin.Context) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid estimate ID format")
		return
	}

	var req RejectEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.estimateService.Reject(c.Request.Context(), estimateID, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a pending estimate. Converted estimates cannot be deleted.
func (h *EstimateHandler) Delete(c *gin.Context) {
	estimateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid estimate ID format")
		return
	}

	if err := h.estimateService.Delete(c.Request.Context(), estimateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
