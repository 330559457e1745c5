package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customsapp "github.com/cargoflow/backend/internal/application/customs"
)

// CustomsHandler handles customs duty HTTP requests
type CustomsHandler struct {
	BaseHandler
	dutyService *customsapp.DutyService
}

// NewCustomsHandler creates a new customs handler
func NewCustomsHandler(dutyService *customsapp.DutyService) *CustomsHandler {
	return &CustomsHandler{dutyService: dutyService}
}

// Calculate runs the duty calculation for a CIF value. The result is
// advisory and nothing is persisted.
func (h *CustomsHandler) Calculate(c *gin.Context) {
	var req customsapp.CalculateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.dutyService.Calculate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateRate adds a duty rate for a vehicle category.
func (h *CustomsHandler) CreateRate(c *gin.Context) {
	var req customsapp.CreateDutyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.dutyService.CreateRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rate)
}

// UpdateRate changes the percentage of an existing duty rate.
func (h *CustomsHandler) UpdateRate(c *gin.Context) {
	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid duty rate ID format")
		return
	}

	var req customsapp.UpdateDutyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.dutyService.UpdateRate(c.Request.Context(), rateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// DeactivateRate retires a duty rate from future calculations.
func (h *CustomsHandler) DeactivateRate(c *gin.Context) {
	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid duty rate ID format")
		return
	}

	if err := h.dutyService.DeactivateRate(c.Request.Context(), rateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListRates returns a paginated list of duty rates.
func (h *CustomsHandler) ListRates(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rates, total, err := h.dutyService.ListRates(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rates, total, filter.Page, filter.PageSize)
}
