package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	settlementapp "github.com/cargoflow/backend/internal/application/settlement"
	"github.com/cargoflow/backend/internal/domain/settlement"
)

// SettlementHandler handles agent settlement HTTP requests
type SettlementHandler struct {
	BaseHandler
	settlementService *settlementapp.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *settlementapp.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// Create aggregates an agent's paid invoices over a period into a
// draft settlement.
func (h *SettlementHandler) Create(c *gin.Context) {
	var req settlementapp.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	result, err := h.settlementService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Approve moves a draft settlement to approved. The approver must be a
// different user than the creator.
func (h *SettlementHandler) Approve(c *gin.Context) {
	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	approverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Approver identity required")
		return
	}

	result, err := h.settlementService.Approve(c.Request.Context(), settlementID, approverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Pay marks an approved settlement as paid out through a bank account,
// booking the matching debit or credit transaction.
func (h *SettlementHandler) Pay(c *gin.Context) {
	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	var req settlementapp.PaySettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.settlementService.Pay(c.Request.Context(), settlementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CancelSettlementRequest carries the cancellation reason
type CancelSettlementRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// Cancel voids a settlement that has not been paid yet.
func (h *SettlementHandler) Cancel(c *gin.Context) {
	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	var req CancelSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.settlementService.Cancel(c.Request.Context(), settlementID, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get retrieves a settlement with its invoice breakdown.
func (h *SettlementHandler) Get(c *gin.Context) {
	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid settlement ID format")
		return
	}

	result, err := h.settlementService.GetByID(c.Request.Context(), settlementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of settlements with optional filtering.
func (h *SettlementHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := settlement.SettlementFilter{Filter: base}
	if v := c.Query("agent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid agent ID format")
			return
		}
		filter.AgentID = &id
	}
	if v := c.Query("status"); v != "" {
		status := settlement.Status(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid settlement status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		settType := settlement.Type(v)
		if !settType.IsValid() {
			h.BadRequest(c, "Invalid settlement type")
			return
		}
		filter.Type = &settType
	}

	settlements, total, err := h.settlementService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, settlements, total, filter.Page, filter.PageSize)
}

// ListByAgent returns the paginated settlement history of one agent.
func (h *SettlementHandler) ListByAgent(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("agentId"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settlements, total, err := h.settlementService.ListByAgent(c.Request.Context(), agentID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, settlements, total, filter.Page, filter.PageSize)
}
