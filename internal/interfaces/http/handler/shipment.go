package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/cargoflow/backend/internal/application/partner"
	"github.com/cargoflow/backend/internal/domain/partner"
)

// ShipmentHandler handles shipment HTTP requests
type ShipmentHandler struct {
	BaseHandler
	shipmentService *partnerapp.ShipmentService
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService *partnerapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// Create registers a new shipment for a customer.
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req partnerapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shipment)
}

// Advance moves a shipment to its next status along the fixed
// progression. Delivered and cancelled shipments cannot advance.
func (h *ShipmentHandler) Advance(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.Advance(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// Cancel cancels a shipment that has not been delivered.
func (h *ShipmentHandler) Cancel(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	if err := h.shipmentService.Cancel(c.Request.Context(), shipmentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get retrieves a shipment by ID.
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// List returns a paginated list of shipments with optional filtering.
func (h *ShipmentHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := partner.ShipmentFilter{Filter: base}
	if v := c.Query("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		filter.CustomerID = &id
	}
	if v := c.Query("agent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid agent ID format")
			return
		}
		filter.AgentID = &id
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
		status := partner.ShipmentStatus(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid shipment status")
			return
		}
		filter.Status = &status
	}

	shipments, total, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, shipments, total, filter.Page, filter.PageSize)
}
