package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pricingapp "github.com/cargoflow/backend/internal/application/pricing"
	"github.com/cargoflow/backend/internal/domain/pricing"
)

// RateCardHandler handles rate card HTTP requests
type RateCardHandler struct {
	BaseHandler
	rateCardService *pricingapp.RateCardService
}

// NewRateCardHandler creates a new rate card handler
func NewRateCardHandler(rateCardService *pricingapp.RateCardService) *RateCardHandler {
	return &RateCardHandler{rateCardService: rateCardService}
}

// Create introduces a new rate card for a region. Any previously active
// card of the region is retired in the same transaction.
func (h *RateCardHandler) Create(c *gin.Context) {
	var req pricingapp.CreateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	card, err := h.rateCardService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, card)
}

// Update changes the figures of an existing rate card.
func (h *RateCardHandler) Update(c *gin.Context) {
	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rate card ID format")
		return
	}

	var req pricingapp.UpdateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	card, err := h.rateCardService.Update(c.Request.Context(), cardID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, card)
}

// GetActive returns the single active rate card of a region.
func (h *RateCardHandler) GetActive(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	card, err := h.rateCardService.GetActiveByRegion(c.Request.Context(), regionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, card)
}

// ListByRegion returns all rate cards of a region, active and retired.
func (h *RateCardHandler) ListByRegion(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	cards, err := h.rateCardService.ListByRegion(c.Request.Context(), regionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cards)
}

// Quote resolves the effective per-kilogram rate for a region.
// The kind query parameter selects the customer or agent rate.
func (h *RateCardHandler) Quote(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	kind := pricing.RateKind(c.DefaultQuery("kind", string(pricing.RateKindCustomer)))
	if !kind.IsValid() {
		h.BadRequest(c, "Invalid rate kind")
		return
	}

	quote, err := h.rateCardService.Resolve(c.Request.Context(), regionID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}
