package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pricingapp "github.com/cargoflow/backend/internal/application/pricing"
	"github.com/cargoflow/backend/internal/domain/pricing"
)

// RegionHandler handles destination region HTTP requests
type RegionHandler struct {
	BaseHandler
	regionService *pricingapp.RegionService
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(regionService *pricingapp.RegionService) *RegionHandler {
	return &RegionHandler{regionService: regionService}
}

// Create registers a new destination region.
func (h *RegionHandler) Create(c *gin.Context) {
	var req pricingapp.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	region, err := h.regionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, region)
}

// Update changes a region's display fields.
func (h *RegionHandler) Update(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	var req pricingapp.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	region, err := h.regionService.Update(c.Request.Context(), regionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, region)
}

// Get retrieves a region by ID.
func (h *RegionHandler) Get(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	region, err := h.regionService.GetByID(c.Request.Context(), regionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, region)
}

// List returns a paginated list of regions.
func (h *RegionHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := pricing.RegionFilter{Filter: base}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	regions, total, err := h.regionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, regions, total, filter.Page, filter.PageSize)
}

// Activate re-opens a region for new estimates and rate cards.
func (h *RegionHandler) Activate(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	if err := h.regionService.Activate(c.Request.Context(), regionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate retires a region. Existing documents are unaffected.
func (h *RegionHandler) Deactivate(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	if err := h.regionService.Deactivate(c.Request.Context(), regionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
