package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/cargoflow/backend/internal/application/partner"
)

// AgentHandler handles overseas agent HTTP requests
type AgentHandler struct {
	BaseHandler
	agentService *partnerapp.AgentService
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService *partnerapp.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// Create registers a new overseas agent in a region.
func (h *AgentHandler) Create(c *gin.Context) {
	var req partnerapp.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	agent, err := h.agentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, agent)
}

// Update changes an agent's contact and banking details.
func (h *AgentHandler) Update(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID format")
		return
	}

	var req partnerapp.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	agent, err := h.agentService.Update(c.Request.Context(), agentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agent)
}

// Get retrieves an agent by ID.
func (h *AgentHandler) Get(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID format")
		return
	}

	agent, err := h.agentService.GetByID(c.Request.Context(), agentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agent)
}

// List returns a paginated list of agents.
func (h *AgentHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	agents, total, err := h.agentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, agents, total, filter.Page, filter.PageSize)
}

// ListByRegion returns all active agents serving a region.
func (h *AgentHandler) ListByRegion(c *gin.Context) {
	regionID, err := uuid.Parse(c.Param("regionId"))
	if err != nil {
		h.BadRequest(c, "Invalid region ID format")
		return
	}

	agents, err := h.agentService.ListByRegion(c.Request.Context(), regionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agents)
}

// Activate restores an agent to active status.
func (h *AgentHandler) Activate(c *gin.Context) {
	h.transition(c, h.agentService.Activate)
}

// Deactivate disables an agent.
func (h *AgentHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.agentService.Deactivate)
}

// Block blocks an agent from new shipments and settlements.
func (h *AgentHandler) Block(c *gin.Context) {
	h.transition(c, h.agentService.Block)
}

func (h *AgentHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID format")
		return
	}

	if err := fn(c.Request.Context(), agentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
