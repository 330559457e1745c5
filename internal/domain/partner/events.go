package partner

import (
	"github.com/cargoflow/backend/internal/domain/shared"
)

// Event types for the partner context
const (
	EventTypeCustomerCreated       = "customer.created"
	EventTypeCustomerUpdated       = "customer.updated"
	EventTypeCustomerStatusChanged = "customer.status_changed"
	EventTypeAgentCreated          = "agent.created"
	EventTypeAgentUpdated          = "agent.updated"
	EventTypeAgentStatusChanged    = "agent.status_changed"
)

// CustomerCreatedEvent is raised when a customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// CustomerUpdatedEvent is raised when customer details change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(c *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, "Customer", c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// CustomerStatusChangedEvent is raised on activation, deactivation or suspension
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(c *Customer, oldStatus, newStatus CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, "Customer", c.ID),
		OldStatus:       string(oldStatus),
		NewStatus:       string(newStatus),
	}
}

// AgentCreatedEvent is raised when an agent is registered
type AgentCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Name     string `json:"name"`
	RegionID string `json:"region_id"`
}

// NewAgentCreatedEvent creates a new AgentCreatedEvent
func NewAgentCreatedEvent(a *Agent) *AgentCreatedEvent {
	return &AgentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgentCreated, "Agent", a.ID),
		Code:            a.Code,
		Name:            a.Name,
		RegionID:        a.RegionID.String(),
	}
}

// AgentUpdatedEvent is raised when agent details change
type AgentUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewAgentUpdatedEvent creates a new AgentUpdatedEvent
func NewAgentUpdatedEvent(a *Agent) *AgentUpdatedEvent {
	return &AgentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgentUpdated, "Agent", a.ID),
		Code:            a.Code,
		Name:            a.Name,
	}
}

// AgentStatusChangedEvent is raised on activation, deactivation or blocking
type AgentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// NewAgentStatusChangedEvent creates a new AgentStatusChangedEvent
func NewAgentStatusChangedEvent(a *Agent, oldStatus, newStatus AgentStatus) *AgentStatusChangedEvent {
	return &AgentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgentStatusChanged, "Agent", a.ID),
		OldStatus:       string(oldStatus),
		NewStatus:       string(newStatus),
	}
}
