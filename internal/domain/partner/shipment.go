package partner

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ShipmentStatus tracks cargo from the origin agent to handover
type ShipmentStatus string

const (
	ShipmentStatusReceived  ShipmentStatus = "RECEIVED" // at the origin agent's warehouse
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusArrived   ShipmentStatus = "ARRIVED" // cleared at destination
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusCancelled ShipmentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusReceived, ShipmentStatusInTransit, ShipmentStatusArrived,
		ShipmentStatusDelivered, ShipmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true when the shipment can no longer move
func (s ShipmentStatus) IsTerminal() bool {
	return s == ShipmentStatusDelivered || s == ShipmentStatusCancelled
}

// next maps each status to its allowed forward transition
var shipmentNext = map[ShipmentStatus]ShipmentStatus{
	ShipmentStatusReceived:  ShipmentStatusInTransit,
	ShipmentStatusInTransit: ShipmentStatusArrived,
	ShipmentStatusArrived:   ShipmentStatusDelivered,
}

// Shipment is a consignment moving from an origin region to the
// destination. Estimates and invoices may reference it; the ranking
// engine counts shipments per employee.
type Shipment struct {
	shared.AuditedAggregateRoot
	ShipmentNumber string
	CustomerID     uuid.UUID
	AgentID        *uuid.UUID
	RegionID       uuid.UUID // origin region
	Weight         valueobject.Weight
	Description    string
	Status         ShipmentStatus
	DeliveredAt    *time.Time
}

// NewShipment creates a shipment in RECEIVED status
func NewShipment(customerID, regionID uuid.UUID, agentID *uuid.UUID, weight valueobject.Weight, description string) (*Shipment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}
	if weight.IsZero() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Shipment weight must be positive")
	}

	return &Shipment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		CustomerID:           customerID,
		AgentID:              agentID,
		RegionID:             regionID,
		Weight:               weight,
		Description:          description,
		Status:               ShipmentStatusReceived,
	}, nil
}

// Advance moves the shipment one step forward in its lifecycle
func (s *Shipment) Advance() error {
	next, ok := shipmentNext[s.Status]
	if !ok {
		return shared.NewDomainError("INVALID_STATE", "Shipment cannot advance from "+string(s.Status))
	}

	s.Status = next
	now := time.Now()
	if next == ShipmentStatusDelivered {
		s.DeliveredAt = &now
	}
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Cancel voids a shipment that has not been delivered
func (s *Shipment) Cancel() error {
	if s.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Shipment cannot be cancelled from "+string(s.Status))
	}

	s.Status = ShipmentStatusCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
