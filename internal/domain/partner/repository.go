package partner

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository persists Customer aggregates
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, customer *Customer) error
}

// AgentRepository persists Agent aggregates
type AgentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Agent, error)
	FindByCode(ctx context.Context, code string) (*Agent, error)
	FindByRegion(ctx context.Context, regionID uuid.UUID) ([]Agent, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Agent, int64, error)
	Save(ctx context.Context, agent *Agent) error
	Delete(ctx context.Context, agent *Agent) error
}

// ShipmentFilter defines filtering options for shipment queries
type ShipmentFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	AgentID    *uuid.UUID
	RegionID   *uuid.UUID
	Status     *ShipmentStatus
}

// ShipmentRepository persists Shipment aggregates
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByNumber(ctx context.Context, number string) (*Shipment, error)
	FindAll(ctx context.Context, filter ShipmentFilter) ([]Shipment, int64, error)
	Save(ctx context.Context, shipment *Shipment) error
	// GenerateShipmentNumber produces the next SHP-YYYY-NNNNN number
	GenerateShipmentNumber(ctx context.Context) (string, error)
}
