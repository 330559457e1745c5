package partner

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ShipmentService tracks consignments from origin agents to handover
type ShipmentService struct {
	shipmentRepo partner.ShipmentRepository
	customerRepo partner.CustomerRepository
	agentRepo    partner.AgentRepository
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo partner.ShipmentRepository,
	customerRepo partner.CustomerRepository,
	agentRepo partner.AgentRepository,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		customerRepo: customerRepo,
		agentRepo:    agentRepo,
	}
}

// Create registers cargo received at an origin agent
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Customer is not active")
	}

	if req.AgentID != nil {
		agent, err := s.agentRepo.FindByID(ctx, *req.AgentID)
		if err != nil {
			return nil, err
		}
		if !agent.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Agent is not active")
		}
	}

	weight, err := valueobject.NewWeight(req.WeightKg)
	if err != nil {
		return nil, err
	}

	shipment, err := partner.NewShipment(req.CustomerID, req.RegionID, req.AgentID, weight, req.Description)
	if err != nil {
		return nil, err
	}

	number, err := s.shipmentRepo.GenerateShipmentNumber(ctx)
	if err != nil {
		return nil, err
	}
	shipment.ShipmentNumber = number
	if req.CreatedBy != nil {
		shipment.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Advance moves the shipment to its next status
func (s *ShipmentService) Advance(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := shipment.Advance(); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Cancel voids a shipment before delivery
func (s *ShipmentService) Cancel(ctx context.Context, shipmentID uuid.UUID) error {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return err
	}

	if err := shipment.Cancel(); err != nil {
		return err
	}
	return s.shipmentRepo.Save(ctx, shipment)
}

// GetByID retrieves a shipment by ID
func (s *ShipmentService) GetByID(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments with filtering and pagination
func (s *ShipmentService) List(ctx context.Context, filter partner.ShipmentFilter) ([]ShipmentResponse, int64, error) {
	shipments, total, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		responses[i] = ToShipmentResponse(&shipments[i])
	}
	return responses, total, nil
}
