package partner

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AgentService handles origin-agent business operations
type AgentService struct {
	agentRepo  partner.AgentRepository
	regionRepo pricing.RegionRepository
}

// NewAgentService creates a new AgentService
func NewAgentService(agentRepo partner.AgentRepository, regionRepo pricing.RegionRepository) *AgentService {
	return &AgentService{
		agentRepo:  agentRepo,
		regionRepo: regionRepo,
	}
}

// Create registers a new origin agent in a region
func (s *AgentService) Create(ctx context.Context, req CreateAgentRequest) (*AgentResponse, error) {
	region, err := s.regionRepo.FindByID(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}
	if !region.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Region is not active")
	}

	existing, err := s.agentRepo.FindByCode(ctx, req.Code)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Agent with this code already exists")
	}

	agent, err := partner.NewAgent(req.Code, req.Name, req.RegionID, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := agent.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.BankName != "" || req.BankAccount != "" {
		if err := agent.SetBankDetails(req.BankName, req.BankAccount); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		agent.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return nil, err
	}

	response := ToAgentResponse(agent)
	return &response, nil
}

// Update modifies an existing agent
func (s *AgentService) Update(ctx context.Context, agentID uuid.UUID, req UpdateAgentRequest) (*AgentResponse, error) {
	agent, err := s.agentRepo.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := agent.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := agent.ContactName
		phone := agent.Phone
		email := agent.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := agent.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}
	if req.BankName != nil || req.BankAccount != nil {
		bankName := agent.BankName
		bankAccount := agent.BankAccount
		if req.BankName != nil {
			bankName = *req.BankName
		}
		if req.BankAccount != nil {
			bankAccount = *req.BankAccount
		}
		if err := agent.SetBankDetails(bankName, bankAccount); err != nil {
			return nil, err
		}
	}

	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return nil, err
	}

	response := ToAgentResponse(agent)
	return &response, nil
}

// GetByID retrieves an agent by ID
func (s *AgentService) GetByID(ctx context.Context, agentID uuid.UUID) (*AgentResponse, error) {
	agent, err := s.agentRepo.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	response := ToAgentResponse(agent)
	return &response, nil
}

// List retrieves agents with filtering and pagination
func (s *AgentService) List(ctx context.Context, filter shared.Filter) ([]AgentResponse, int64, error) {
	agents, total, err := s.agentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AgentResponse, len(agents))
	for i := range agents {
		responses[i] = ToAgentResponse(&agents[i])
	}
	return responses, total, nil
}

// ListByRegion retrieves the agents operating in a region
func (s *AgentService) ListByRegion(ctx context.Context, regionID uuid.UUID) ([]AgentResponse, error) {
	agents, err := s.agentRepo.FindByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	responses := make([]AgentResponse, len(agents))
	for i := range agents {
		responses[i] = ToAgentResponse(&agents[i])
	}
	return responses, nil
}

// Activate reopens an agent account
func (s *AgentService) Activate(ctx context.Context, agentID uuid.UUID) error {
	return s.transition(ctx, agentID, (*partner.Agent).Activate)
}

// Deactivate closes an agent account
func (s *AgentService) Deactivate(ctx context.Context, agentID uuid.UUID) error {
	return s.transition(ctx, agentID, (*partner.Agent).Deactivate)
}

// Block stops all settlement activity with an agent
func (s *AgentService) Block(ctx context.Context, agentID uuid.UUID) error {
	return s.transition(ctx, agentID, (*partner.Agent).Block)
}

func (s *AgentService) transition(ctx context.Context, agentID uuid.UUID, fn func(*partner.Agent) error) error {
	agent, err := s.agentRepo.FindByID(ctx, agentID)
	if err != nil {
		return err
	}
	if err := fn(agent); err != nil {
		return err
	}
	return s.agentRepo.Save(ctx, agent)
}
