package partner

import (
	"strings"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AgentStatus represents the status of an agent
type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "ACTIVE"
	AgentStatusInactive AgentStatus = "INACTIVE"
	AgentStatusBlocked  AgentStatus = "BLOCKED" // Blocked over unsettled balances
)

// IsValid checks if the status is a valid AgentStatus
func (s AgentStatus) IsValid() bool {
	switch s {
	case AgentStatusActive, AgentStatusInactive, AgentStatusBlocked:
		return true
	}
	return false
}

// Agent is an overseas partner that consolidates cargo in an origin
// region. Agents are the counterparty of FROM_AGENT/TO_AGENT invoices
// and of settlements.
type Agent struct {
	shared.AuditedAggregateRoot
	Code        string
	Name        string
	Status      AgentStatus
	RegionID    uuid.UUID            // origin region the agent operates in
	Currency    valueobject.Currency // currency the agent invoices and settles in
	ContactName string
	Phone       string
	Email       string
	Address     string
	BankName    string
	BankAccount string
	Notes       string
}

// NewAgent creates a new agent with required fields
func NewAgent(code, name string, regionID uuid.UUID, currency valueobject.Currency) (*Agent, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Agent currency is not valid")
	}

	agent := &Agent{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 strings.ToUpper(code),
		Name:                 name,
		Status:               AgentStatusActive,
		RegionID:             regionID,
		Currency:             currency,
	}

	agent.AddDomainEvent(NewAgentCreatedEvent(agent))

	return agent, nil
}

// Update updates the agent's basic information
func (a *Agent) Update(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAgentUpdatedEvent(a))

	return nil
}

// SetContact sets the agent's contact information
func (a *Agent) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	a.ContactName = contactName
	a.Phone = phone
	a.Email = email
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetBankDetails sets the account settlements are paid out to
func (a *Agent) SetBankDetails(bankName, bankAccount string) error {
	if len(bankName) > 200 {
		return shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot exceed 200 characters")
	}
	if len(bankAccount) > 100 {
		return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account cannot exceed 100 characters")
	}

	a.BankName = bankName
	a.BankAccount = bankAccount
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Activate activates the agent
func (a *Agent) Activate() error {
	if a.Status == AgentStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Agent is already active")
	}

	oldStatus := a.Status
	a.Status = AgentStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAgentStatusChangedEvent(a, oldStatus, AgentStatusActive))

	return nil
}

// Deactivate deactivates the agent
func (a *Agent) Deactivate() error {
	if a.Status == AgentStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Agent is already inactive")
	}

	oldStatus := a.Status
	a.Status = AgentStatusInactive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAgentStatusChangedEvent(a, oldStatus, AgentStatusInactive))

	return nil
}

// Block blocks the agent over unsettled balances
func (a *Agent) Block() error {
	if a.Status == AgentStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Agent is already blocked")
	}

	oldStatus := a.Status
	a.Status = AgentStatusBlocked
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAgentStatusChangedEvent(a, oldStatus, AgentStatusBlocked))

	return nil
}

// IsActive returns true if the agent is active
func (a *Agent) IsActive() bool {
	return a.Status == AgentStatusActive
}
