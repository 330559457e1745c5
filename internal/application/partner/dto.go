package partner

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Code        string     `json:"code" binding:"required,max=50"`
	Name        string     `json:"name" binding:"required,max=200"`
	ContactName string     `json:"contact_name" binding:"max=100"`
	Phone       string     `json:"phone" binding:"max=50"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Address     string     `json:"address"`
	City        string     `json:"city" binding:"max=100"`
	Country     string     `json:"country" binding:"max=100"`
	RegionID    *uuid.UUID `json:"region_id"`
	Notes       string     `json:"notes"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=200"`
	ContactName *string    `json:"contact_name"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	Address     *string    `json:"address"`
	City        *string    `json:"city"`
	Country     *string    `json:"country"`
	RegionID    *uuid.UUID `json:"region_id"`
	Notes       *string    `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	ContactName string     `json:"contact_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	RegionID    *uuid.UUID `json:"region_id,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCustomerResponse maps a domain customer to its response shape
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Status:      string(c.Status),
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		City:        c.City,
		Country:     c.Country,
		RegionID:    c.RegionID,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// =============================================================================
// Agent DTOs
// =============================================================================

// CreateAgentRequest represents a request to create an origin agent
type CreateAgentRequest struct {
	Code        string     `json:"code" binding:"required,max=50"`
	Name        string     `json:"name" binding:"required,max=200"`
	RegionID    uuid.UUID  `json:"region_id" binding:"required"`
	Currency    string     `json:"currency" binding:"required,len=3"`
	ContactName string     `json:"contact_name" binding:"max=100"`
	Phone       string     `json:"phone" binding:"max=50"`
	Email       string     `json:"email" binding:"omitempty,email"`
	BankName    string     `json:"bank_name" binding:"max=200"`
	BankAccount string     `json:"bank_account" binding:"max=100"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdateAgentRequest represents a request to update an agent
type UpdateAgentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	BankName    *string `json:"bank_name"`
	BankAccount *string `json:"bank_account"`
}

// AgentResponse represents an agent in API responses
type AgentResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	RegionID    uuid.UUID `json:"region_id"`
	Currency    string    `json:"currency"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	BankName    string    `json:"bank_name,omitempty"`
	BankAccount string    `json:"bank_account,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToAgentResponse maps a domain agent to its response shape
func ToAgentResponse(a *partner.Agent) AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Status:      string(a.Status),
		RegionID:    a.RegionID,
		Currency:    a.Currency.String(),
		ContactName: a.ContactName,
		Phone:       a.Phone,
		Email:       a.Email,
		BankName:    a.BankName,
		BankAccount: a.BankAccount,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// =============================================================================
// Shipment DTOs
// =============================================================================

// CreateShipmentRequest registers cargo received at an origin agent
type CreateShipmentRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	RegionID    uuid.UUID       `json:"region_id" binding:"required"`
	AgentID     *uuid.UUID      `json:"agent_id"`
	WeightKg    decimal.Decimal `json:"weight_kg" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	ShipmentNumber string          `json:"shipment_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	AgentID        *uuid.UUID      `json:"agent_id,omitempty"`
	RegionID       uuid.UUID       `json:"region_id"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	Description    string          `json:"description,omitempty"`
	Status         string          `json:"status"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToShipmentResponse maps a domain shipment to its response shape
func ToShipmentResponse(sh *partner.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:             sh.ID,
		ShipmentNumber: sh.ShipmentNumber,
		CustomerID:     sh.CustomerID,
		AgentID:        sh.AgentID,
		RegionID:       sh.RegionID,
		WeightKg:       sh.Weight.Kilograms(),
		Description:    sh.Description,
		Status:         string(sh.Status),
		DeliveredAt:    sh.DeliveredAt,
		CreatedAt:      sh.CreatedAt,
		UpdatedAt:      sh.UpdatedAt,
	}
}
