package models

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerModel is the persistence model for the Customer aggregate.
type CustomerModel struct {
	AuditedAggregateModel
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	ContactName string     `gorm:"type:varchar(100)"`
	Phone       string     `gorm:"type:varchar(50);index"`
	Email       string     `gorm:"type:varchar(200);index"`
	Address     string     `gorm:"type:text"`
	City        string     `gorm:"type:varchar(100)"`
	Country     string     `gorm:"type:varchar(100)"`
	RegionID    *uuid.UUID `gorm:"type:uuid;index"`
	Notes       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Code:        m.Code,
		Name:        m.Name,
		Status:      partner.CustomerStatus(m.Status),
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		City:        m.City,
		Country:     m.Country,
		RegionID:    m.RegionID,
		Notes:       m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&customer.AuditedAggregateRoot)
	return customer
}

// CustomerModelFromDomain converts a domain Customer to its persistence model
func CustomerModelFromDomain(customer *partner.Customer) *CustomerModel {
	model := &CustomerModel{
		Code:        customer.Code,
		Name:        customer.Name,
		Status:      string(customer.Status),
		ContactName: customer.ContactName,
		Phone:       customer.Phone,
		Email:       customer.Email,
		Address:     customer.Address,
		City:        customer.City,
		Country:     customer.Country,
		RegionID:    customer.RegionID,
		Notes:       customer.Notes,
	}
	model.FromDomainAuditedAggregateRoot(customer.AuditedAggregateRoot)
	return model
}

// AgentModel is the persistence model for the Agent aggregate.
type AgentModel struct {
	AuditedAggregateModel
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	RegionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Currency    string    `gorm:"type:varchar(3);not null"`
	ContactName string    `gorm:"type:varchar(100)"`
	Phone       string    `gorm:"type:varchar(50);index"`
	Email       string    `gorm:"type:varchar(200);index"`
	Address     string    `gorm:"type:text"`
	BankName    string    `gorm:"type:varchar(200)"`
	BankAccount string    `gorm:"type:varchar(100)"`
	Notes       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AgentModel) TableName() string {
	return "agents"
}

// ToDomain converts the persistence model to a domain Agent
func (m *AgentModel) ToDomain() *partner.Agent {
	agent := &partner.Agent{
		Code:        m.Code,
		Name:        m.Name,
		Status:      partner.AgentStatus(m.Status),
		RegionID:    m.RegionID,
		Currency:    valueobject.Currency(m.Currency),
		ContactName: m.ContactName,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		BankName:    m.BankName,
		BankAccount: m.BankAccount,
		Notes:       m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&agent.AuditedAggregateRoot)
	return agent
}

// AgentModelFromDomain converts a domain Agent to its persistence model
func AgentModelFromDomain(agent *partner.Agent) *AgentModel {
	model := &AgentModel{
		Code:        agent.Code,
		Name:        agent.Name,
		Status:      string(agent.Status),
		RegionID:    agent.RegionID,
		Currency:    string(agent.Currency),
		ContactName: agent.ContactName,
		Phone:       agent.Phone,
		Email:       agent.Email,
		Address:     agent.Address,
		BankName:    agent.BankName,
		BankAccount: agent.BankAccount,
		Notes:       agent.Notes,
	}
	model.FromDomainAuditedAggregateRoot(agent.AuditedAggregateRoot)
	return model
}

// ShipmentModel is the persistence model for the Shipment aggregate.
// Weight implements Valuer/Scanner, so it maps straight to a decimal
// column.
type ShipmentModel struct {
	AuditedAggregateModel
	ShipmentNumber string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	AgentID        *uuid.UUID         `gorm:"type:uuid;index"`
	RegionID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	WeightKg       valueobject.Weight `gorm:"column:weight_kg;type:decimal(18,4);not null"`
	Description    string             `gorm:"type:text"`
	Status         string             `gorm:"type:varchar(20);not null;default:'RECEIVED';index"`
	DeliveredAt    *time.Time
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment
func (m *ShipmentModel) ToDomain() *partner.Shipment {
	shipment := &partner.Shipment{
		ShipmentNumber: m.ShipmentNumber,
		CustomerID:     m.CustomerID,
		AgentID:        m.AgentID,
		RegionID:       m.RegionID,
		Weight:         m.WeightKg,
		Description:    m.Description,
		Status:         partner.ShipmentStatus(m.Status),
		DeliveredAt:    m.DeliveredAt,
	}
	m.PopulateAuditedAggregateRoot(&shipment.AuditedAggregateRoot)
	return shipment
}

// ShipmentModelFromDomain converts a domain Shipment to its persistence model
func ShipmentModelFromDomain(shipment *partner.Shipment) *ShipmentModel {
	model := &ShipmentModel{
		ShipmentNumber: shipment.ShipmentNumber,
		CustomerID:     shipment.CustomerID,
		AgentID:        shipment.AgentID,
		RegionID:       shipment.RegionID,
		WeightKg:       shipment.Weight,
		Description:    shipment.Description,
		Status:         string(shipment.Status),
		DeliveredAt:    shipment.DeliveredAt,
	}
	model.FromDomainAuditedAggregateRoot(shipment.AuditedAggregateRoot)
	return model
}
