package models

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimateModel is the persistence model for the Estimate aggregate.
type EstimateModel struct {
	AuditedAggregateModel
	EstimateNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShipmentID           *uuid.UUID      `gorm:"type:uuid;index"`
	RegionID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type                 string          `gorm:"type:varchar(30);not null"`
	WeightKg             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RatePerKg            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	HandlingFee          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProductCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchaseFee          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total                decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency             string          `gorm:"type:varchar(3);not null"`
	Status               string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ValidUntil           *time.Time      `gorm:"index"`
	ConvertedToInvoiceID *uuid.UUID      `gorm:"type:uuid"`
	Remark               string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (EstimateModel) TableName() string {
	return "estimates"
}

// ToDomain converts the persistence model to a domain Estimate
func (m *EstimateModel) ToDomain() *billing.Estimate {
	estimate := &billing.Estimate{
		EstimateNumber:       m.EstimateNumber,
		CustomerID:           m.CustomerID,
		ShipmentID:           m.ShipmentID,
		RegionID:             m.RegionID,
		Type:                 billing.EstimateType(m.Type),
		WeightKg:             m.WeightKg,
		RatePerKg:            m.RatePerKg,
		HandlingFee:          m.HandlingFee,
		ProductCost:          m.ProductCost,
		PurchaseFee:          m.PurchaseFee,
		Subtotal:             m.Subtotal,
		Total:                m.Total,
		Currency:             valueobject.Currency(m.Currency),
		Status:               billing.EstimateStatus(m.Status),
		ValidUntil:           m.ValidUntil,
		ConvertedToInvoiceID: m.ConvertedToInvoiceID,
		Remark:               m.Remark,
	}
	m.PopulateAuditedAggregateRoot(&estimate.AuditedAggregateRoot)
	return estimate
}

// EstimateModelFromDomain converts a domain Estimate to its persistence model
func EstimateModelFromDomain(estimate *billing.Estimate) *EstimateModel {
	model := &EstimateModel{
		EstimateNumber:       estimate.EstimateNumber,
		CustomerID:           estimate.CustomerID,
		ShipmentID:           estimate.ShipmentID,
		RegionID:             estimate.RegionID,
		Type:                 string(estimate.Type),
		WeightKg:             estimate.WeightKg,
		RatePerKg:            estimate.RatePerKg,
		HandlingFee:          estimate.HandlingFee,
		ProductCost:          estimate.ProductCost,
		PurchaseFee:          estimate.PurchaseFee,
		Subtotal:             estimate.Subtotal,
		Total:                estimate.Total,
		Currency:             string(estimate.Currency),
		Status:               string(estimate.Status),
		ValidUntil:           estimate.ValidUntil,
		ConvertedToInvoiceID: estimate.ConvertedToInvoiceID,
		Remark:               estimate.Remark,
	}
	model.FromDomainAuditedAggregateRoot(estimate.AuditedAggregateRoot)
	return model
}

// InvoiceModel is the persistence model for the Invoice aggregate. The
// unique index on estimate_id makes a second conversion of the same
// estimate fail at the database even under concurrent requests.
type InvoiceModel struct {
	AuditedAggregateModel
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	AgentID       *uuid.UUID      `gorm:"type:uuid;index"`
	ShipmentID    *uuid.UUID      `gorm:"type:uuid;index"`
	EstimateID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Type          string          `gorm:"type:varchar(30);not null"`
	Direction     string          `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountTZS     decimal.Decimal `gorm:"column:amount_tzs;type:decimal(18,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	ProductCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchaseFee   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DueDate       time.Time       `gorm:"not null;index"`
	Remark        string          `gorm:"type:text"`
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CancelReason  string             `gorm:"type:text"`
	Items         []InvoiceItemModel `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		AgentID:       m.AgentID,
		ShipmentID:    m.ShipmentID,
		EstimateID:    m.EstimateID,
		Type:          billing.InvoiceType(m.Type),
		Direction:     billing.InvoiceDirection(m.Direction),
		Amount:        m.Amount,
		AmountTZS:     m.AmountTZS,
		Currency:      valueobject.Currency(m.Currency),
		ProductCost:   m.ProductCost,
		PurchaseFee:   m.PurchaseFee,
		PaidAmount:    m.PaidAmount,
		Status:        billing.InvoiceStatus(m.Status),
		DueDate:       m.DueDate,
		Remark:        m.Remark,
		PaidAt:        m.PaidAt,
		CancelledAt:   m.CancelledAt,
		CancelReason:  m.CancelReason,
	}
	if len(m.Items) > 0 {
		invoice.Items = make([]billing.InvoiceItem, len(m.Items))
		for i, item := range m.Items {
			invoice.Items[i] = *item.ToDomain()
		}
	}
	m.PopulateAuditedAggregateRoot(&invoice.AuditedAggregateRoot)
	return invoice
}

// InvoiceModelFromDomain converts a domain Invoice to its persistence model
func InvoiceModelFromDomain(invoice *billing.Invoice) *InvoiceModel {
	model := &InvoiceModel{
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerID:    invoice.CustomerID,
		AgentID:       invoice.AgentID,
		ShipmentID:    invoice.ShipmentID,
		EstimateID:    invoice.EstimateID,
		Type:          string(invoice.Type),
		Direction:     string(invoice.Direction),
		Amount:        invoice.Amount,
		AmountTZS:     invoice.AmountTZS,
		Currency:      string(invoice.Currency),
		ProductCost:   invoice.ProductCost,
		PurchaseFee:   invoice.PurchaseFee,
		PaidAmount:    invoice.PaidAmount,
		Status:        string(invoice.Status),
		DueDate:       invoice.DueDate,
		Remark:        invoice.Remark,
		PaidAt:        invoice.PaidAt,
		CancelledAt:   invoice.CancelledAt,
		CancelReason:  invoice.CancelReason,
	}
	if len(invoice.Items) > 0 {
		model.Items = make([]InvoiceItemModel, len(invoice.Items))
		for i, item := range invoice.Items {
			model.Items[i] = *InvoiceItemModelFromDomain(&item)
		}
	}
	model.FromDomainAuditedAggregateRoot(invoice.AuditedAggregateRoot)
	return model
}

// InvoiceItemModel is the persistence model for invoice line items.
type InvoiceItemModel struct {
	BaseModel
	InvoiceID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Type        string           `gorm:"type:varchar(20);not null"`
	Description string           `gorm:"type:text"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:1"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Currency    string           `gorm:"type:varchar(3);not null"`
	WeightKg    *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() *billing.InvoiceItem {
	return &billing.InvoiceItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		Type:        billing.InvoiceItemType(m.Type),
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		Currency:    valueobject.Currency(m.Currency),
		WeightKg:    m.WeightKg,
	}
}

// InvoiceItemModelFromDomain converts a domain InvoiceItem to its persistence model
func InvoiceItemModelFromDomain(item *billing.InvoiceItem) *InvoiceItemModel {
	model := &InvoiceItemModel{
		InvoiceID:   item.InvoiceID,
		Type:        string(item.Type),
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
		Currency:    string(item.Currency),
		WeightKg:    item.WeightKg,
	}
	model.FromDomainBaseEntity(item.BaseEntity)
	return model
}
