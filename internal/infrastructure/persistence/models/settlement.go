package models

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/settlement"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementModel is the persistence model for the Settlement aggregate.
type SettlementModel struct {
	AuditedAggregateModel
	SettlementNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	AgentID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type             string          `gorm:"type:varchar(30);not null"`
	PeriodStart      time.Time       `gorm:"not null"`
	PeriodEnd        time.Time       `gorm:"not null"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency         string          `gorm:"type:varchar(3);not null"`
	TotalAmountTZS   decimal.Decimal `gorm:"column:total_amount_tzs;type:decimal(18,4);not null"`
	Status           string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedBy       *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	PaidAt           *time.Time
	PaymentRef       string                `gorm:"type:varchar(100)"`
	CancelReason     string                `gorm:"type:text"`
	Items            []SettlementItemModel `gorm:"foreignKey:SettlementID"`
}

// TableName returns the table name for GORM
func (SettlementModel) TableName() string {
	return "settlements"
}

// ToDomain converts the persistence model to a domain Settlement
func (m *SettlementModel) ToDomain() *settlement.Settlement {
	batch := &settlement.Settlement{
		SettlementNumber: m.SettlementNumber,
		AgentID:          m.AgentID,
		Type:             settlement.Type(m.Type),
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		TotalAmount:      m.TotalAmount,
		Currency:         valueobject.Currency(m.Currency),
		TotalAmountTZS:   m.TotalAmountTZS,
		Status:           settlement.Status(m.Status),
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		PaidAt:           m.PaidAt,
		PaymentRef:       m.PaymentRef,
		CancelReason:     m.CancelReason,
	}
	if len(m.Items) > 0 {
		batch.Items = make([]settlement.SettlementItem, len(m.Items))
		for i, item := range m.Items {
			batch.Items[i] = *item.ToDomain()
		}
	}
	m.PopulateAuditedAggregateRoot(&batch.AuditedAggregateRoot)
	return batch
}

// SettlementModelFromDomain converts a domain Settlement to its persistence model
func SettlementModelFromDomain(batch *settlement.Settlement) *SettlementModel {
	model := &SettlementModel{
		SettlementNumber: batch.SettlementNumber,
		AgentID:          batch.AgentID,
		Type:             string(batch.Type),
		PeriodStart:      batch.PeriodStart,
		PeriodEnd:        batch.PeriodEnd,
		TotalAmount:      batch.TotalAmount,
		Currency:         string(batch.Currency),
		TotalAmountTZS:   batch.TotalAmountTZS,
		Status:           string(batch.Status),
		ApprovedBy:       batch.ApprovedBy,
		ApprovedAt:       batch.ApprovedAt,
		PaidAt:           batch.PaidAt,
		PaymentRef:       batch.PaymentRef,
		CancelReason:     batch.CancelReason,
	}
	if len(batch.Items) > 0 {
		model.Items = make([]SettlementItemModel, len(batch.Items))
		for i, item := range batch.Items {
			model.Items[i] = *SettlementItemModelFromDomain(&item)
		}
	}
	model.FromDomainAuditedAggregateRoot(batch.AuditedAggregateRoot)
	return model
}

// SettlementItemModel is the persistence model for settlement line
// items. The unique index on invoice_id stops one invoice from being
// allocated to two settlements.
type SettlementItemModel struct {
	BaseModel
	SettlementID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNumber string          `gorm:"type:varchar(50);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SettlementItemModel) TableName() string {
	return "settlement_items"
}

// ToDomain converts the persistence model to a domain SettlementItem
func (m *SettlementItemModel) ToDomain() *settlement.SettlementItem {
	return &settlement.SettlementItem{
		BaseEntity:    m.BaseModel.ToDomain(),
		SettlementID:  m.SettlementID,
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Amount:        m.Amount,
	}
}

// SettlementItemModelFromDomain converts a domain SettlementItem to its persistence model
func SettlementItemModelFromDomain(item *settlement.SettlementItem) *SettlementItemModel {
	model := &SettlementItemModel{
		SettlementID:  item.SettlementID,
		InvoiceID:     item.InvoiceID,
		InvoiceNumber: item.InvoiceNumber,
		Amount:        item.Amount,
	}
	model.FromDomainBaseEntity(item.BaseEntity)
	return model
}
