package models

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegionModel is the persistence model for the Region aggregate.
type RegionModel struct {
	AuditedAggregateModel
	Code      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string `gorm:"type:varchar(200);not null"`
	FlagGlyph string `gorm:"type:varchar(20)"`
	Currency  string `gorm:"type:varchar(3);not null"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "regions"
}

// ToDomain converts the persistence model to a domain Region
func (m *RegionModel) ToDomain() *pricing.Region {
	region := &pricing.Region{
		Code:      m.Code,
		Name:      m.Name,
		FlagGlyph: m.FlagGlyph,
		Currency:  valueobject.Currency(m.Currency),
		Active:    m.Active,
	}
	m.PopulateAuditedAggregateRoot(&region.AuditedAggregateRoot)
	return region
}

// RegionModelFromDomain converts a domain Region to its persistence model
func RegionModelFromDomain(region *pricing.Region) *RegionModel {
	model := &RegionModel{
		Code:      region.Code,
		Name:      region.Name,
		FlagGlyph: region.FlagGlyph,
		Currency:  string(region.Currency),
		Active:    region.Active,
	}
	model.FromDomainAuditedAggregateRoot(region.AuditedAggregateRoot)
	return model
}

// RateCardModel is the persistence model for the RateCard aggregate.
// A partial unique index (migrations) keeps at most one active card
// per region.
type RateCardModel struct {
	AuditedAggregateModel
	RegionID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerRatePerKg decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AgentRatePerKg    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	HandlingFee       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency          string          `gorm:"type:varchar(3);not null"`
	Active            bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (RateCardModel) TableName() string {
	return "rate_cards"
}

// ToDomain converts the persistence model to a domain RateCard
func (m *RateCardModel) ToDomain() *pricing.RateCard {
	card := &pricing.RateCard{
		RegionID:          m.RegionID,
		CustomerRatePerKg: m.CustomerRatePerKg,
		AgentRatePerKg:    m.AgentRatePerKg,
		HandlingFee:       m.HandlingFee,
		Currency:          valueobject.Currency(m.Currency),
		Active:            m.Active,
	}
	m.PopulateAuditedAggregateRoot(&card.AuditedAggregateRoot)
	return card
}

// RateCardModelFromDomain converts a domain RateCard to its persistence model
func RateCardModelFromDomain(card *pricing.RateCard) *RateCardModel {
	model := &RateCardModel{
		RegionID:          card.RegionID,
		CustomerRatePerKg: card.CustomerRatePerKg,
		AgentRatePerKg:    card.AgentRatePerKg,
		HandlingFee:       card.HandlingFee,
		Currency:          string(card.Currency),
		Active:            card.Active,
	}
	model.FromDomainAuditedAggregateRoot(card.AuditedAggregateRoot)
	return model
}

// ExchangeRateModel is the persistence model for ExchangeRate entries.
// Rows are append-only; the latest effective_from per currency wins.
type ExchangeRateModel struct {
	AuditedAggregateModel
	Currency      string          `gorm:"type:varchar(3);not null;index:idx_exchange_rates_currency_effective,priority:1"`
	RateToTZS     decimal.Decimal `gorm:"column:rate_to_tzs;type:decimal(18,6);not null"`
	EffectiveFrom time.Time       `gorm:"not null;index:idx_exchange_rates_currency_effective,priority:2,sort:desc"`
}

// TableName returns the table name for GORM
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// ToDomain converts the persistence model to a domain ExchangeRate
func (m *ExchangeRateModel) ToDomain() *pricing.ExchangeRate {
	rate := &pricing.ExchangeRate{
		Currency:      valueobject.Currency(m.Currency),
		RateToTZS:     m.RateToTZS,
		EffectiveFrom: m.EffectiveFrom,
	}
	m.PopulateAuditedAggregateRoot(&rate.AuditedAggregateRoot)
	return rate
}

// ExchangeRateModelFromDomain converts a domain ExchangeRate to its persistence model
func ExchangeRateModelFromDomain(rate *pricing.ExchangeRate) *ExchangeRateModel {
	model := &ExchangeRateModel{
		Currency:      string(rate.Currency),
		RateToTZS:     rate.RateToTZS,
		EffectiveFrom: rate.EffectiveFrom,
	}
	model.FromDomainAuditedAggregateRoot(rate.AuditedAggregateRoot)
	return model
}
