package models

import (
	"github.com/cargoflow/backend/internal/domain/customs"
	"github.com/shopspring/decimal"
)

// VehicleDutyRateModel is the persistence model for customs rate table rows.
type VehicleDutyRateModel struct {
	AuditedAggregateModel
	Category    string          `gorm:"type:varchar(30);not null;index"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	MinEngineCC *int            `gorm:"column:min_engine_cc"`
	MaxEngineCC *int            `gorm:"column:max_engine_cc"`
	Description string          `gorm:"type:text"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (VehicleDutyRateModel) TableName() string {
	return "vehicle_duty_rates"
}

// ToDomain converts the persistence model to a domain VehicleDutyRate
func (m *VehicleDutyRateModel) ToDomain() *customs.VehicleDutyRate {
	rate := &customs.VehicleDutyRate{
		Category:    customs.RateCategory(m.Category),
		Rate:        m.Rate,
		MinEngineCC: m.MinEngineCC,
		MaxEngineCC: m.MaxEngineCC,
		Description: m.Description,
		Active:      m.Active,
	}
	m.PopulateAuditedAggregateRoot(&rate.AuditedAggregateRoot)
	return rate
}

// VehicleDutyRateModelFromDomain converts a domain VehicleDutyRate to its persistence model
func VehicleDutyRateModelFromDomain(rate *customs.VehicleDutyRate) *VehicleDutyRateModel {
	model := &VehicleDutyRateModel{
		Category:    string(rate.Category),
		Rate:        rate.Rate,
		MinEngineCC: rate.MinEngineCC,
		MaxEngineCC: rate.MaxEngineCC,
		Description: rate.Description,
		Active:      rate.Active,
	}
	model.FromDomainAuditedAggregateRoot(rate.AuditedAggregateRoot)
	return model
}
