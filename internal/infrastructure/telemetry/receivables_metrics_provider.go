// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormReceivablesMetricsProvider implements ReceivablesMetricsProvider using
// GORM. It queries the invoices table directly for aggregated counts.
type GormReceivablesMetricsProvider struct {
	db *gorm.DB
}

// NewGormReceivablesMetricsProvider creates a new GormReceivablesMetricsProvider.
func NewGormReceivablesMetricsProvider(db *gorm.DB) *GormReceivablesMetricsProvider {
	return &GormReceivablesMetricsProvider{db: db}
}

// CountOverdueInvoices returns the number of invoices past their due date
// that are still open.
func (p *GormReceivablesMetricsProvider) CountOverdueInvoices(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("invoices").
		Where("status IN ?", []string{"OVERDUE"}).
		Count(&count).Error

	return count, err
}

// CountPaidUnsettledInvoices returns the number of paid agent invoices not
// yet allocated to a settlement.
func (p *GormReceivablesMetricsProvider) CountPaidUnsettledInvoices(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("invoices").
		Where("agent_id IS NOT NULL AND status = ?", "PAID").
		Where("id NOT IN (SELECT invoice_id FROM settlement_items)").
		Count(&count).Error

	return count, err
}
