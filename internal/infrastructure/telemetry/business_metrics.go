// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the billing pipeline.
// It tracks document issuance, payment verification, and receivables health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	estimateCreatedTotal   *Counter
	invoiceIssuedTotal     *Counter
	invoiceAmountTZSTotal  *Counter
	paymentTotal           *Counter
	settlementCreatedTotal *Counter

	// Gauge metrics (point-in-time values)
	invoiceOverdueCount   *Gauge
	invoiceUnsettledCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	receivablesProvider ReceivablesMetricsProvider
}

// ReceivablesMetricsProvider provides receivables data for periodic metrics
// collection. The interface keeps the telemetry layer from depending on the
// billing domain directly.
type ReceivablesMetricsProvider interface {
	// CountOverdueInvoices returns the number of invoices past their due date
	// that are not yet paid or cancelled.
	CountOverdueInvoices(ctx context.Context) (int64, error)

	// CountPaidUnsettledInvoices returns the number of paid agent invoices
	// not yet allocated to a settlement.
	CountPaidUnsettledInvoices(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter               metric.Meter
	Logger              *zap.Logger
	CollectInterval     time.Duration // Default: 5 minutes
	ReceivablesProvider ReceivablesMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:               cfg.Meter,
		logger:              logger,
		stopChan:            make(chan struct{}),
		receivablesProvider: cfg.ReceivablesProvider,
	}

	var err error

	bm.estimateCreatedTotal, err = NewCounter(
		cfg.Meter,
		"cargoflow_estimate_created_total",
		"Total number of estimates created",
		"{estimates}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceIssuedTotal, err = NewCounter(
		cfg.Meter,
		"cargoflow_invoice_issued_total",
		"Total number of invoices issued",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceAmountTZSTotal, err = NewCounter(
		cfg.Meter,
		"cargoflow_invoice_amount_tzs_total",
		"Total invoiced amount in TZS cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.paymentTotal, err = NewCounter(
		cfg.Meter,
		"cargoflow_payment_total",
		"Total number of payment verification outcomes",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	bm.settlementCreatedTotal, err = NewCounter(
		cfg.Meter,
		"cargoflow_settlement_created_total",
		"Total number of agent settlements created",
		"{settlements}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceOverdueCount, err = NewGauge(
		cfg.Meter,
		"cargoflow_invoice_overdue_count",
		"Number of invoices currently past due",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	bm.invoiceUnsettledCount, err = NewGauge(
		cfg.Meter,
		"cargoflow_invoice_unsettled_count",
		"Number of paid agent invoices not yet settled",
		"{invoices}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Document Metrics
// =============================================================================

// RecordEstimateCreated records an estimate creation event.
func (bm *BusinessMetrics) RecordEstimateCreated(ctx context.Context, estimateType, currency string) {
	bm.estimateCreatedTotal.Inc(ctx,
		AttrEstimateType.String(estimateType),
		AttrCurrency.String(currency),
	)
}

// RecordInvoiceIssued records an invoice issuance together with its
// home-currency amount. Amount is converted to TZS cents.
func (bm *BusinessMetrics) RecordInvoiceIssued(ctx context.Context, invoiceType, direction string, amountTZS decimal.Decimal) {
	bm.invoiceIssuedTotal.Inc(ctx,
		AttrInvoiceType.String(invoiceType),
		AttrInvoiceDirection.String(direction),
	)

	cents := amountTZS.Mul(decimal.NewFromInt(100)).IntPart()
	bm.invoiceAmountTZSTotal.Add(ctx, cents,
		AttrInvoiceType.String(invoiceType),
		AttrInvoiceDirection.String(direction),
	)
}

// =============================================================================
// Payment Metrics
// =============================================================================

// PaymentOutcome represents the result of a payment verification for metrics labeling.
type PaymentOutcome string

const (
	PaymentOutcomeVerified PaymentOutcome = "verified"
	PaymentOutcomeRejected PaymentOutcome = "rejected"
)

// RecordPaymentVerification records a payment verification outcome. The
// outcome label is normalized to lowercase.
func (bm *BusinessMetrics) RecordPaymentVerification(ctx context.Context, method, outcome string) {
	bm.paymentTotal.Inc(ctx,
		AttrPaymentMethod.String(method),
		AttrPaymentStatus.String(strings.ToLower(outcome)),
	)
}

// =============================================================================
// Settlement Metrics
// =============================================================================

// RecordSettlementCreated records a settlement creation event.
func (bm *BusinessMetrics) RecordSettlementCreated(ctx context.Context, settlementType string) {
	bm.settlementCreatedTotal.Inc(ctx,
		AttrSettlementType.String(settlementType),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of receivables gauges.
// Non-blocking; use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectReceivablesMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectReceivablesMetrics(ctx)
		}
	}
}

func (bm *BusinessMetrics) collectReceivablesMetrics(ctx context.Context) {
	if bm.receivablesProvider == nil {
		bm.logger.Debug("No receivables provider configured, skipping receivables metrics collection")
		return
	}

	overdue, err := bm.receivablesProvider.CountOverdueInvoices(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count overdue invoices", zap.Error(err))
	} else {
		bm.invoiceOverdueCount.Record(ctx, overdue)
	}

	unsettled, err := bm.receivablesProvider.CountPaidUnsettledInvoices(ctx)
	if err != nil {
		bm.logger.Warn("Failed to count unsettled invoices", zap.Error(err))
	} else {
		bm.invoiceUnsettledCount.Record(ctx, unsettled)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
