package billing

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EstimateFilter defines filtering options for estimate queries
type EstimateFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	RegionID   *uuid.UUID
	Status     *EstimateStatus
	Type       *EstimateType
	FromDate   *time.Time
	ToDate     *time.Time
}

// EstimateRepository persists Estimate aggregates
type EstimateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Estimate, error)
	FindByNumber(ctx context.Context, estimateNumber string) (*Estimate, error)
	FindAll(ctx context.Context, filter EstimateFilter) ([]Estimate, int64, error)
	Save(ctx context.Context, estimate *Estimate) error
	Delete(ctx context.Context, id uuid.UUID) error
	// GenerateEstimateNumber yields the next EST-YYYY-NNNNN document number
	GenerateEstimateNumber(ctx context.Context) (string, error)
}

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	AgentID    *uuid.UUID
	Status     *InvoiceStatus
	Direction  *InvoiceDirection
	Type       *InvoiceType
	FromDate   *time.Time
	ToDate     *time.Time
	Overdue    *bool
}

// InvoiceRepository persists Invoice aggregates and their items
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	// FindByEstimateID returns the invoice converted from the given estimate,
	// or shared.ErrNotFound. A unique index guarantees at most one.
	FindByEstimateID(ctx context.Context, estimateID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)
	// FindDueBefore returns outstanding invoices whose due date has passed
	FindDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]Invoice, error)
	// FindPaidUnsettledByAgent returns an agent's fully paid invoices of the
	// given direction not yet allocated to any settlement. Implementations
	// must lock the rows when called inside a settlement-creation
	// transaction.
	FindPaidUnsettledByAgent(ctx context.Context, agentID uuid.UUID, direction InvoiceDirection, periodStart, periodEnd time.Time) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	// GenerateInvoiceNumber yields the next INV-YYYY-NNNNN document number
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}
