package billing

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the billing context
const (
	EventTypeEstimateCreated   = "billing.estimate.created"
	EventTypeEstimateApproved  = "billing.estimate.approved"
	EventTypeEstimateRejected  = "billing.estimate.rejected"
	EventTypeEstimateConverted = "billing.estimate.converted"
	EventTypeInvoiceCreated    = "billing.invoice.created"
	EventTypeInvoicePaid       = "billing.invoice.paid"
	EventTypeInvoiceOverdue    = "billing.invoice.overdue"
)

// EstimateCreatedEvent is raised when a new estimate is drafted
type EstimateCreatedEvent struct {
	shared.BaseDomainEvent
	EstimateNumber string `json:"estimate_number"`
	CustomerID     string `json:"customer_id"`
	Total          string `json:"total"`
	Currency       string `json:"currency"`
}

// NewEstimateCreatedEvent creates a new EstimateCreatedEvent
func NewEstimateCreatedEvent(e *Estimate) *EstimateCreatedEvent {
	return &EstimateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateCreated, "Estimate", e.ID),
		EstimateNumber:  e.EstimateNumber,
		CustomerID:      e.CustomerID.String(),
		Total:           e.Total.String(),
		Currency:        e.Currency.String(),
	}
}

// EstimateApprovedEvent is raised when a customer accepts an estimate
type EstimateApprovedEvent struct {
	shared.BaseDomainEvent
	EstimateNumber string `json:"estimate_number"`
}

// NewEstimateApprovedEvent creates a new EstimateApprovedEvent
func NewEstimateApprovedEvent(e *Estimate) *EstimateApprovedEvent {
	return &EstimateApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateApproved, "Estimate", e.ID),
		EstimateNumber:  e.EstimateNumber,
	}
}

// EstimateRejectedEvent is raised when a customer declines an estimate
type EstimateRejectedEvent struct {
	shared.BaseDomainEvent
	EstimateNumber string `json:"estimate_number"`
	Reason         string `json:"reason,omitempty"`
}

// NewEstimateRejectedEvent creates a new EstimateRejectedEvent
func NewEstimateRejectedEvent(e *Estimate) *EstimateRejectedEvent {
	return &EstimateRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateRejected, "Estimate", e.ID),
		EstimateNumber:  e.EstimateNumber,
		Reason:          e.Remark,
	}
}

// EstimateConvertedEvent is raised when an estimate is snapshotted into an invoice
type EstimateConvertedEvent struct {
	shared.BaseDomainEvent
	EstimateNumber string `json:"estimate_number"`
	InvoiceID      string `json:"invoice_id"`
}

// NewEstimateConvertedEvent creates a new EstimateConvertedEvent
func NewEstimateConvertedEvent(e *Estimate, invoiceID uuid.UUID) *EstimateConvertedEvent {
	return &EstimateConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateConverted, "Estimate", e.ID),
		EstimateNumber:  e.EstimateNumber,
		InvoiceID:       invoiceID.String(),
	}
}

// InvoiceCreatedEvent is raised when an invoice is issued
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string    `json:"invoice_number"`
	Amount        string    `json:"amount"`
	AmountTZS     string    `json:"amount_tzs"`
	Currency      string    `json:"currency"`
	DueDate       time.Time `json:"due_date"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		Amount:          inv.Amount.String(),
		AmountTZS:       inv.AmountTZS.String(),
		Currency:        inv.Currency.String(),
		DueDate:         inv.DueDate,
	}
}

// InvoicePaidEvent is raised when an invoice becomes fully paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
	Amount        string `json:"amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		Amount:          inv.Amount.String(),
	}
}

// InvoiceOverdueEvent is raised when an invoice passes its due date unpaid
type InvoiceOverdueEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string    `json:"invoice_number"`
	DueDate       time.Time `json:"due_date"`
}

// NewInvoiceOverdueEvent creates a new InvoiceOverdueEvent
func NewInvoiceOverdueEvent(inv *Invoice) *InvoiceOverdueEvent {
	return &InvoiceOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceOverdue, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		DueDate:         inv.DueDate,
	}
}
