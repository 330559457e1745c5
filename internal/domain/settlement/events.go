package settlement

import (
	"github.com/cargoflow/backend/internal/domain/shared"
)

// Event types for the settlement context
const (
	EventTypeSettlementCreated   = "settlement.created"
	EventTypeSettlementApproved  = "settlement.approved"
	EventTypeSettlementPaid      = "settlement.paid"
	EventTypeSettlementCancelled = "settlement.cancelled"
)

// SettlementCreatedEvent is raised when a settlement batch is assembled
type SettlementCreatedEvent struct {
	shared.BaseDomainEvent
	SettlementNumber string `json:"settlement_number"`
	AgentID          string `json:"agent_id"`
	Type             string `json:"type"`
	TotalAmount      string `json:"total_amount"`
	Currency         string `json:"currency"`
	InvoiceCount     int    `json:"invoice_count"`
}

// NewSettlementCreatedEvent creates a new SettlementCreatedEvent
func NewSettlementCreatedEvent(s *Settlement) *SettlementCreatedEvent {
	return &SettlementCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSettlementCreated, "Settlement", s.ID),
		SettlementNumber: s.SettlementNumber,
		AgentID:          s.AgentID.String(),
		Type:             string(s.Type),
		TotalAmount:      s.TotalAmount.String(),
		Currency:         s.Currency.String(),
		InvoiceCount:     len(s.Items),
	}
}

// SettlementApprovedEvent is raised when a settlement is approved for payout
type SettlementApprovedEvent struct {
	shared.BaseDomainEvent
	SettlementNumber string `json:"settlement_number"`
	ApprovedBy       string `json:"approved_by"`
}

// NewSettlementApprovedEvent creates a new SettlementApprovedEvent
func NewSettlementApprovedEvent(s *Settlement) *SettlementApprovedEvent {
	e := &SettlementApprovedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSettlementApproved, "Settlement", s.ID),
		SettlementNumber: s.SettlementNumber,
	}
	if s.ApprovedBy != nil {
		e.ApprovedBy = s.ApprovedBy.String()
	}
	return e
}

// SettlementPaidEvent is raised when the payout is recorded
type SettlementPaidEvent struct {
	shared.BaseDomainEvent
	SettlementNumber string `json:"settlement_number"`
	TotalAmount      string `json:"total_amount"`
	Currency         string `json:"currency"`
	PaymentRef       string `json:"payment_ref"`
}

// NewSettlementPaidEvent creates a new SettlementPaidEvent
func NewSettlementPaidEvent(s *Settlement) *SettlementPaidEvent {
	return &SettlementPaidEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSettlementPaid, "Settlement", s.ID),
		SettlementNumber: s.SettlementNumber,
		TotalAmount:      s.TotalAmount.String(),
		Currency:         s.Currency.String(),
		PaymentRef:       s.PaymentRef,
	}
}

// SettlementCancelledEvent is raised when a settlement is voided and
// its invoices released for a future batch
type SettlementCancelledEvent struct {
	shared.BaseDomainEvent
	SettlementNumber string `json:"settlement_number"`
	Reason           string `json:"reason"`
}

// NewSettlementCancelledEvent creates a new SettlementCancelledEvent
func NewSettlementCancelledEvent(s *Settlement) *SettlementCancelledEvent {
	return &SettlementCancelledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSettlementCancelled, "Settlement", s.ID),
		SettlementNumber: s.SettlementNumber,
		Reason:           s.CancelReason,
	}
}
