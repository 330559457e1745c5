package settlement

import (
	"fmt"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle of a settlement. Transitions only
// move forward: PENDING -> APPROVED -> PAID, with CANCELLED reachable
// from PENDING or APPROVED.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid settlement Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true when no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Type indicates which way money moves between the company and an agent
type Type string

const (
	TypePaymentToAgent      Type = "PAYMENT_TO_AGENT"      // company owes the agent for collected invoices
	TypeCollectionFromAgent Type = "COLLECTION_FROM_AGENT" // agent owes the company
)

// IsValid checks if the settlement type is valid
func (t Type) IsValid() bool {
	return t == TypePaymentToAgent || t == TypeCollectionFromAgent
}

// Settlement groups an agent's paid, unsettled invoices over a period
// into one payable batch. The total is always the exact sum of the
// item amounts, which are in turn the exact invoice amounts.
type Settlement struct {
	shared.AuditedAggregateRoot
	SettlementNumber string               `json:"settlement_number"`
	AgentID          uuid.UUID            `json:"agent_id"`
	Type             Type                 `json:"type"`
	PeriodStart      time.Time            `json:"period_start"`
	PeriodEnd        time.Time            `json:"period_end"`
	TotalAmount      decimal.Decimal      `json:"total_amount"`
	Currency         valueobject.Currency `json:"currency"`
	TotalAmountTZS   decimal.Decimal      `json:"total_amount_tzs"`
	Status           Status               `json:"status"`
	ApprovedBy       *uuid.UUID           `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time           `json:"approved_at,omitempty"`
	PaidAt           *time.Time           `json:"paid_at,omitempty"`
	PaymentRef       string               `json:"payment_ref,omitempty"`
	CancelReason     string               `json:"cancel_reason,omitempty"`
	Items            []SettlementItem     `json:"items,omitempty"`
}

// SettlementItem allocates one invoice to a settlement. The allocated
// amount is the invoice's own amount, never a remainder split, so the
// batch total always reconciles against the invoices it covers.
type SettlementItem struct {
	shared.BaseEntity
	SettlementID  uuid.UUID       `json:"settlement_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// InvoiceRef carries the figures a settlement needs from each invoice
// it covers, decoupling this context from the billing aggregate.
type InvoiceRef struct {
	InvoiceID     uuid.UUID
	InvoiceNumber string
	Amount        decimal.Decimal
	AmountTZS     decimal.Decimal
	Currency      valueobject.Currency
}

// NewSettlement builds a settlement over the given invoices. All
// invoices must share one currency; the total is their exact sum.
func NewSettlement(
	agentID uuid.UUID,
	settlementType Type,
	periodStart, periodEnd time.Time,
	invoices []InvoiceRef,
) (*Settlement, error) {
	if agentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENT", "Agent ID cannot be empty")
	}
	if !settlementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Settlement type is not valid")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	}
	if len(invoices) == 0 {
		return nil, shared.NewDomainError("EMPTY_SETTLEMENT", "Settlement must cover at least one invoice")
	}

	currency := invoices[0].Currency
	total := decimal.Zero
	totalTZS := decimal.Zero
	seen := make(map[uuid.UUID]bool, len(invoices))
	items := make([]SettlementItem, 0, len(invoices))

	for _, inv := range invoices {
		if inv.InvoiceID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
		}
		if seen[inv.InvoiceID] {
			return nil, shared.NewDomainError("DUPLICATE_INVOICE",
				fmt.Sprintf("Invoice %s appears more than once", inv.InvoiceNumber))
		}
		seen[inv.InvoiceID] = true
		if inv.Currency != currency {
			return nil, shared.ErrCurrencyMismatch
		}
		if !inv.Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT",
				fmt.Sprintf("Invoice %s has a non-positive amount", inv.InvoiceNumber))
		}

		total = total.Add(inv.Amount)
		totalTZS = totalTZS.Add(inv.AmountTZS)
		items = append(items, SettlementItem{
			BaseEntity:    shared.NewBaseEntity(),
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			Amount:        inv.Amount,
		})
	}

	s := &Settlement{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		AgentID:              agentID,
		Type:                 settlementType,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		TotalAmount:          total,
		Currency:             currency,
		TotalAmountTZS:       totalTZS,
		Status:               StatusPending,
		Items:                items,
	}

	for i := range s.Items {
		s.Items[i].SettlementID = s.ID
	}

	s.AddDomainEvent(NewSettlementCreatedEvent(s))

	return s, nil
}

// Approve moves the settlement from PENDING to APPROVED
func (s *Settlement) Approve(approverID uuid.UUID) error {
	if s.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve settlement in %s status", s.Status))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Approver cannot be empty")
	}

	now := time.Now()
	s.Status = StatusApproved
	s.ApprovedBy = &approverID
	s.ApprovedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewSettlementApprovedEvent(s))

	return nil
}

// MarkPaid records the payout of an approved settlement
func (s *Settlement) MarkPaid(paymentRef string) error {
	if s.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay settlement in %s status", s.Status))
	}
	if paymentRef == "" {
		return shared.NewDomainError("INVALID_INPUT", "Payment reference cannot be empty")
	}

	now := time.Now()
	s.Status = StatusPaid
	s.PaidAt = &now
	s.PaymentRef = paymentRef
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewSettlementPaidEvent(s))

	return nil
}

// Cancel voids the settlement, releasing its invoices for a future
// batch. A paid settlement cannot be cancelled.
func (s *Settlement) Cancel(reason string) error {
	if s.Status != StatusPending && s.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel settlement in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_INPUT", "Cancellation reason cannot be empty")
	}

	s.Status = StatusCancelled
	s.CancelReason = reason
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewSettlementCancelledEvent(s))

	return nil
}

// ItemTotal sums the item allocations; it always equals TotalAmount
func (s *Settlement) ItemTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// TotalMoney returns the settlement total as Money
func (s *Settlement) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(s.TotalAmount, s.Currency)
	return m
}

// InvoiceIDs lists the invoices this settlement covers
func (s *Settlement) InvoiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.InvoiceID
	}
	return ids
}
