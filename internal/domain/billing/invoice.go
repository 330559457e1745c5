package billing

import (
	"fmt"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"   // Issued, no verified payment yet
	InvoiceStatusUnpaid    InvoiceStatus = "UNPAID"    // Payment claimed but rejected, or partially covered
	InvoiceStatusPaid      InvoiceStatus = "PAID"      // Fully covered by verified payments
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"   // Past due date without full payment
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED" // Voided before payment
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusUnpaid, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further payment activity is expected
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// IsOutstanding returns true while the invoice still awaits payment
func (s InvoiceStatus) IsOutstanding() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusUnpaid || s == InvoiceStatusOverdue
}

// InvoiceDirection indicates which way money flows between agent and company
type InvoiceDirection string

const (
	DirectionFromAgent InvoiceDirection = "FROM_AGENT" // agent owes the company
	DirectionToAgent   InvoiceDirection = "TO_AGENT"   // company owes the agent
	DirectionCustomer  InvoiceDirection = "CUSTOMER"   // billed straight to a customer
)

// IsValid checks if the direction is valid
func (d InvoiceDirection) IsValid() bool {
	return d == DirectionFromAgent || d == DirectionToAgent || d == DirectionCustomer
}

// InvoiceType mirrors the estimate types plus direct staff-raised invoices
type InvoiceType string

const (
	InvoiceTypeShipping         InvoiceType = "SHIPPING"
	InvoiceTypePurchaseShipping InvoiceType = "PURCHASE_SHIPPING"
	InvoiceTypeManual           InvoiceType = "MANUAL"
)

// IsValid checks if the invoice type is valid
func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeShipping || t == InvoiceTypePurchaseShipping || t == InvoiceTypeManual
}

// Invoice is a binding bill, either snapshotted from an estimate or raised
// directly by staff. The amount is immutable after creation; adjustments
// happen through invoice items. AmountTZS freezes the home-currency value
// at issue time.
type Invoice struct {
	shared.AuditedAggregateRoot
	InvoiceNumber string               `json:"invoice_number"`
	CustomerID    *uuid.UUID           `json:"customer_id,omitempty"`
	AgentID       *uuid.UUID           `json:"agent_id,omitempty"`
	ShipmentID    *uuid.UUID           `json:"shipment_id,omitempty"`
	EstimateID    *uuid.UUID           `json:"estimate_id,omitempty"`
	Type          InvoiceType          `json:"type"`
	Direction     InvoiceDirection     `json:"direction"`
	Amount        decimal.Decimal      `json:"amount"`
	AmountTZS     decimal.Decimal      `json:"amount_tzs"`
	Currency      valueobject.Currency `json:"currency"`
	ProductCost   decimal.Decimal      `json:"product_cost"`
	PurchaseFee   decimal.Decimal      `json:"purchase_fee"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	Status        InvoiceStatus        `json:"status"`
	DueDate       time.Time            `json:"due_date"`
	Items         []InvoiceItem        `json:"items,omitempty"`
	Remark        string               `json:"remark,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CancelledAt   *time.Time           `json:"cancelled_at,omitempty"`
	CancelReason  string               `json:"cancel_reason,omitempty"`
}

// InvoiceInput carries the figures an invoice is raised from
type InvoiceInput struct {
	CustomerID  *uuid.UUID
	AgentID     *uuid.UUID
	ShipmentID  *uuid.UUID
	EstimateID  *uuid.UUID
	Type        InvoiceType
	Direction   InvoiceDirection
	Amount      decimal.Decimal
	AmountTZS   decimal.Decimal
	Currency    valueobject.Currency
	ProductCost decimal.Decimal
	PurchaseFee decimal.Decimal
	DueDate     time.Time
	Remark      string
}

// NewInvoice creates a new invoice in PENDING status
func NewInvoice(invoiceNumber string, in InvoiceInput) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if in.CustomerID == nil && in.AgentID == nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Invoice needs a customer or an agent")
	}
	if !in.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_INVOICE_TYPE", "Invoice type is not valid")
	}
	if !in.Direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invoice direction is not valid")
	}
	if !in.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}
	if in.AmountTZS.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Home-currency amount cannot be negative")
	}
	if !in.Currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Invoice currency is not valid")
	}
	if in.DueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Invoice due date cannot be empty")
	}

	inv := &Invoice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		InvoiceNumber:        invoiceNumber,
		CustomerID:           in.CustomerID,
		AgentID:              in.AgentID,
		ShipmentID:           in.ShipmentID,
		EstimateID:           in.EstimateID,
		Type:                 in.Type,
		Direction:            in.Direction,
		Amount:               in.Amount,
		AmountTZS:            in.AmountTZS,
		Currency:             in.Currency,
		ProductCost:          in.ProductCost,
		PurchaseFee:          in.PurchaseFee,
		PaidAmount:           decimal.Zero,
		Status:               InvoiceStatusPending,
		DueDate:              in.DueDate,
		Remark:               in.Remark,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem appends a line item while the invoice is still outstanding
func (inv *Invoice) AddItem(item *InvoiceItem) error {
	if !inv.Status.IsOutstanding() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to invoice in %s status", inv.Status))
	}
	if item.Currency != inv.Currency {
		return shared.ErrCurrencyMismatch
	}
	item.InvoiceID = inv.ID
	inv.Items = append(inv.Items, *item)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// RemoveItem deletes a line item while the invoice is still outstanding
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if !inv.Status.IsOutstanding() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove items from invoice in %s status", inv.Status))
	}
	for i, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			inv.UpdatedAt = time.Now()
			inv.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ItemSubtotal returns the sum of all line-item amounts
func (inv *Invoice) ItemSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range inv.Items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// ItemsBalanceAmount reports whether the line items, when present, add up to
// the invoice amount. Invoices without items trivially balance.
func (inv *Invoice) ItemsBalanceAmount() bool {
	if len(inv.Items) == 0 {
		return true
	}
	return inv.ItemSubtotal().Equal(inv.Amount)
}

// ApplyVerifiedPayment credits a verified payment against the invoice and
// advances the status toward PAID. Overpayment is rejected.
func (inv *Invoice) ApplyVerifiedPayment(amount decimal.Decimal) error {
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to invoice in %s status", inv.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	outstanding := inv.Amount.Sub(inv.PaidAmount)
	if amount.GreaterThan(outstanding) {
		return shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Payment %s exceeds outstanding %s", amount.StringFixed(2), outstanding.StringFixed(2)))
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount)
	now := time.Now()
	if inv.PaidAmount.Equal(inv.Amount) {
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &now
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.Status = InvoiceStatusUnpaid
	}
	inv.UpdatedAt = now
	inv.IncrementVersion()

	return nil
}

// MarkOverdue flags an outstanding invoice past its due date
func (inv *Invoice) MarkOverdue(now time.Time) bool {
	if !inv.Status.IsOutstanding() || inv.Status == InvoiceStatusOverdue {
		return false
	}
	if !now.After(inv.DueDate) {
		return false
	}
	inv.Status = InvoiceStatusOverdue
	inv.UpdatedAt = now
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceOverdueEvent(inv))
	return true
}

// Cancel voids the invoice before any payment has been verified
func (inv *Invoice) Cancel(reason string) error {
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}
	if inv.PaidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice with verified payments")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.CancelReason = reason
	inv.UpdatedAt = now
	inv.IncrementVersion()

	return nil
}

// IsPaid returns true once the invoice is fully covered
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// AmountMoney returns the invoice amount as Money
func (inv *Invoice) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(inv.Amount, inv.Currency)
	return m
}
