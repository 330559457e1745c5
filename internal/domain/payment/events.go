package payment

import (
	"github.com/cargoflow/backend/internal/domain/shared"
)

// Event types for the payment context
const (
	EventTypePaymentRecorded = "payment.recorded"
	EventTypePaymentVerified = "payment.verified"
	EventTypePaymentRejected = "payment.rejected"
)

// PaymentRecordedEvent is raised when a payer submits a payment claim
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID      string `json:"invoice_id"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	Method         string `json:"method"`
	TransactionRef string `json:"transaction_ref"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, "Payment", p.ID),
		InvoiceID:       p.InvoiceID.String(),
		Amount:          p.Amount.String(),
		Currency:        p.Currency.String(),
		Method:          string(p.Method),
		TransactionRef:  p.TransactionRef,
	}
}

// PaymentVerifiedEvent is raised when an admin confirms a payment claim
type PaymentVerifiedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     string `json:"invoice_id"`
	BankAccountID string `json:"bank_account_id"`
	Amount        string `json:"amount"`
}

// NewPaymentVerifiedEvent creates a new PaymentVerifiedEvent
func NewPaymentVerifiedEvent(p *Payment) *PaymentVerifiedEvent {
	e := &PaymentVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentVerified, "Payment", p.ID),
		InvoiceID:       p.InvoiceID.String(),
		Amount:          p.Amount.String(),
	}
	if p.BankAccountID != nil {
		e.BankAccountID = p.BankAccountID.String()
	}
	return e
}

// PaymentRejectedEvent is raised when an admin dismisses a payment claim
type PaymentRejectedEvent struct {
	shared.BaseDomainEvent
	InvoiceID string `json:"invoice_id"`
	Reason    string `json:"reason,omitempty"`
}

// NewPaymentRejectedEvent creates a new PaymentRejectedEvent
func NewPaymentRejectedEvent(p *Payment) *PaymentRejectedEvent {
	return &PaymentRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRejected, "Payment", p.ID),
		InvoiceID:       p.InvoiceID.String(),
		Reason:          p.RejectionReason,
	}
}
