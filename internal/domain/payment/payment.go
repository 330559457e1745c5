package payment

import (
	"fmt"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VerificationStatus represents the admin verification state of a payment claim
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "PENDING"  // Claimed by the payer, awaiting admin review
	VerificationStatusVerified VerificationStatus = "VERIFIED" // Confirmed against a bank account
	VerificationStatusRejected VerificationStatus = "REJECTED" // Dismissed; payer may resubmit a new claim
)

// IsValid checks if the status is a valid VerificationStatus
func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusVerified, VerificationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of VerificationStatus
func (s VerificationStatus) String() string {
	return string(s)
}

// IsTerminal returns true once the claim has been reviewed
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationStatusVerified || s == VerificationStatusRejected
}

// Method represents how the payer claims to have paid
type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodMobileMoney  Method = "MOBILE_MONEY"
	MethodCash         Method = "CASH"
	MethodCheque       Method = "CHEQUE"
)

// IsValid checks if the payment method is valid
func (m Method) IsValid() bool {
	switch m {
	case MethodBankTransfer, MethodMobileMoney, MethodCash, MethodCheque:
		return true
	}
	return false
}

// Payment is a claimed payment against an invoice. Rows are never deleted:
// a rejected claim stays on record and the payer submits a fresh one.
type Payment struct {
	shared.AuditedAggregateRoot
	InvoiceID       uuid.UUID            `json:"invoice_id"`
	Amount          decimal.Decimal      `json:"amount"`
	Currency        valueobject.Currency `json:"currency"`
	Method          Method               `json:"method"`
	PaidAt          time.Time            `json:"paid_at"`
	TransactionRef  string               `json:"transaction_ref"`
	ProviderName    string               `json:"provider_name,omitempty"` // bank or mobile-money provider named by the payer
	Status          VerificationStatus   `json:"status"`
	BankAccountID   *uuid.UUID           `json:"bank_account_id,omitempty"` // set at verification
	VerifiedBy      *uuid.UUID           `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time           `json:"verified_at,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	Remark          string               `json:"remark,omitempty"`
}

// NewPayment records a payment claim in PENDING status
func NewPayment(
	invoiceID uuid.UUID,
	amount decimal.Decimal,
	currency valueobject.Currency,
	method Method,
	paidAt time.Time,
	transactionRef, providerName, remark string,
) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Payment currency is not valid")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}
	if transactionRef == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Transaction reference cannot be empty")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	p := &Payment{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		InvoiceID:            invoiceID,
		Amount:               amount,
		Currency:             currency,
		Method:               method,
		PaidAt:               paidAt,
		TransactionRef:       transactionRef,
		ProviderName:         providerName,
		Status:               VerificationStatusPending,
		Remark:               remark,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// Verify confirms the claim against a bank account. The bank account is
// mandatory server-side; the ledger movement happens in the same
// transaction at the application layer.
func (p *Payment) Verify(bankAccountID, verifierID uuid.UUID) error {
	if p.Status != VerificationStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot verify payment in %s status", p.Status))
	}
	if bankAccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "A bank account must be selected for verification")
	}
	if verifierID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Verifier cannot be empty")
	}

	now := time.Now()
	p.Status = VerificationStatusVerified
	p.BankAccountID = &bankAccountID
	p.VerifiedBy = &verifierID
	p.VerifiedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	p.AddDomainEvent(NewPaymentVerifiedEvent(p))

	return nil
}

// Reject dismisses the claim with an optional reason
func (p *Payment) Reject(verifierID uuid.UUID, reason string) error {
	if p.Status != VerificationStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject payment in %s status", p.Status))
	}
	if verifierID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Verifier cannot be empty")
	}

	now := time.Now()
	p.Status = VerificationStatusRejected
	p.VerifiedBy = &verifierID
	p.VerifiedAt = &now
	p.RejectionReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()
	p.AddDomainEvent(NewPaymentRejectedEvent(p))

	return nil
}

// AmountMoney returns the claimed amount as Money
func (p *Payment) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Amount, p.Currency)
	return m
}
