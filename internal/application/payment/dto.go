package payment

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest claims that an invoice has been paid. The claim
// stays PENDING until an accountant verifies it against a bank account.
type RecordPaymentRequest struct {
	InvoiceID      uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Method         string          `json:"method" binding:"required,oneof=BANK_TRANSFER MOBILE_MONEY CASH CHEQUE"`
	PaidAt         time.Time       `json:"paid_at"`
	TransactionRef string          `json:"transaction_ref" binding:"required,max=100"`
	ProviderName   string          `json:"provider_name" binding:"max=100"`
	Remark         string          `json:"remark" binding:"max=500"`
	CreatedBy      *uuid.UUID      `json:"-"`
}

// VerifyPaymentRequest confirms a payment claim. The bank account is
// required here, not optional: verification always moves the ledger.
type VerifyPaymentRequest struct {
	BankAccountID uuid.UUID `json:"bank_account_id" binding:"required"`
	VerifierID    uuid.UUID `json:"-"`
}

// RejectPaymentRequest declines a payment claim
type RejectPaymentRequest struct {
	Reason     string    `json:"reason" binding:"required,max=500"`
	VerifierID uuid.UUID `json:"-"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Method          string          `json:"method"`
	PaidAt          time.Time       `json:"paid_at"`
	TransactionRef  string          `json:"transaction_ref"`
	ProviderName    string          `json:"provider_name,omitempty"`
	Status          string          `json:"status"`
	BankAccountID   *uuid.UUID      `json:"bank_account_id,omitempty"`
	VerifiedBy      *uuid.UUID      `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToPaymentResponse maps a domain payment to its response shape
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Currency:        p.Currency.String(),
		Method:          string(p.Method),
		PaidAt:          p.PaidAt,
		TransactionRef:  p.TransactionRef,
		ProviderName:    p.ProviderName,
		Status:          p.Status.String(),
		BankAccountID:   p.BankAccountID,
		VerifiedBy:      p.VerifiedBy,
		VerifiedAt:      p.VerifiedAt,
		RejectionReason: p.RejectionReason,
		Remark:          p.Remark,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CreateBankAccountRequest opens a company bank account in the ledger
type CreateBankAccountRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	BankName      string `json:"bank_name" binding:"max=100"`
	AccountNumber string `json:"account_number" binding:"required,max=50"`
	Currency      string `json:"currency" binding:"required,len=3"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	BankName      string          `json:"bank_name,omitempty"`
	AccountNumber string          `json:"account_number"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToBankAccountResponse maps a domain bank account to its response shape
func ToBankAccountResponse(a *payment.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		Currency:      a.Currency.String(),
		Balance:       a.Balance,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
	}
}

// BankTransactionResponse represents a ledger entry in API responses
type BankTransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	BankAccountID uuid.UUID       `json:"bank_account_id"`
	PaymentID     *uuid.UUID      `json:"payment_id,omitempty"`
	SettlementID  *uuid.UUID      `json:"settlement_id,omitempty"`
	Direction     string          `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description,omitempty"`
	PostedAt      time.Time       `json:"posted_at"`
}

// ToBankTransactionResponse maps a ledger entry to its response shape
func ToBankTransactionResponse(txn *payment.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		ID:            txn.ID,
		BankAccountID: txn.BankAccountID,
		PaymentID:     txn.PaymentID,
		SettlementID:  txn.SettlementID,
		Direction:     string(txn.Direction),
		Amount:        txn.Amount,
		BalanceAfter:  txn.BalanceAfter,
		Description:   txn.Description,
		PostedAt:      txn.PostedAt,
	}
}
