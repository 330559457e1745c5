package payment

import (
	"fmt"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccount is a company bank or mobile-money account that verified
// payments are posted against. The balance moves only through
// BankTransaction postings.
type BankAccount struct {
	shared.AuditedAggregateRoot
	Name          string               `json:"name"`
	BankName      string               `json:"bank_name"`
	AccountNumber string               `json:"account_number"`
	Currency      valueobject.Currency `json:"currency"`
	Balance       decimal.Decimal      `json:"balance"`
	Active        bool                 `json:"active"`
}

// NewBankAccount creates a new bank account with a zero balance
func NewBankAccount(name, bankName, accountNumber string, currency valueobject.Currency) (*BankAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Account currency is not valid")
	}

	return &BankAccount{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 name,
		BankName:             bankName,
		AccountNumber:        accountNumber,
		Currency:             currency,
		Balance:              decimal.Zero,
		Active:               true,
	}, nil
}

// TransactionDirection indicates whether a posting credits or debits the account
type TransactionDirection string

const (
	DirectionCredit TransactionDirection = "CREDIT" // money into the account
	DirectionDebit  TransactionDirection = "DEBIT"  // money out of the account
)

// IsValid checks if the direction is valid
func (d TransactionDirection) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// BankTransaction is an append-only ledger movement against a bank account,
// created when a payment claim is verified or a settlement is paid out.
type BankTransaction struct {
	shared.BaseEntity
	BankAccountID uuid.UUID            `json:"bank_account_id"`
	PaymentID     *uuid.UUID           `json:"payment_id,omitempty"`
	SettlementID  *uuid.UUID           `json:"settlement_id,omitempty"`
	Direction     TransactionDirection `json:"direction"`
	Amount        decimal.Decimal      `json:"amount"`
	BalanceAfter  decimal.Decimal      `json:"balance_after"`
	Description   string               `json:"description"`
	PostedAt      time.Time            `json:"posted_at"`
}

// Post applies a ledger movement to the account and returns the transaction
// record. Debits may not overdraw the account.
func (a *BankAccount) Post(direction TransactionDirection, amount decimal.Decimal, description string) (*BankTransaction, error) {
	if !a.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot post to an inactive account")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Transaction direction is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	newBalance := a.Balance
	switch direction {
	case DirectionCredit:
		newBalance = newBalance.Add(amount)
	case DirectionDebit:
		newBalance = newBalance.Sub(amount)
		if newBalance.IsNegative() {
			return nil, shared.NewDomainError("INSUFFICIENT_BALANCE",
				fmt.Sprintf("Debit %s would overdraw account balance %s", amount.StringFixed(2), a.Balance.StringFixed(2)))
		}
	}

	a.Balance = newBalance
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return &BankTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		BankAccountID: a.ID,
		Direction:     direction,
		Amount:        amount,
		BalanceAfter:  newBalance,
		Description:   description,
		PostedAt:      time.Now(),
	}, nil
}

// Deactivate closes the account for new postings
func (a *BankAccount) Deactivate() {
	if !a.Active {
		return
	}
	a.Active = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}
