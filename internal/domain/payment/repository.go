package payment

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	InvoiceID *uuid.UUID
	Status    *VerificationStatus
	Method    *Method
	FromDate  *time.Time
	ToDate    *time.Time
}

// PaymentRepository persists Payment aggregates
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)
	Save(ctx context.Context, payment *Payment) error
}

// BankAccountRepository persists BankAccount aggregates and their ledger
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BankAccount, int64, error)
	Save(ctx context.Context, account *BankAccount) error
	SaveTransaction(ctx context.Context, txn *BankTransaction) error
	FindTransactions(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]BankTransaction, int64, error)
}
