package models

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment aggregate.
// Payments are never deleted; rejected rows stay for the audit trail.
type PaymentModel struct {
	AuditedAggregateModel
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	Method          string          `gorm:"type:varchar(20);not null"`
	PaidAt          time.Time       `gorm:"not null"`
	TransactionRef  string          `gorm:"type:varchar(100);index"`
	ProviderName    string          `gorm:"type:varchar(100)"`
	Status          string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	BankAccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	VerifiedBy      *uuid.UUID      `gorm:"type:uuid"`
	VerifiedAt      *time.Time
	RejectionReason string `gorm:"type:text"`
	Remark          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *payment.Payment {
	p := &payment.Payment{
		InvoiceID:       m.InvoiceID,
		Amount:          m.Amount,
		Currency:        valueobject.Currency(m.Currency),
		Method:          payment.Method(m.Method),
		PaidAt:          m.PaidAt,
		TransactionRef:  m.TransactionRef,
		ProviderName:    m.ProviderName,
		Status:          payment.VerificationStatus(m.Status),
		BankAccountID:   m.BankAccountID,
		VerifiedBy:      m.VerifiedBy,
		VerifiedAt:      m.VerifiedAt,
		RejectionReason: m.RejectionReason,
		Remark:          m.Remark,
	}
	m.PopulateAuditedAggregateRoot(&p.AuditedAggregateRoot)
	return p
}

// PaymentModelFromDomain converts a domain Payment to its persistence model
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	model := &PaymentModel{
		InvoiceID:       p.InvoiceID,
		Amount:          p.Amount,
		Currency:        string(p.Currency),
		Method:          string(p.Method),
		PaidAt:          p.PaidAt,
		TransactionRef:  p.TransactionRef,
		ProviderName:    p.ProviderName,
		Status:          string(p.Status),
		BankAccountID:   p.BankAccountID,
		VerifiedBy:      p.VerifiedBy,
		VerifiedAt:      p.VerifiedAt,
		RejectionReason: p.RejectionReason,
		Remark:          p.Remark,
	}
	model.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	return model
}

// BankAccountModel is the persistence model for the BankAccount aggregate.
type BankAccountModel struct {
	AuditedAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	BankName      string          `gorm:"type:varchar(200);not null"`
	AccountNumber string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount
func (m *BankAccountModel) ToDomain() *payment.BankAccount {
	account := &payment.BankAccount{
		Name:          m.Name,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		Currency:      valueobject.Currency(m.Currency),
		Balance:       m.Balance,
		Active:        m.Active,
	}
	m.PopulateAuditedAggregateRoot(&account.AuditedAggregateRoot)
	return account
}

// BankAccountModelFromDomain converts a domain BankAccount to its persistence model
func BankAccountModelFromDomain(account *payment.BankAccount) *BankAccountModel {
	model := &BankAccountModel{
		Name:          account.Name,
		BankName:      account.BankName,
		AccountNumber: account.AccountNumber,
		Currency:      string(account.Currency),
		Balance:       account.Balance,
		Active:        account.Active,
	}
	model.FromDomainAuditedAggregateRoot(account.AuditedAggregateRoot)
	return model
}

// BankTransactionModel is the persistence model for ledger movements on
// bank accounts. Rows are append-only.
type BankTransactionModel struct {
	BaseModel
	BankAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentID     *uuid.UUID      `gorm:"type:uuid;index"`
	SettlementID  *uuid.UUID      `gorm:"type:uuid;index"`
	Direction     string          `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description   string          `gorm:"type:text"`
	PostedAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BankTransactionModel) TableName() string {
	return "bank_transactions"
}

// ToDomain converts the persistence model to a domain BankTransaction
func (m *BankTransactionModel) ToDomain() *payment.BankTransaction {
	return &payment.BankTransaction{
		BaseEntity:    m.BaseModel.ToDomain(),
		BankAccountID: m.BankAccountID,
		PaymentID:     m.PaymentID,
		SettlementID:  m.SettlementID,
		Direction:     payment.TransactionDirection(m.Direction),
		Amount:        m.Amount,
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		PostedAt:      m.PostedAt,
	}
}

// BankTransactionModelFromDomain converts a domain BankTransaction to its persistence model
func BankTransactionModelFromDomain(txn *payment.BankTransaction) *BankTransactionModel {
	model := &BankTransactionModel{
		BankAccountID: txn.BankAccountID,
		PaymentID:     txn.PaymentID,
		SettlementID:  txn.SettlementID,
		Direction:     string(txn.Direction),
		Amount:        txn.Amount,
		BalanceAfter:  txn.BalanceAfter,
		Description:   txn.Description,
		PostedAt:      txn.PostedAt,
	}
	model.FromDomainBaseEntity(txn.BaseEntity)
	return model
}
