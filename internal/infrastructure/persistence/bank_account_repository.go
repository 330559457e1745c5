package persistence

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements payment.BankAccountRepository
// using GORM. Accounts and their ledger rows share the repository
// because a balance change is only ever valid together with the
// transaction row recording it.
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by its ID
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.BankAccount, error) {
	var model models.BankAccountModel
	if err := dbFromContext(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all bank accounts matching the filter
func (r *GormBankAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.BankAccount, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&models.BankAccountModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR bank_name ILIKE ? OR account_number ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accountModels []models.BankAccountModel
	if err := applyPagination(query, filter, BankAccountSortFields).
		Find(&accountModels).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]payment.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, total, nil
}

// Save stores a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *payment.BankAccount) error {
	return dbFromContext(ctx, r.db).Save(models.BankAccountModelFromDomain(account)).Error
}

// SaveTransaction appends a ledger row
func (r *GormBankAccountRepository) SaveTransaction(ctx context.Context, txn *payment.BankTransaction) error {
	return dbFromContext(ctx, r.db).Create(models.BankTransactionModelFromDomain(txn)).Error
}

// FindTransactions returns the ledger of an account, newest first
func (r *GormBankAccountRepository) FindTransactions(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]payment.BankTransaction, int64, error) {
	query := dbFromContext(ctx, r.db).
		Model(&models.BankTransactionModel{}).
		Where("bank_account_id = ?", accountID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txnModels []models.BankTransactionModel
	if err := query.Order("posted_at DESC").
		Offset(pageOffset(filter)).Limit(pageLimit(filter)).
		Find(&txnModels).Error; err != nil {
		return nil, 0, err
	}

	txns := make([]payment.BankTransaction, len(txnModels))
	for i, model := range txnModels {
		txns[i] = *model.ToDomain()
	}
	return txns, total, nil
}
