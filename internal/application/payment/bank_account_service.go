package payment

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BankAccountService manages company bank accounts and their ledger
type BankAccountService struct {
	bankAccountRepo payment.BankAccountRepository
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(bankAccountRepo payment.BankAccountRepository) *BankAccountService {
	return &BankAccountService{bankAccountRepo: bankAccountRepo}
}

// Create opens a bank account with a zero balance
func (s *BankAccountService) Create(ctx context.Context, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := payment.NewBankAccount(req.Name, req.BankName, req.AccountNumber, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	if err := s.bankAccountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}

// GetByID retrieves a bank account by ID
func (s *BankAccountService) GetByID(ctx context.Context, accountID uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.bankAccountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}

// List retrieves bank accounts with pagination
func (s *BankAccountService) List(ctx context.Context, filter shared.Filter) ([]BankAccountResponse, int64, error) {
	accounts, total, err := s.bankAccountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToBankAccountResponse(&accounts[i])
	}
	return responses, total, nil
}

// Deactivate closes a bank account for new postings
func (s *BankAccountService) Deactivate(ctx context.Context, accountID uuid.UUID) error {
	account, err := s.bankAccountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	account.Deactivate()
	return s.bankAccountRepo.Save(ctx, account)
}

// ListTransactions retrieves the ledger entries of an account
func (s *BankAccountService) ListTransactions(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]BankTransactionResponse, int64, error) {
	if _, err := s.bankAccountRepo.FindByID(ctx, accountID); err != nil {
		return nil, 0, err
	}

	txns, total, err := s.bankAccountRepo.FindTransactions(ctx, accountID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BankTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToBankTransactionResponse(&txns[i])
	}
	return responses, total, nil
}
