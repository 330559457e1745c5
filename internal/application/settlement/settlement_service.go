package settlement

import (
	"context"
	"fmt"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/partner"
	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/cargoflow/backend/internal/domain/settlement"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/cargoflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetricsRecorder receives business metric events from settlement flows.
// A nil recorder is skipped.
type MetricsRecorder interface {
	RecordSettlementCreated(ctx context.Context, settlementType string)
}

// SettlementService batches an agent's invoices into settlements and
// moves them through approval and payout
type SettlementService struct {
	settlementRepo  settlement.SettlementRepository
	invoiceRepo     billing.InvoiceRepository
	agentRepo       partner.AgentRepository
	bankAccountRepo payment.BankAccountRepository
	txManager       shared.TransactionManager
	metrics         MetricsRecorder
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	settlementRepo settlement.SettlementRepository,
	invoiceRepo billing.InvoiceRepository,
	agentRepo partner.AgentRepository,
	bankAccountRepo payment.BankAccountRepository,
	txManager shared.TransactionManager,
	metrics MetricsRecorder,
) *SettlementService {
	return &SettlementService{
		settlementRepo:  settlementRepo,
		invoiceRepo:     invoiceRepo,
		agentRepo:       agentRepo,
		bankAccountRepo: bankAccountRepo,
		txManager:       txManager,
		metrics:         metrics,
	}
}

// Create batches the agent's paid, unsettled invoices for the period
// into one settlement. The invoice rows are locked inside the
// transaction, each item carries its invoice's own amount, and the
// total is the exact sum of those amounts.
func (s *SettlementService) Create(ctx context.Context, req CreateSettlementRequest) (*SettlementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "create")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAgentID, req.AgentID.String())

	agent, err := s.agentRepo.FindByID(ctx, req.AgentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if agent.Status != partner.AgentStatusActive {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot settle with an agent in %s status", agent.Status))
	}

	// A payout batch collects what the company owes the agent (TO_AGENT
	// invoices); a collection batch collects what the agent owes the
	// company (FROM_AGENT invoices).
	direction := billing.DirectionFromAgent
	if settlement.Type(req.Type) == settlement.TypePaymentToAgent {
		direction = billing.DirectionToAgent
	}

	var batch *settlement.Settlement
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		invoices, err := s.invoiceRepo.FindPaidUnsettledByAgent(ctx, req.AgentID, direction, req.PeriodStart, req.PeriodEnd)
		if err != nil {
			return err
		}
		if len(invoices) == 0 {
			return shared.NewDomainError("EMPTY_SETTLEMENT", "No paid unsettled invoices in the period")
		}

		refs := make([]settlement.InvoiceRef, len(invoices))
		for i, inv := range invoices {
			refs[i] = settlement.InvoiceRef{
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				Amount:        inv.Amount,
				AmountTZS:     inv.AmountTZS,
				Currency:      inv.Currency,
			}
		}

		batch, err = settlement.NewSettlement(req.AgentID, settlement.Type(req.Type), req.PeriodStart, req.PeriodEnd, refs)
		if err != nil {
			return err
		}

		number, err := s.settlementRepo.GenerateSettlementNumber(ctx)
		if err != nil {
			return err
		}
		batch.SettlementNumber = number
		if req.CreatedBy != nil {
			batch.SetCreatedBy(*req.CreatedBy)
		}

		return s.settlementRepo.Save(ctx, batch)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordSettlementCreated(ctx, string(batch.Type))
	}

	response := ToSettlementResponse(batch)
	return &response, nil
}

// Approve moves a pending settlement to APPROVED
func (s *SettlementService) Approve(ctx context.Context, settlementID, approverID uuid.UUID) (*SettlementResponse, error) {
	batch, err := s.settlementRepo.FindByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	if err := batch.Approve(approverID); err != nil {
		return nil, err
	}

	if err := s.settlementRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	response := ToSettlementResponse(batch)
	return &response, nil
}

// Pay settles an approved batch through a bank account in one
// transaction: the ledger moves and the settlement is marked paid
// together. A payout debits the account, a collection credits it.
func (s *SettlementService) Pay(ctx context.Context, settlementID uuid.UUID, req PaySettlementRequest) (*SettlementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "pay")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrSettlementID, settlementID.String())

	var batch *settlement.Settlement
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		batch, err = s.settlementRepo.FindByID(ctx, settlementID)
		if err != nil {
			return err
		}

		account, err := s.bankAccountRepo.FindByID(ctx, req.BankAccountID)
		if err != nil {
			return err
		}

		amount, err := amountForAccount(batch, account)
		if err != nil {
			return err
		}

		direction := payment.DirectionDebit
		if batch.Type == settlement.TypeCollectionFromAgent {
			direction = payment.DirectionCredit
		}

		txn, err := account.Post(direction, amount,
			fmt.Sprintf("Settlement %s", batch.SettlementNumber))
		if err != nil {
			return err
		}
		sid := batch.ID
		txn.SettlementID = &sid

		if err := batch.MarkPaid(req.PaymentRef); err != nil {
			return err
		}

		if err := s.bankAccountRepo.Save(ctx, account); err != nil {
			return err
		}
		if err := s.bankAccountRepo.SaveTransaction(ctx, txn); err != nil {
			return err
		}
		return s.settlementRepo.Save(ctx, batch)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToSettlementResponse(batch)
	return &response, nil
}

// amountForAccount picks the ledger amount: the settlement total when
// the account matches its currency, the frozen home-currency total
// when the account is kept in shillings.
func amountForAccount(batch *settlement.Settlement, account *payment.BankAccount) (decimal.Decimal, error) {
	if account.Currency == batch.Currency {
		return batch.TotalAmount, nil
	}
	if account.Currency == valueobject.HomeCurrency {
		return batch.TotalAmountTZS, nil
	}
	return decimal.Zero, shared.NewDomainError("CURRENCY_MISMATCH",
		fmt.Sprintf("Cannot settle a %s batch through a %s account", batch.Currency, account.Currency))
}

// Cancel voids a settlement before payout, releasing its invoices for
// a future batch
func (s *SettlementService) Cancel(ctx context.Context, settlementID uuid.UUID, reason string) error {
	batch, err := s.settlementRepo.FindByID(ctx, settlementID)
	if err != nil {
		return err
	}

	if err := batch.Cancel(reason); err != nil {
		return err
	}
	return s.settlementRepo.Save(ctx, batch)
}

// GetByID retrieves a settlement with its items
func (s *SettlementService) GetByID(ctx context.Context, settlementID uuid.UUID) (*SettlementResponse, error) {
	batch, err := s.settlementRepo.FindByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	response := ToSettlementResponse(batch)
	return &response, nil
}

// List retrieves settlements with filtering and pagination
func (s *SettlementService) List(ctx context.Context, filter settlement.SettlementFilter) ([]SettlementResponse, int64, error) {
	batches, total, err := s.settlementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SettlementResponse, len(batches))
	for i := range batches {
		responses[i] = ToSettlementResponse(&batches[i])
	}
	return responses, total, nil
}

// ListByAgent retrieves an agent's settlements
func (s *SettlementService) ListByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]SettlementResponse, int64, error) {
	batches, total, err := s.settlementRepo.FindByAgent(ctx, agentID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SettlementResponse, len(batches))
	for i := range batches {
		responses[i] = ToSettlementResponse(&batches[i])
	}
	return responses, total, nil
}
