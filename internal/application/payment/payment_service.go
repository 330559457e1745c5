package payment

import (
	"context"
	"fmt"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/payment"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/cargoflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateConverter converts foreign amounts into the home currency
type RateConverter interface {
	ToHome(ctx context.Context, m valueobject.Money) (valueobject.Money, error)
}

// MetricsRecorder receives business metric events from payment flows.
// A nil recorder is skipped.
type MetricsRecorder interface {
	RecordPaymentVerification(ctx context.Context, method, outcome string)
}

// PaymentService records payment claims and verifies them against
// company bank accounts
type PaymentService struct {
	paymentRepo     payment.PaymentRepository
	bankAccountRepo payment.BankAccountRepository
	invoiceRepo     billing.InvoiceRepository
	rates           RateConverter
	txManager       shared.TransactionManager
	metrics         MetricsRecorder
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	bankAccountRepo payment.BankAccountRepository,
	invoiceRepo billing.InvoiceRepository,
	rates RateConverter,
	txManager shared.TransactionManager,
	metrics MetricsRecorder,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		bankAccountRepo: bankAccountRepo,
		invoiceRepo:     invoiceRepo,
		rates:           rates,
		txManager:       txManager,
		metrics:         metrics,
	}
}

// Record stores a payment claim against an outstanding invoice. The
// claim inherits the invoice currency and waits for verification.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.IsOutstanding() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot record a payment against an invoice in %s status", invoice.Status))
	}

	p, err := payment.NewPayment(
		invoice.ID,
		req.Amount,
		invoice.Currency,
		payment.Method(req.Method),
		req.PaidAt,
		req.TransactionRef,
		req.ProviderName,
		req.Remark,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		p.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// Verify confirms a payment claim in one transaction: the payment is
// marked verified, the bank account is credited with the home-currency
// amount, and the invoice balance advances. The bank account is
// resolved and checked here, never trusted from the claim.
func (s *PaymentService) Verify(ctx context.Context, paymentID uuid.UUID, req VerifyPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "verify")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, paymentID.String())

	var p *payment.Payment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.paymentRepo.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}

		account, err := s.bankAccountRepo.FindByID(ctx, req.BankAccountID)
		if err != nil {
			return err
		}

		invoice, err := s.invoiceRepo.FindByID(ctx, p.InvoiceID)
		if err != nil {
			return err
		}

		credit, err := s.creditAmount(ctx, p, account)
		if err != nil {
			return err
		}

		if err := p.Verify(account.ID, req.VerifierID); err != nil {
			return err
		}

		txn, err := account.Post(payment.DirectionCredit, credit,
			fmt.Sprintf("Payment %s for invoice %s", p.TransactionRef, invoice.InvoiceNumber))
		if err != nil {
			return err
		}
		pid := p.ID
		txn.PaymentID = &pid

		if err := invoice.ApplyVerifiedPayment(p.Amount); err != nil {
			return err
		}

		if err := s.paymentRepo.Save(ctx, p); err != nil {
			return err
		}
		if err := s.bankAccountRepo.Save(ctx, account); err != nil {
			return err
		}
		if err := s.bankAccountRepo.SaveTransaction(ctx, txn); err != nil {
			return err
		}
		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentVerification(ctx, string(p.Method), p.Status.String())
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// creditAmount resolves how much lands on the bank account: the claim
// amount when currencies match, or the home-currency equivalent when
// the account is kept in shillings. Any other mismatch is refused.
func (s *PaymentService) creditAmount(ctx context.Context, p *payment.Payment, account *payment.BankAccount) (decimal.Decimal, error) {
	if p.Currency == account.Currency {
		return p.Amount, nil
	}
	if account.Currency == valueobject.HomeCurrency {
		home, err := s.rates.ToHome(ctx, p.AmountMoney())
		if err != nil {
			return decimal.Zero, err
		}
		return home.Amount(), nil
	}
	return decimal.Zero, shared.NewDomainError("CURRENCY_MISMATCH",
		fmt.Sprintf("Cannot credit a %s payment to a %s account", p.Currency, account.Currency))
}

// Reject declines a payment claim with a reason
func (s *PaymentService) Reject(ctx context.Context, paymentID uuid.UUID, req RejectPaymentRequest) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := p.Reject(req.VerifierID, req.Reason); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentVerification(ctx, string(p.Method), p.Status.String())
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(p)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter payment.PaymentFilter) ([]PaymentResponse, int64, error) {
	payments, total, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, total, nil
}

// ListByInvoice retrieves every payment claim recorded for an invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}
