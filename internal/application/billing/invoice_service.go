package billing

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/cargoflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// RateConverter converts foreign amounts into the home currency.
// Implemented by the pricing exchange-rate service; a missing rate
// surfaces as shared.ErrRateUnavailable.
type RateConverter interface {
	ToHome(ctx context.Context, m valueobject.Money) (valueobject.Money, error)
}

// InvoiceService issues invoices, converts approved estimates and
// maintains line items
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	estimateRepo billing.EstimateRepository
	rates        RateConverter
	txManager    shared.TransactionManager
	policy       Policy
	metrics      MetricsRecorder
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	estimateRepo billing.EstimateRepository,
	rates RateConverter,
	txManager shared.TransactionManager,
	policy Policy,
	metrics MetricsRecorder,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		estimateRepo: estimateRepo,
		rates:        rates,
		txManager:    txManager,
		policy:       policy,
		metrics:      metrics,
	}
}

// ConvertEstimate approves an estimate and issues its invoice in one
// transaction. The estimate is marked converted and the invoice
// inserted together, and the unique index on invoices.estimate_id
// makes a concurrent second conversion fail instead of issuing a
// duplicate invoice. The home-currency amount is frozen at creation;
// a missing exchange rate aborts the conversion.
func (s *InvoiceService) ConvertEstimate(ctx context.Context, estimateID uuid.UUID) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing", "convert_estimate")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrEstimateID, estimateID.String())

	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	total := estimate.TotalMoney()
	amountTZS := total.Amount()
	if !total.IsHomeCurrency() {
		home, err := s.rates.ToHome(ctx, total)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		amountTZS = home.Amount()
	}

	var invoice *billing.Invoice
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		estID := estimate.ID
		invoice, err = billing.NewInvoice(number, billing.InvoiceInput{
			CustomerID:  &estimate.CustomerID,
			ShipmentID:  estimate.ShipmentID,
			EstimateID:  &estID,
			Type:        billing.InvoiceType(estimate.Type),
			Direction:   billing.DirectionCustomer,
			Amount:      estimate.Total,
			AmountTZS:   amountTZS,
			Currency:    estimate.Currency,
			ProductCost: estimate.ProductCost,
			PurchaseFee: estimate.PurchaseFee,
			DueDate:     time.Now().AddDate(0, 0, s.policy.InvoiceDueDays),
		})
		if err != nil {
			return err
		}
		invoice.CreatedBy = estimate.CreatedBy

		if estimate.Status == billing.EstimateStatusPending {
			if err := estimate.Approve(); err != nil {
				return err
			}
		}
		if err := estimate.MarkConverted(invoice.ID); err != nil {
			return err
		}

		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return err
		}
		return s.estimateRepo.Save(ctx, estimate)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordInvoiceIssued(ctx, string(invoice.Type), string(invoice.Direction), invoice.AmountTZS)
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Create issues a manual invoice. Foreign amounts are frozen into TZS
// at creation using the current exchange rate.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	currency := valueobject.Currency(req.Currency)
	amount, err := valueobject.NewMoney(req.Amount, currency)
	if err != nil {
		return nil, err
	}

	amountTZS := amount.Amount()
	if !amount.IsHomeCurrency() {
		home, err := s.rates.ToHome(ctx, amount)
		if err != nil {
			return nil, err
		}
		amountTZS = home.Amount()
	}

	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(number, billing.InvoiceInput{
		CustomerID: req.CustomerID,
		AgentID:    req.AgentID,
		ShipmentID: req.ShipmentID,
		Type:       billing.InvoiceTypeManual,
		Direction:  billing.InvoiceDirection(req.Direction),
		Amount:     req.Amount,
		AmountTZS:  amountTZS,
		Currency:   currency,
		DueDate:    time.Now().AddDate(0, 0, s.policy.InvoiceDueDays),
		Remark:     req.Remark,
	})
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		invoice.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordInvoiceIssued(ctx, string(invoice.Type), string(invoice.Direction), invoice.AmountTZS)
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter billing.InvoiceFilter) ([]InvoiceResponse, int64, error) {
	invoices, total, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses, total, nil
}

// AddItem appends a line item to an outstanding invoice
func (s *InvoiceService) AddItem(ctx context.Context, invoiceID uuid.UUID, req AddInvoiceItemRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := billing.NewInvoiceItem(
		billing.InvoiceItemType(req.Type),
		req.Description,
		req.Quantity,
		req.UnitPrice,
		invoice.Currency,
		req.WeightKg,
	)
	if err != nil {
		return nil, err
	}

	if err := invoice.AddItem(item); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RemoveItem deletes a line item from an outstanding invoice
func (s *InvoiceService) RemoveItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel voids an invoice with no verified payments
func (s *InvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID, reason string) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if err := invoice.Cancel(reason); err != nil {
		return err
	}
	return s.invoiceRepo.Save(ctx, invoice)
}

// MarkOverdue flags outstanding invoices past their due date. It is
// run by the scheduler and returns how many invoices were flagged.
func (s *InvoiceService) MarkOverdue(ctx context.Context, now time.Time, batchSize int) (int, error) {
	invoices, err := s.invoiceRepo.FindDueBefore(ctx, now, batchSize)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range invoices {
		inv := &invoices[i]
		if !inv.MarkOverdue(now) {
			continue
		}
		if err := s.invoiceRepo.Save(ctx, inv); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}
