package billing

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Policy carries the billing configuration knobs. One due-days value
// applies to every invoice-creation path.
type Policy struct {
	InvoiceDueDays    int
	EstimateValidDays int
}

// DefaultPolicy returns the standard billing policy
func DefaultPolicy() Policy {
	return Policy{
		InvoiceDueDays:    14,
		EstimateValidDays: 30,
	}
}

// EstimateService builds and manages price estimates
type EstimateService struct {
	estimateRepo billing.EstimateRepository
	regionRepo   pricing.RegionRepository
	rateCardRepo pricing.RateCardRepository
	resolver     *pricing.Resolver
	policy       Policy
	metrics      MetricsRecorder
}

// MetricsRecorder receives business metric events from billing flows.
// A nil recorder is skipped.
type MetricsRecorder interface {
	RecordEstimateCreated(ctx context.Context, estimateType, currency string)
	RecordInvoiceIssued(ctx context.Context, invoiceType, direction string, amountTZS decimal.Decimal)
}

// NewEstimateService creates a new EstimateService
func NewEstimateService(
	estimateRepo billing.EstimateRepository,
	regionRepo pricing.RegionRepository,
	rateCardRepo pricing.RateCardRepository,
	policy Policy,
	metrics MetricsRecorder,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		regionRepo:   regionRepo,
		rateCardRepo: rateCardRepo,
		resolver:     pricing.NewResolver(),
		policy:       policy,
		metrics:      metrics,
	}
}

// Create builds an estimate. The rate and handling fee come from the
// region's active rate card; a region without one fails with
// shared.ErrRateUnavailable instead of producing a zero-cost estimate.
func (s *EstimateService) Create(ctx context.Context, req CreateEstimateRequest) (*EstimateResponse, error) {
	region, err := s.regionRepo.FindByID(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}
	if !region.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Region is not active")
	}

	card, err := s.rateCardRepo.FindActiveByRegion(ctx, req.RegionID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrRateUnavailable
		}
		return nil, err
	}

	quote, err := s.resolver.Resolve(card, pricing.RateKindCustomer)
	if err != nil {
		return nil, err
	}

	number, err := s.estimateRepo.GenerateEstimateNumber(ctx)
	if err != nil {
		return nil, err
	}

	validDays := req.ValidDays
	if validDays == 0 {
		validDays = s.policy.EstimateValidDays
	}

	estimate, err := billing.NewEstimate(number, billing.EstimateInput{
		CustomerID:  req.CustomerID,
		ShipmentID:  req.ShipmentID,
		RegionID:    req.RegionID,
		Type:        billing.EstimateType(req.Type),
		WeightKg:    req.WeightKg,
		RatePerKg:   quote.RatePerKg.Amount(),
		HandlingFee: quote.HandlingFee.Amount(),
		ProductCost: req.ProductCost,
		PurchaseFee: req.PurchaseFee,
		Currency:    quote.Currency(),
		ValidDays:   validDays,
		Remark:      req.Remark,
	})
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		estimate.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.estimateRepo.Save(ctx, estimate); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordEstimateCreated(ctx, string(estimate.Type), estimate.Currency.String())
	}

	response := ToEstimateResponse(estimate)
	return &response, nil
}

// Update changes the figures of a pending estimate and recalculates
// its totals
func (s *EstimateService) Update(ctx context.Context, estimateID uuid.UUID, req UpdateEstimateRequest) (*EstimateResponse, error) {
	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	weightKg := estimate.WeightKg
	if req.WeightKg != nil {
		weightKg = *req.WeightKg
	}
	productCost := estimate.ProductCost
	if req.ProductCost != nil {
		productCost = *req.ProductCost
	}
	purchaseFee := estimate.PurchaseFee
	if req.PurchaseFee != nil {
		purchaseFee = *req.PurchaseFee
	}

	if err := estimate.UpdateFigures(weightKg, estimate.RatePerKg, estimate.HandlingFee, productCost, purchaseFee); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.Save(ctx, estimate); err != nil {
		return nil, err
	}

	response := ToEstimateResponse(estimate)
	return &response, nil
}

// GetByID retrieves an estimate by ID
func (s *EstimateService) GetByID(ctx context.Context, estimateID uuid.UUID) (*EstimateResponse, error) {
	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		return nil, err
	}

	response := ToEstimateResponse(estimate)
	return &response, nil
}

// List retrieves estimates with filtering and pagination
func (s *EstimateService) List(ctx context.Context, filter billing.EstimateFilter) ([]EstimateResponse, int64, error) {
	estimates, total, err := s.estimateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EstimateResponse, len(estimates))
	for i := range estimates {
		responses[i] = ToEstimateResponse(&estimates[i])
	}
	return responses, total, nil
}

// Reject declines a pending estimate
func (s *EstimateService) Reject(ctx context.Context, estimateID uuid.UUID, reason string) error {
	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		return err
	}

	if err := estimate.Reject(reason); err != nil {
		return err
	}
	return s.estimateRepo.Save(ctx, estimate)
}

// Delete removes an estimate that has not been converted
func (s *EstimateService) Delete(ctx context.Context, estimateID uuid.UUID) error {
	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		return err
	}

	if !estimate.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "A converted estimate cannot be deleted")
	}
	return s.estimateRepo.Delete(ctx, estimateID)
}
