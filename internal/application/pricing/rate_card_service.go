package pricing

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RateCardService manages per-region rate cards and resolves quotes
type RateCardService struct {
	regionRepo   pricing.RegionRepository
	rateCardRepo pricing.RateCardRepository
	resolver     *pricing.Resolver
	txManager    shared.TransactionManager
}

// NewRateCardService creates a new RateCardService
func NewRateCardService(
	regionRepo pricing.RegionRepository,
	rateCardRepo pricing.RateCardRepository,
	txManager shared.TransactionManager,
) *RateCardService {
	return &RateCardService{
		regionRepo:   regionRepo,
		rateCardRepo: rateCardRepo,
		resolver:     pricing.NewResolver(),
		txManager:    txManager,
	}
}

// Create replaces the region's active rate card with a new one. The
// old card is deactivated in the same transaction, so exactly one
// active card exists per region at any time.
func (s *RateCardService) Create(ctx context.Context, req CreateRateCardRequest) (*RateCardResponse, error) {
	region, err := s.regionRepo.FindByID(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}
	if !region.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot price an inactive region")
	}

	card, err := pricing.NewRateCard(
		req.RegionID,
		req.CustomerRatePerKg,
		req.AgentRatePerKg,
		req.HandlingFee,
		valueobject.Currency(req.Currency),
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		card.SetCreatedBy(*req.CreatedBy)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.rateCardRepo.DeactivateForRegion(ctx, req.RegionID); err != nil {
			return err
		}
		return s.rateCardRepo.Save(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	response := ToRateCardResponse(card)
	return &response, nil
}

// Update changes the figures on a region's active rate card
func (s *RateCardService) Update(ctx context.Context, cardID uuid.UUID, req UpdateRateCardRequest) (*RateCardResponse, error) {
	card, err := s.rateCardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	customerRate := card.CustomerRatePerKg
	if req.CustomerRatePerKg != nil {
		customerRate = *req.CustomerRatePerKg
	}
	agentRate := card.AgentRatePerKg
	if req.AgentRatePerKg != nil {
		agentRate = *req.AgentRatePerKg
	}
	handlingFee := card.HandlingFee
	if req.HandlingFee != nil {
		handlingFee = *req.HandlingFee
	}

	if err := card.UpdateRates(customerRate, agentRate, handlingFee); err != nil {
		return nil, err
	}

	if err := s.rateCardRepo.Save(ctx, card); err != nil {
		return nil, err
	}

	response := ToRateCardResponse(card)
	return &response, nil
}

// GetActiveByRegion returns the region's current rate card
func (s *RateCardService) GetActiveByRegion(ctx context.Context, regionID uuid.UUID) (*RateCardResponse, error) {
	card, err := s.rateCardRepo.FindActiveByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	response := ToRateCardResponse(card)
	return &response, nil
}

// ListByRegion returns every rate card ever issued for a region
func (s *RateCardService) ListByRegion(ctx context.Context, regionID uuid.UUID) ([]RateCardResponse, error) {
	cards, err := s.rateCardRepo.FindAllByRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	responses := make([]RateCardResponse, len(cards))
	for i := range cards {
		responses[i] = ToRateCardResponse(&cards[i])
	}
	return responses, nil
}

// Resolve returns the quote for a region and rate kind. A region
// without an active rate card yields shared.ErrRateUnavailable, never
// a zero-cost quote.
func (s *RateCardService) Resolve(ctx context.Context, regionID uuid.UUID, kind pricing.RateKind) (*QuoteResponse, error) {
	card, err := s.rateCardRepo.FindActiveByRegion(ctx, regionID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrRateUnavailable
		}
		return nil, err
	}

	quote, err := s.resolver.Resolve(card, kind)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		RegionID:    regionID,
		RateKind:    kind.String(),
		RatePerKg:   quote.RatePerKg.Amount(),
		HandlingFee: quote.HandlingFee.Amount(),
		Currency:    quote.Currency().String(),
	}, nil
}
