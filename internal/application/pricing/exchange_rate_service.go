package pricing

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
)

// RateCache caches the latest exchange-rate table. Lookups tolerate a
// cache miss or failure by falling through to the repository.
type RateCache interface {
	GetRates(ctx context.Context) (pricing.RateTable, bool)
	SetRates(ctx context.Context, rates pricing.RateTable)
	Invalidate(ctx context.Context)
}

// ExchangeRateService manages the currency-to-TZS rate table
type ExchangeRateService struct {
	rateRepo pricing.ExchangeRateRepository
	cache    RateCache
}

// NewExchangeRateService creates a new ExchangeRateService
func NewExchangeRateService(rateRepo pricing.ExchangeRateRepository, cache RateCache) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo: rateRepo,
		cache:    cache,
	}
}

// Set records a new exchange rate effective from now. Rates are
// append-only; the latest row per currency wins.
func (s *ExchangeRateService) Set(ctx context.Context, req SetExchangeRateRequest) (*ExchangeRateResponse, error) {
	rate, err := pricing.NewExchangeRate(valueobject.Currency(req.Currency), req.RateToTZS, time.Now())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		rate.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	response := ToExchangeRateResponse(rate)
	return &response, nil
}

// Latest returns the current rate per foreign currency
func (s *ExchangeRateService) Latest(ctx context.Context) ([]ExchangeRateResponse, error) {
	rates, err := s.rateRepo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses, nil
}

// History returns past rates for one currency
func (s *ExchangeRateService) History(ctx context.Context, currency valueobject.Currency, filter shared.Filter) ([]ExchangeRateResponse, int64, error) {
	rates, total, err := s.rateRepo.FindHistory(ctx, currency, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses, total, nil
}

// RateTable loads the current conversion table, via the cache when
// warm. Callers convert with RateTable.ToHome, which returns
// shared.ErrRateUnavailable for an unknown currency.
func (s *ExchangeRateService) RateTable(ctx context.Context) (pricing.RateTable, error) {
	if s.cache != nil {
		if table, ok := s.cache.GetRates(ctx); ok {
			return table, nil
		}
	}

	rates, err := s.rateRepo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	table := pricing.NewRateTable(rates)
	if s.cache != nil {
		s.cache.SetRates(ctx, table)
	}
	return table, nil
}

// ToHome converts an amount into the home currency using the current
// table. Missing rates surface as shared.ErrRateUnavailable rather
// than silently passing the amount through unconverted.
func (s *ExchangeRateService) ToHome(ctx context.Context, m valueobject.Money) (valueobject.Money, error) {
	table, err := s.RateTable(ctx)
	if err != nil {
		return valueobject.Money{}, err
	}
	return table.ToHome(m)
}
