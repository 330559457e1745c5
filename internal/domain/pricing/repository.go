package pricing

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RegionFilter defines filtering options for region queries
type RegionFilter struct {
	shared.Filter
	Active *bool
}

// RegionRepository persists Region aggregates
type RegionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Region, error)
	FindByCode(ctx context.Context, code string) (*Region, error)
	FindAll(ctx context.Context, filter RegionFilter) ([]Region, int64, error)
	Save(ctx context.Context, region *Region) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RateCardRepository persists RateCard aggregates
type RateCardRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RateCard, error)
	// FindActiveByRegion returns the single active card for a region, or
	// shared.ErrNotFound when none exists.
	FindActiveByRegion(ctx context.Context, regionID uuid.UUID) (*RateCard, error)
	FindAllByRegion(ctx context.Context, regionID uuid.UUID) ([]RateCard, error)
	Save(ctx context.Context, card *RateCard) error
	// DeactivateForRegion retires every active card of a region; used when a
	// replacement card is introduced in the same transaction.
	DeactivateForRegion(ctx context.Context, regionID uuid.UUID) error
}

// ExchangeRateRepository persists ExchangeRate entries
type ExchangeRateRepository interface {
	FindLatest(ctx context.Context) ([]ExchangeRate, error)
	FindLatestByCurrency(ctx context.Context, currency valueobject.Currency) (*ExchangeRate, error)
	FindHistory(ctx context.Context, currency valueobject.Currency, filter shared.Filter) ([]ExchangeRate, int64, error)
	Save(ctx context.Context, rate *ExchangeRate) error
}
