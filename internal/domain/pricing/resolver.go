package pricing

import (
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
)

// Quote is a resolved rate for an origin region: the per-kilogram rate and
// the flat handling fee, both in the card's currency.
type Quote struct {
	RatePerKg   valueobject.Money
	HandlingFee valueobject.Money
}

// Currency returns the currency the quote is denominated in
func (q Quote) Currency() valueobject.Currency {
	return q.RatePerKg.Currency()
}

// Resolver resolves rate cards into quotes. A missing or inactive card is
// an explicit RATE_UNAVAILABLE error, never a zero-cost quote.
type Resolver struct{}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve yields the quote for the given card and rate kind.
// Pass a nil card when no active card exists for the region.
func (r *Resolver) Resolve(card *RateCard, kind RateKind) (Quote, error) {
	if card == nil || !card.Active {
		return Quote{}, shared.ErrRateUnavailable
	}
	if !kind.IsValid() {
		return Quote{}, shared.NewDomainError("INVALID_RATE_KIND", "Rate kind is not valid")
	}

	rate, err := card.RateFor(kind)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		RatePerKg:   rate,
		HandlingFee: card.HandlingFeeMoney(),
	}, nil
}
