package pricing

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExchangeRate holds the conversion rate from one currency to the home
// currency (TZS): one unit of Currency equals RateToTZS shillings.
// Rates are append-only; the latest effective row per currency wins.
type ExchangeRate struct {
	shared.AuditedAggregateRoot
	Currency      valueobject.Currency `json:"currency"`
	RateToTZS     decimal.Decimal      `json:"rate_to_tzs"`
	EffectiveFrom time.Time            `json:"effective_from"`
}

// NewExchangeRate creates a new exchange rate entry
func NewExchangeRate(currency valueobject.Currency, rateToTZS decimal.Decimal, effectiveFrom time.Time) (*ExchangeRate, error) {
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Exchange rate currency is not valid")
	}
	if currency == valueobject.HomeCurrency {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Home currency does not need an exchange rate")
	}
	if !rateToTZS.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	if effectiveFrom.IsZero() {
		effectiveFrom = time.Now()
	}

	r := &ExchangeRate{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Currency:             currency,
		RateToTZS:            rateToTZS,
		EffectiveFrom:        effectiveFrom,
	}

	r.AddDomainEvent(NewExchangeRateSetEvent(r))

	return r, nil
}

// RateTable is a point-in-time snapshot of rates to the home currency,
// keyed by currency code.
type RateTable map[valueobject.Currency]decimal.Decimal

// NewRateTable builds a rate table from the latest exchange rates
func NewRateTable(rates []ExchangeRate) RateTable {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		table[r.Currency] = r.RateToTZS
	}
	return table
}

// ToHome converts the given money to the home currency using the table.
// Home-currency amounts pass through unchanged. A missing rate is an
// explicit RATE_UNAVAILABLE error, never a silent fallback.
func (t RateTable) ToHome(m valueobject.Money) (valueobject.Money, error) {
	if m.IsHomeCurrency() {
		return m, nil
	}
	rate, ok := t[m.Currency()]
	if !ok {
		return valueobject.Money{}, shared.ErrRateUnavailable
	}
	return m.Convert(valueobject.HomeCurrency, rate)
}
