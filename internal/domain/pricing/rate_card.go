package pricing

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateKind selects which per-kilogram rate of a card applies
type RateKind string

const (
	RateKindCustomer RateKind = "CUSTOMER" // rate billed to end customers
	RateKindAgent    RateKind = "AGENT"    // preferential rate billed to agents
)

// IsValid checks if the rate kind is valid
func (k RateKind) IsValid() bool {
	return k == RateKindCustomer || k == RateKindAgent
}

// String returns the string representation of RateKind
func (k RateKind) String() string {
	return string(k)
}

// RateCard is the per-region rate card: customer and agent per-kilogram
// rates plus a flat handling fee, all in one currency. At most one active
// card exists per region.
type RateCard struct {
	shared.AuditedAggregateRoot
	RegionID          uuid.UUID            `json:"region_id"`
	CustomerRatePerKg decimal.Decimal      `json:"customer_rate_per_kg"`
	AgentRatePerKg    decimal.Decimal      `json:"agent_rate_per_kg"`
	HandlingFee       decimal.Decimal      `json:"handling_fee"`
	Currency          valueobject.Currency `json:"currency"`
	Active            bool                 `json:"active"`
}

// NewRateCard creates a new rate card for a region
func NewRateCard(
	regionID uuid.UUID,
	customerRatePerKg, agentRatePerKg, handlingFee decimal.Decimal,
	currency valueobject.Currency,
) (*RateCard, error) {
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}
	if customerRatePerKg.IsNegative() || agentRatePerKg.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Per-kilogram rates cannot be negative")
	}
	if handlingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Handling fee cannot be negative")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Rate card currency is not valid")
	}

	c := &RateCard{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		RegionID:             regionID,
		CustomerRatePerKg:    customerRatePerKg,
		AgentRatePerKg:       agentRatePerKg,
		HandlingFee:          handlingFee,
		Currency:             currency,
		Active:               true,
	}

	c.AddDomainEvent(NewRateCardCreatedEvent(c))

	return c, nil
}

// UpdateRates changes the rates on the card
func (c *RateCard) UpdateRates(customerRatePerKg, agentRatePerKg, handlingFee decimal.Decimal) error {
	if customerRatePerKg.IsNegative() || agentRatePerKg.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Per-kilogram rates cannot be negative")
	}
	if handlingFee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Handling fee cannot be negative")
	}

	c.CustomerRatePerKg = customerRatePerKg
	c.AgentRatePerKg = agentRatePerKg
	c.HandlingFee = handlingFee
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewRateCardUpdatedEvent(c))

	return nil
}

// Deactivate retires the card; a new card replaces it
func (c *RateCard) Deactivate() {
	if !c.Active {
		return
	}
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// RateFor returns the per-kilogram rate for the given kind
func (c *RateCard) RateFor(kind RateKind) (valueobject.Money, error) {
	switch kind {
	case RateKindCustomer:
		return valueobject.NewMoney(c.CustomerRatePerKg, c.Currency)
	case RateKindAgent:
		return valueobject.NewMoney(c.AgentRatePerKg, c.Currency)
	default:
		return valueobject.Money{}, shared.NewDomainError("INVALID_RATE_KIND", "Rate kind is not valid")
	}
}

// HandlingFeeMoney returns the handling fee as Money
func (c *RateCard) HandlingFeeMoney() valueobject.Money {
	fee, _ := valueobject.NewMoney(c.HandlingFee, c.Currency)
	return fee
}
