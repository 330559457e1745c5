package pricing

import (
	"github.com/cargoflow/backend/internal/domain/shared"
)

// Event types for the pricing context
const (
	EventTypeRegionCreated   = "pricing.region.created"
	EventTypeRateCardCreated = "pricing.rate_card.created"
	EventTypeRateCardUpdated = "pricing.rate_card.updated"
	EventTypeExchangeRateSet = "pricing.exchange_rate.set"
)

// RegionCreatedEvent is raised when a new origin region is registered
type RegionCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// NewRegionCreatedEvent creates a new RegionCreatedEvent
func NewRegionCreatedEvent(r *Region) *RegionCreatedEvent {
	return &RegionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRegionCreated, "Region", r.ID),
		Code:            r.Code,
		Name:            r.Name,
		Currency:        r.Currency.String(),
	}
}

// RateCardCreatedEvent is raised when a rate card is created for a region
type RateCardCreatedEvent struct {
	shared.BaseDomainEvent
	RegionID string `json:"region_id"`
	Currency string `json:"currency"`
}

// NewRateCardCreatedEvent creates a new RateCardCreatedEvent
func NewRateCardCreatedEvent(c *RateCard) *RateCardCreatedEvent {
	return &RateCardCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRateCardCreated, "RateCard", c.ID),
		RegionID:        c.RegionID.String(),
		Currency:        c.Currency.String(),
	}
}

// RateCardUpdatedEvent is raised when rates on a card change
type RateCardUpdatedEvent struct {
	shared.BaseDomainEvent
	RegionID          string `json:"region_id"`
	CustomerRatePerKg string `json:"customer_rate_per_kg"`
	AgentRatePerKg    string `json:"agent_rate_per_kg"`
	HandlingFee       string `json:"handling_fee"`
}

// NewRateCardUpdatedEvent creates a new RateCardUpdatedEvent
func NewRateCardUpdatedEvent(c *RateCard) *RateCardUpdatedEvent {
	return &RateCardUpdatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeRateCardUpdated, "RateCard", c.ID),
		RegionID:          c.RegionID.String(),
		CustomerRatePerKg: c.CustomerRatePerKg.String(),
		AgentRatePerKg:    c.AgentRatePerKg.String(),
		HandlingFee:       c.HandlingFee.String(),
	}
}

// ExchangeRateSetEvent is raised when a new exchange rate becomes effective.
// Consumers use it to invalidate cached rate tables.
type ExchangeRateSetEvent struct {
	shared.BaseDomainEvent
	Currency  string `json:"currency"`
	RateToTZS string `json:"rate_to_tzs"`
}

// NewExchangeRateSetEvent creates a new ExchangeRateSetEvent
func NewExchangeRateSetEvent(r *ExchangeRate) *ExchangeRateSetEvent {
	return &ExchangeRateSetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExchangeRateSet, "ExchangeRate", r.ID),
		Currency:        r.Currency.String(),
		RateToTZS:       r.RateToTZS.String(),
	}
}
