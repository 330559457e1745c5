package pricing

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Region DTOs
// =============================================================================

// CreateRegionRequest represents a request to create a region
type CreateRegionRequest struct {
	Code      string `json:"code" binding:"required,min=2,max=50"`
	Name      string `json:"name" binding:"required,min=1,max=200"`
	FlagGlyph string `json:"flag_glyph" binding:"max=10"`
	Currency  string `json:"currency" binding:"required,len=3"`
}

// UpdateRegionRequest represents a request to update a region
type UpdateRegionRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	FlagGlyph *string `json:"flag_glyph" binding:"omitempty,max=10"`
}

// RegionResponse represents a region in API responses
type RegionResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	FlagGlyph string    `json:"flag_glyph"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToRegionResponse maps a domain region to its response shape
func ToRegionResponse(r *pricing.Region) RegionResponse {
	return RegionResponse{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		FlagGlyph: r.FlagGlyph,
		Currency:  r.Currency.String(),
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// =============================================================================
// Rate card DTOs
// =============================================================================

// CreateRateCardRequest represents a request to create a rate card
type CreateRateCardRequest struct {
	RegionID          uuid.UUID       `json:"region_id" binding:"required"`
	CustomerRatePerKg decimal.Decimal `json:"customer_rate_per_kg" binding:"required"`
	AgentRatePerKg    decimal.Decimal `json:"agent_rate_per_kg" binding:"required"`
	HandlingFee       decimal.Decimal `json:"handling_fee"`
	Currency          string          `json:"currency" binding:"required,len=3"`
	CreatedBy         *uuid.UUID      `json:"-"` // set from the JWT context
}

// UpdateRateCardRequest represents a request to update rate card figures
type UpdateRateCardRequest struct {
	CustomerRatePerKg *decimal.Decimal `json:"customer_rate_per_kg"`
	AgentRatePerKg    *decimal.Decimal `json:"agent_rate_per_kg"`
	HandlingFee       *decimal.Decimal `json:"handling_fee"`
}

// RateCardResponse represents a rate card in API responses
type RateCardResponse struct {
	ID                uuid.UUID       `json:"id"`
	RegionID          uuid.UUID       `json:"region_id"`
	CustomerRatePerKg decimal.Decimal `json:"customer_rate_per_kg"`
	AgentRatePerKg    decimal.Decimal `json:"agent_rate_per_kg"`
	HandlingFee       decimal.Decimal `json:"handling_fee"`
	Currency          string          `json:"currency"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToRateCardResponse maps a domain rate card to its response shape
func ToRateCardResponse(c *pricing.RateCard) RateCardResponse {
	return RateCardResponse{
		ID:                c.ID,
		RegionID:          c.RegionID,
		CustomerRatePerKg: c.CustomerRatePerKg,
		AgentRatePerKg:    c.AgentRatePerKg,
		HandlingFee:       c.HandlingFee,
		Currency:          c.Currency.String(),
		Active:            c.Active,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// QuoteResponse is the result of resolving a region's pricing
type QuoteResponse struct {
	RegionID    uuid.UUID       `json:"region_id"`
	RateKind    string          `json:"rate_kind"`
	RatePerKg   decimal.Decimal `json:"rate_per_kg"`
	HandlingFee decimal.Decimal `json:"handling_fee"`
	Currency    string          `json:"currency"`
}

// =============================================================================
// Exchange rate DTOs
// =============================================================================

// SetExchangeRateRequest represents a request to record an exchange rate
type SetExchangeRateRequest struct {
	Currency  string          `json:"currency" binding:"required,len=3"`
	RateToTZS decimal.Decimal `json:"rate_to_tzs" binding:"required"`
	CreatedBy *uuid.UUID      `json:"-"`
}

// ExchangeRateResponse represents an exchange rate in API responses
type ExchangeRateResponse struct {
	ID            uuid.UUID       `json:"id"`
	Currency      string          `json:"currency"`
	RateToTZS     decimal.Decimal `json:"rate_to_tzs"`
	EffectiveFrom time.Time       `json:"effective_from"`
}

// ToExchangeRateResponse maps a domain exchange rate to its response shape
func ToExchangeRateResponse(r *pricing.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:            r.ID,
		Currency:      r.Currency.String(),
		RateToTZS:     r.RateToTZS,
		EffectiveFrom: r.EffectiveFrom,
	}
}
