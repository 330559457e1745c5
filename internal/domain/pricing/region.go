package pricing

import (
	"strings"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
)

// Region represents an origin country or zone shipments are forwarded from.
// It is admin-maintained reference data; a region carries the currency its
// rate cards are quoted in.
type Region struct {
	shared.AuditedAggregateRoot
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	FlagGlyph string               `json:"flag_glyph"`
	Currency  valueobject.Currency `json:"currency"`
	Active    bool                 `json:"active"`
}

// NewRegion creates a new origin region
func NewRegion(code, name, flagGlyph string, currency valueobject.Currency) (*Region, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_REGION_CODE", "Region code cannot be empty")
	}
	if len(code) > 30 {
		return nil, shared.NewDomainError("INVALID_REGION_CODE", "Region code cannot exceed 30 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_REGION_NAME", "Region name cannot be empty")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Region currency is not valid")
	}

	r := &Region{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Code:                 code,
		Name:                 name,
		FlagGlyph:            flagGlyph,
		Currency:             currency,
		Active:               true,
	}

	r.AddDomainEvent(NewRegionCreatedEvent(r))

	return r, nil
}

// Update changes the display attributes of the region
func (r *Region) Update(name, flagGlyph string, currency valueobject.Currency) error {
	if name == "" {
		return shared.NewDomainError("INVALID_REGION_NAME", "Region name cannot be empty")
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Region currency is not valid")
	}

	r.Name = name
	r.FlagGlyph = flagGlyph
	r.Currency = currency
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Deactivate hides the region from quoting without deleting history
func (r *Region) Deactivate() {
	if !r.Active {
		return
	}
	r.Active = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Activate re-enables the region for quoting
func (r *Region) Activate() {
	if r.Active {
		return
	}
	r.Active = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
