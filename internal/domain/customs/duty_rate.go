package customs

import (
	"context"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateCategory identifies one row kind in the vehicle duty rate table
type RateCategory string

const (
	CategoryImportDuty        RateCategory = "IMPORT_DUTY"
	CategoryExciseDuty        RateCategory = "EXCISE_DUTY"         // banded by engine displacement
	CategoryOldVehicle        RateCategory = "OLD_VEHICLE"         // age surcharge, non-utility
	CategoryOldVehicleUtility RateCategory = "OLD_VEHICLE_UTILITY" // age surcharge, utility vehicles
	CategoryVAT               RateCategory = "VAT"
	CategoryRegistrationFee   RateCategory = "REGISTRATION_FEE" // fixed amount, not a percentage
	CategoryPlateFee          RateCategory = "PLATE_FEE"        // fixed amount, not a percentage
)

// IsValid checks if the rate category is valid
func (c RateCategory) IsValid() bool {
	switch c {
	case CategoryImportDuty, CategoryExciseDuty, CategoryOldVehicle,
		CategoryOldVehicleUtility, CategoryVAT, CategoryRegistrationFee, CategoryPlateFee:
		return true
	}
	return false
}

// IsFixedFee returns true for categories whose Rate is an absolute
// amount rather than a percentage of the CIF value
func (c RateCategory) IsFixedFee() bool {
	return c == CategoryRegistrationFee || c == CategoryPlateFee
}

// VehicleDutyRate is one row of the customs rate table. Percentage
// categories store Rate as a fraction (0.25 for 25%); fixed-fee
// categories store an absolute TZS amount. Excise rows carry an
// inclusive engine-cc band.
type VehicleDutyRate struct {
	shared.AuditedAggregateRoot
	Category    RateCategory    `json:"category"`
	Rate        decimal.Decimal `json:"rate"`
	MinEngineCC *int            `json:"min_engine_cc,omitempty"`
	MaxEngineCC *int            `json:"max_engine_cc,omitempty"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
}

// NewVehicleDutyRate creates a rate table row
func NewVehicleDutyRate(category RateCategory, rate decimal.Decimal, minCC, maxCC *int, description string) (*VehicleDutyRate, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Duty rate category is not valid")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Duty rate cannot be negative")
	}
	if category == CategoryExciseDuty {
		if minCC == nil || maxCC == nil {
			return nil, shared.NewDomainError("INVALID_BAND", "Excise duty rows require an engine-cc band")
		}
		if *minCC < 0 || *maxCC < *minCC {
			return nil, shared.NewDomainError("INVALID_BAND", "Engine-cc band bounds are not valid")
		}
	} else if minCC != nil || maxCC != nil {
		return nil, shared.NewDomainError("INVALID_BAND", "Only excise duty rows carry an engine-cc band")
	}

	return &VehicleDutyRate{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Category:             category,
		Rate:                 rate,
		MinEngineCC:          minCC,
		MaxEngineCC:          maxCC,
		Description:          description,
		Active:               true,
	}, nil
}

// Matches reports whether an excise band covers the given engine
// displacement; bounds are inclusive on both ends.
func (r *VehicleDutyRate) Matches(engineCC int) bool {
	if r.Category != CategoryExciseDuty || r.MinEngineCC == nil || r.MaxEngineCC == nil {
		return false
	}
	return engineCC >= *r.MinEngineCC && engineCC <= *r.MaxEngineCC
}

// UpdateRate changes the rate value of the row
func (r *VehicleDutyRate) UpdateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Duty rate cannot be negative")
	}
	r.Rate = rate
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Deactivate removes the row from calculator lookups
func (r *VehicleDutyRate) Deactivate() {
	r.Active = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// VehicleDutyRateRepository persists the customs rate table
type VehicleDutyRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleDutyRate, error)
	FindAllActive(ctx context.Context) ([]VehicleDutyRate, error)
	FindByCategory(ctx context.Context, category RateCategory) ([]VehicleDutyRate, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]VehicleDutyRate, int64, error)
	Save(ctx context.Context, rate *VehicleDutyRate) error
	Delete(ctx context.Context, rate *VehicleDutyRate) error
}
