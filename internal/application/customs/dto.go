package customs

import (
	"time"

	"github.com/cargoflow/backend/internal/domain/customs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculateDutyRequest asks for a duty estimate on a vehicle import
type CalculateDutyRequest struct {
	CIFValue  decimal.Decimal `json:"cif_value" binding:"required"`
	EngineCC  *int            `json:"engine_cc"`
	Year      *int            `json:"year"`
	IsUtility bool            `json:"is_utility"`
}

// DutyBreakdownLineResponse is one display row of a duty calculation
type DutyBreakdownLineResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// DutyResultResponse carries the full duty calculation
type DutyResultResponse struct {
	CIFValue         decimal.Decimal             `json:"cif_value"`
	ImportDuty       decimal.Decimal             `json:"import_duty"`
	ExciseDuty       decimal.Decimal             `json:"excise_duty"`
	OldVehicleFee    decimal.Decimal             `json:"old_vehicle_fee"`
	DutiableValue    decimal.Decimal             `json:"dutiable_value"`
	VAT              decimal.Decimal             `json:"vat"`
	RegistrationFees decimal.Decimal             `json:"registration_fees"`
	TotalDuties      decimal.Decimal             `json:"total_duties"`
	Breakdown        []DutyBreakdownLineResponse `json:"breakdown"`
}

// ToDutyResultResponse maps a domain duty result to its response shape
func ToDutyResultResponse(r customs.DutyResult) DutyResultResponse {
	breakdown := make([]DutyBreakdownLineResponse, len(r.Breakdown))
	for i, line := range r.Breakdown {
		breakdown[i] = DutyBreakdownLineResponse{Label: line.Label, Amount: line.Amount}
	}

	return DutyResultResponse{
		CIFValue:         r.CIFValue,
		ImportDuty:       r.ImportDuty,
		ExciseDuty:       r.ExciseDuty,
		OldVehicleFee:    r.OldVehicleFee,
		DutiableValue:    r.DutiableValue,
		VAT:              r.VAT,
		RegistrationFees: r.RegistrationFees,
		TotalDuties:      r.TotalDuties,
		Breakdown:        breakdown,
	}
}

// CreateDutyRateRequest adds a row to the duty rate table
type CreateDutyRateRequest struct {
	Category    string          `json:"category" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	MinEngineCC *int            `json:"min_engine_cc"`
	MaxEngineCC *int            `json:"max_engine_cc"`
	Description string          `json:"description" binding:"max=200"`
}

// UpdateDutyRateRequest changes the rate on an existing row
type UpdateDutyRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// DutyRateResponse represents a duty rate row in API responses
type DutyRateResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Rate        decimal.Decimal `json:"rate"`
	MinEngineCC *int            `json:"min_engine_cc,omitempty"`
	MaxEngineCC *int            `json:"max_engine_cc,omitempty"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToDutyRateResponse maps a domain duty rate to its response shape
func ToDutyRateResponse(r *customs.VehicleDutyRate) DutyRateResponse {
	return DutyRateResponse{
		ID:          r.ID,
		Category:    string(r.Category),
		Rate:        r.Rate,
		MinEngineCC: r.MinEngineCC,
		MaxEngineCC: r.MaxEngineCC,
		Description: r.Description,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
