package customs

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Statutory fallback rates applied when the rate table carries no
// active row for a category.
var (
	DefaultImportDutyRate        = decimal.NewFromFloat(0.25)
	DefaultExciseDutyRate        = decimal.NewFromFloat(0.05)
	DefaultOldVehicleRate        = decimal.NewFromFloat(0.25)
	DefaultOldVehicleUtilityRate = decimal.NewFromFloat(0.05)
	DefaultVATRate               = decimal.NewFromFloat(0.18)
)

// OldVehicleAgeThreshold is the age in years, inclusive, from which
// the old-vehicle surcharge applies.
const OldVehicleAgeThreshold = 8

// VehicleProfile describes the vehicle being imported
type VehicleProfile struct {
	EngineCC  *int // nil when displacement is unknown
	Year      *int // manufacture year; nil skips the age surcharge
	IsUtility bool
}

// DutyBreakdownLine is one display row of the calculation
type DutyBreakdownLine struct {
	Label  string          `json:"label"`
	Rate   string          `json:"rate,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// DutyResult carries every component of the calculation plus the
// ordered breakdown for display
type DutyResult struct {
	CIFValue         decimal.Decimal     `json:"cif_value"`
	ImportDuty       decimal.Decimal     `json:"import_duty"`
	ExciseDuty       decimal.Decimal     `json:"excise_duty"`
	OldVehicleFee    decimal.Decimal     `json:"old_vehicle_fee"`
	DutiableValue    decimal.Decimal     `json:"dutiable_value"`
	VAT              decimal.Decimal     `json:"vat"`
	RegistrationFees decimal.Decimal     `json:"registration_fees"`
	TotalDuties      decimal.Decimal     `json:"total_duties"`
	Breakdown        []DutyBreakdownLine `json:"breakdown"`
}

// Calculator computes vehicle import duties from a rate table
// snapshot. It is a pure function of its inputs: missing table rows
// fall back to statutory defaults, never to an error.
type Calculator struct {
	rates   []VehicleDutyRate
	now     func() time.Time
	printer *message.Printer
}

// NewCalculator builds a calculator over the given rate table rows
func NewCalculator(rates []VehicleDutyRate) *Calculator {
	return &Calculator{
		rates:   rates,
		now:     time.Now,
		printer: message.NewPrinter(language.English),
	}
}

// WithClock overrides the time source, used by tests for the age boundary
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	c.now = now
	return c
}

// Calculate runs the duty computation in its fixed order:
// import duty, excise duty, old-vehicle surcharge, dutiable value,
// VAT on the dutiable value, then fixed registration fees.
func (c *Calculator) Calculate(cif decimal.Decimal, vehicle VehicleProfile) DutyResult {
	if cif.IsNegative() {
		cif = decimal.Zero
	}

	importRate := c.percentageRate(CategoryImportDuty, DefaultImportDutyRate)
	importDuty := cif.Mul(importRate)

	exciseRate := c.exciseRate(vehicle.EngineCC)
	exciseDuty := cif.Mul(exciseRate)

	oldVehicleRate := decimal.Zero
	if vehicle.Year != nil {
		age := c.now().Year() - *vehicle.Year
		if age >= OldVehicleAgeThreshold {
			if vehicle.IsUtility {
				oldVehicleRate = c.percentageRate(CategoryOldVehicleUtility, DefaultOldVehicleUtilityRate)
			} else {
				oldVehicleRate = c.percentageRate(CategoryOldVehicle, DefaultOldVehicleRate)
			}
		}
	}
	oldVehicleFee := cif.Mul(oldVehicleRate)

	dutiableValue := cif.Add(importDuty).Add(exciseDuty).Add(oldVehicleFee)

	vatRate := c.percentageRate(CategoryVAT, DefaultVATRate)
	vat := dutiableValue.Mul(vatRate)

	registrationFee := c.fixedFee(CategoryRegistrationFee)
	plateFee := c.fixedFee(CategoryPlateFee)
	registrationFees := registrationFee.Add(plateFee)

	totalDuties := importDuty.Add(exciseDuty).Add(oldVehicleFee).Add(vat).Add(registrationFees)

	result := DutyResult{
		CIFValue:         cif,
		ImportDuty:       importDuty,
		ExciseDuty:       exciseDuty,
		OldVehicleFee:    oldVehicleFee,
		DutiableValue:    dutiableValue,
		VAT:              vat,
		RegistrationFees: registrationFees,
		TotalDuties:      totalDuties,
	}

	result.Breakdown = []DutyBreakdownLine{
		{Label: c.amountLabel("CIF value", cif), Amount: cif},
		{Label: "Import duty", Rate: percentLabel(importRate), Amount: importDuty},
		{Label: "Excise duty", Rate: percentLabel(exciseRate), Amount: exciseDuty},
	}
	if oldVehicleRate.IsPositive() {
		result.Breakdown = append(result.Breakdown, DutyBreakdownLine{
			Label: "Old vehicle surcharge", Rate: percentLabel(oldVehicleRate), Amount: oldVehicleFee,
		})
	}
	result.Breakdown = append(result.Breakdown,
		DutyBreakdownLine{Label: "VAT on dutiable value", Rate: percentLabel(vatRate), Amount: vat},
		DutyBreakdownLine{Label: "Registration and plate fees", Amount: registrationFees},
		DutyBreakdownLine{Label: c.amountLabel("Total duties", totalDuties), Amount: totalDuties},
	)

	return result
}

// percentageRate returns the active table rate for a category, or the
// statutory default when no row exists
func (c *Calculator) percentageRate(category RateCategory, fallback decimal.Decimal) decimal.Decimal {
	for i := range c.rates {
		r := &c.rates[i]
		if r.Active && r.Category == category {
			return r.Rate
		}
	}
	return fallback
}

// exciseRate picks the excise band covering the engine displacement;
// an unknown displacement gets the flat default.
func (c *Calculator) exciseRate(engineCC *int) decimal.Decimal {
	if engineCC == nil {
		return DefaultExciseDutyRate
	}
	for i := range c.rates {
		r := &c.rates[i]
		if r.Active && r.Matches(*engineCC) {
			return r.Rate
		}
	}
	return DefaultExciseDutyRate
}

func (c *Calculator) fixedFee(category RateCategory) decimal.Decimal {
	for i := range c.rates {
		r := &c.rates[i]
		if r.Active && r.Category == category {
			return r.Rate
		}
	}
	return decimal.Zero
}

func percentLabel(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// amountLabel renders an amount with grouped thousands for display
func (c *Calculator) amountLabel(prefix string, d decimal.Decimal) string {
	f, _ := d.Float64()
	return c.printer.Sprintf("%s: %v TZS", prefix, number.Decimal(f, number.MaxFractionDigits(2)))
}
