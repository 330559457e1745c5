package customs

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, 6, 15, 0, 0, 0, 0, time.UTC)
	}
}

func testRateTable(t *testing.T) []VehicleDutyRate {
	t.Helper()
	rows := []VehicleDutyRate{}
	add := func(category RateCategory, rate float64, minCC, maxCC *int) {
		r, err := NewVehicleDutyRate(category, decimal.NewFromFloat(rate), minCC, maxCC, "")
		require.NoError(t, err)
		rows = append(rows, *r)
	}

	add(CategoryImportDuty, 0.25, nil, nil)
	add(CategoryExciseDuty, 0.00, intPtr(0), intPtr(1000))
	add(CategoryExciseDuty, 0.05, intPtr(1001), intPtr(2000))
	add(CategoryExciseDuty, 0.10, intPtr(2001), intPtr(5000))
	add(CategoryOldVehicle, 0.25, nil, nil)
	add(CategoryOldVehicleUtility, 0.05, nil, nil)
	add(CategoryVAT, 0.18, nil, nil)
	add(CategoryRegistrationFee, 150000, nil, nil)
	add(CategoryPlateFee, 50000, nil, nil)
	return rows
}

func TestCalculatorFixedOrder(t *testing.T) {
	calc := NewCalculator(testRateTable(t)).WithClock(fixedClock(2026))
	cif := decimal.NewFromInt(10_000_000)

	result := calc.Calculate(cif, VehicleProfile{
		EngineCC: intPtr(1500),
		Year:     intPtr(2015), // 11 years old, non-utility
	})

	// import 25% = 2,500,000; excise 5% = 500,000; old vehicle 25% = 2,500,000
	assert.True(t, result.ImportDuty.Equal(decimal.NewFromInt(2_500_000)))
	assert.True(t, result.ExciseDuty.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, result.OldVehicleFee.Equal(decimal.NewFromInt(2_500_000)))

	// dutiable = 10,000,000 + 5,500,000 = 15,500,000; VAT 18% = 2,790,000
	assert.True(t, result.DutiableValue.Equal(decimal.NewFromInt(15_500_000)))
	assert.True(t, result.VAT.Equal(decimal.NewFromInt(2_790_000)))

	assert.True(t, result.RegistrationFees.Equal(decimal.NewFromInt(200_000)))
	assert.True(t, result.TotalDuties.Equal(decimal.NewFromInt(8_490_000)))
}

func TestCalculatorDefaults(t *testing.T) {
	// empty table: every component falls back to statutory defaults
	calc := NewCalculator(nil).WithClock(fixedClock(2026))
	cif := decimal.NewFromInt(1_000_000)

	result := calc.Calculate(cif, VehicleProfile{})

	assert.True(t, result.ImportDuty.Equal(decimal.NewFromInt(250_000)), "default import duty 25%%")
	assert.True(t, result.ExciseDuty.Equal(decimal.NewFromInt(50_000)), "default flat excise 5%%")
	assert.True(t, result.OldVehicleFee.IsZero(), "no year given, no surcharge")
	assert.True(t, result.RegistrationFees.IsZero(), "fixed fees default to zero")

	dutiable := decimal.NewFromInt(1_300_000)
	assert.True(t, result.DutiableValue.Equal(dutiable))
	assert.True(t, result.VAT.Equal(dutiable.Mul(decimal.NewFromFloat(0.18))))
}

func TestCalculatorExciseBands(t *testing.T) {
	calc := NewCalculator(testRateTable(t)).WithClock(fixedClock(2026))
	cif := decimal.NewFromInt(1_000_000)

	exciseAt := func(cc int) decimal.Decimal {
		return calc.Calculate(cif, VehicleProfile{EngineCC: intPtr(cc)}).ExciseDuty
	}

	t.Run("band bounds are inclusive on both ends", func(t *testing.T) {
		assert.True(t, exciseAt(1000).IsZero())
		assert.True(t, exciseAt(1001).Equal(decimal.NewFromInt(50_000)))
		assert.True(t, exciseAt(2000).Equal(decimal.NewFromInt(50_000)))
		assert.True(t, exciseAt(2001).Equal(decimal.NewFromInt(100_000)))
	})

	t.Run("excise changes only at band boundaries", func(t *testing.T) {
		assert.True(t, exciseAt(1500).Equal(exciseAt(1001)))
		assert.True(t, exciseAt(1999).Equal(exciseAt(2000)))
	})

	t.Run("displacement outside all bands falls back to the flat default", func(t *testing.T) {
		assert.True(t, exciseAt(6000).Equal(cif.Mul(DefaultExciseDutyRate)))
	})

	t.Run("unknown displacement uses the flat default", func(t *testing.T) {
		result := calc.Calculate(cif, VehicleProfile{})
		assert.True(t, result.ExciseDuty.Equal(cif.Mul(DefaultExciseDutyRate)))
	})
}

func TestCalculatorOldVehicleBoundary(t *testing.T) {
	calc := NewCalculator(testRateTable(t)).WithClock(fixedClock(2026))
	cif := decimal.NewFromInt(1_000_000)

	t.Run("age exactly 8 triggers the surcharge", func(t *testing.T) {
		result := calc.Calculate(cif, VehicleProfile{Year: intPtr(2018)})
		assert.True(t, result.OldVehicleFee.Equal(decimal.NewFromInt(250_000)))
	})

	t.Run("age 7 does not", func(t *testing.T) {
		result := calc.Calculate(cif, VehicleProfile{Year: intPtr(2019)})
		assert.True(t, result.OldVehicleFee.IsZero())
	})

	t.Run("utility vehicles get the reduced rate", func(t *testing.T) {
		result := calc.Calculate(cif, VehicleProfile{Year: intPtr(2010), IsUtility: true})
		assert.True(t, result.OldVehicleFee.Equal(decimal.NewFromInt(50_000)))
	})
}

func TestCalculatorMonotoneInCIF(t *testing.T) {
	calc := NewCalculator(testRateTable(t)).WithClock(fixedClock(2026))
	profile := VehicleProfile{EngineCC: intPtr(2500), Year: intPtr(2012)}

	prev := decimal.Zero
	for _, cif := range []int64{0, 1, 100, 10_000, 1_000_000, 50_000_000, 1_000_000_000} {
		total := calc.Calculate(decimal.NewFromInt(cif), profile).TotalDuties
		assert.True(t, total.GreaterThanOrEqual(prev),
			"total duties must not decrease as CIF grows (CIF=%d)", cif)
		prev = total
	}
}

func TestCalculatorBreakdown(t *testing.T) {
	calc := NewCalculator(testRateTable(t)).WithClock(fixedClock(2026))

	t.Run("surcharge line appears only when charged", func(t *testing.T) {
		young := calc.Calculate(decimal.NewFromInt(1_000_000), VehicleProfile{Year: intPtr(2025)})
		old := calc.Calculate(decimal.NewFromInt(1_000_000), VehicleProfile{Year: intPtr(2010)})

		assert.Len(t, young.Breakdown, 6)
		assert.Len(t, old.Breakdown, 7)
	})

	t.Run("labels carry grouped amounts", func(t *testing.T) {
		result := calc.Calculate(decimal.NewFromInt(10_000_000), VehicleProfile{})
		assert.Equal(t, "CIF value: 10,000,000 TZS", result.Breakdown[0].Label)
	})

	t.Run("rates are rendered as percentages", func(t *testing.T) {
		result := calc.Calculate(decimal.NewFromInt(1_000_000), VehicleProfile{})
		assert.Equal(t, "25%", result.Breakdown[1].Rate)
		assert.Equal(t, "18%", result.Breakdown[3].Rate)
	})

	t.Run("total line matches the computed total", func(t *testing.T) {
		result := calc.Calculate(decimal.NewFromInt(1_000_000), VehicleProfile{EngineCC: intPtr(1800)})
		last := result.Breakdown[len(result.Breakdown)-1]
		assert.True(t, last.Amount.Equal(result.TotalDuties))
	})
}

func TestCalculatorNegativeCIF(t *testing.T) {
	calc := NewCalculator(testRateTable(t))

	result := calc.Calculate(decimal.NewFromInt(-500), VehicleProfile{})

	assert.True(t, result.TotalDuties.IsZero())
}
