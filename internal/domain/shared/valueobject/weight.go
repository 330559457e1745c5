package valueobject

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Weight is a value object representing cargo weight in kilograms.
// It is immutable - all operations return new Weight instances.
type Weight struct {
	kilograms decimal.Decimal
}

// NewWeight creates a Weight from a decimal kilogram value.
// Negative weights are rejected.
func NewWeight(kilograms decimal.Decimal) (Weight, error) {
	if kilograms.IsNegative() {
		return Weight{}, fmt.Errorf("weight cannot be negative, got %s", kilograms)
	}
	return Weight{kilograms: kilograms}, nil
}

// NewWeightFromFloat creates a Weight from a float64 kilogram value
func NewWeightFromFloat(kilograms float64) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(kilograms))
}

// ZeroWeight returns a zero-value Weight
func ZeroWeight() Weight {
	return Weight{kilograms: decimal.Zero}
}

// Kilograms returns the weight in kilograms
func (w Weight) Kilograms() decimal.Decimal {
	return w.kilograms
}

// IsZero returns true if the weight is zero
func (w Weight) IsZero() bool {
	return w.kilograms.IsZero()
}

// Add returns the sum of two weights
func (w Weight) Add(other Weight) Weight {
	return Weight{kilograms: w.kilograms.Add(other.kilograms)}
}

// Cost returns the shipping cost of the weight at the given per-kilogram rate
func (w Weight) Cost(ratePerKg Money) Money {
	return ratePerKg.Multiply(w.kilograms)
}

// Equals returns true if both weights are equal
func (w Weight) Equals(other Weight) bool {
	return w.kilograms.Equal(other.kilograms)
}

// String returns the weight formatted with two decimal places
func (w Weight) String() string {
	return fmt.Sprintf("%s kg", w.kilograms.StringFixed(2))
}

// Value implements driver.Valuer for database storage
func (w Weight) Value() (driver.Value, error) {
	return w.kilograms.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (w *Weight) Scan(value any) error {
	if value == nil {
		w.kilograms = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Weight", value)
	}

	kg, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	w.kilograms = kg
	return nil
}
