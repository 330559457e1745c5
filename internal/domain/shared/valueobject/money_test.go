package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)
	assert.Equal(t, USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyTZSFromFloat(1500.50)
	b := NewMoneyTZSFromFloat(499.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(2000)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(1001)))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	a := NewMoneyTZSFromFloat(100)
	b, _ := NewMoneyFromFloat(100, USD)

	_, err := a.Add(b)
	assert.Error(t, err)
	_, err = a.Subtract(b)
	assert.Error(t, err)
	_, err = a.LessThan(b)
	assert.Error(t, err)
}

func TestMoney_Convert(t *testing.T) {
	usd, _ := NewMoneyFromFloat(110, USD)

	// 1 USD = 2500 TZS, the payment verification fixture rate
	tzs, err := usd.Convert(TZS, decimal.NewFromInt(2500))
	require.NoError(t, err)
	assert.Equal(t, TZS, tzs.Currency())
	assert.True(t, tzs.Amount().Equal(decimal.NewFromInt(275000)))

	_, err = usd.Convert(TZS, decimal.Zero)
	assert.Error(t, err)

	// Same-currency conversion is the identity
	same, err := usd.Convert(USD, decimal.NewFromInt(2500))
	require.NoError(t, err)
	assert.True(t, same.Equals(usd))
}

func TestMoney_IsHomeCurrency(t *testing.T) {
	assert.True(t, NewMoneyTZSFromFloat(1).IsHomeCurrency())
	usd, _ := NewMoneyFromFloat(1, USD)
	assert.False(t, usd.IsHomeCurrency())
}

func TestMoney_Rounding(t *testing.T) {
	m := NewMoneyTZSFromFloat(10.005)
	assert.Equal(t, "10.01", m.Round(2).StringFixed(2))
	assert.Equal(t, "10.00", m.RoundBank(2).StringFixed(2))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m, _ := NewMoneyFromString("123.45", EUR)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equals(m))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("250.75"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(250.75)))
	assert.Equal(t, HomeCurrency, m.Currency())

	assert.Error(t, m.Scan(42))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m := NewMoneyTZSFromFloat(1000)
	vat := m.CalculatePercentage(decimal.NewFromInt(18))
	assert.True(t, vat.Amount().Equal(decimal.NewFromInt(180)))
}
