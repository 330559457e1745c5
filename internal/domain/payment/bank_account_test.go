package payment

import (
	"testing"

	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBankAccount(t *testing.T) *BankAccount {
	t.Helper()
	a, err := NewBankAccount("Operations TZS", "CRDB Bank", "0150-123456", valueobject.TZS)
	require.NoError(t, err)
	return a
}

func TestNewBankAccount(t *testing.T) {
	tests := []struct {
		name          string
		accountName   string
		accountNumber string
		currency      valueobject.Currency
		wantErr       bool
	}{
		{"valid account", "Operations TZS", "0150-123456", valueobject.TZS, false},
		{"valid foreign currency account", "USD Collections", "0150-654321", valueobject.USD, false},
		{"empty name", "", "0150-123456", valueobject.TZS, true},
		{"empty account number", "Operations", "", valueobject.TZS, true},
		{"invalid currency", "Operations", "0150-123456", valueobject.Currency("X"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewBankAccount(tt.accountName, "CRDB Bank", tt.accountNumber, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, a.Balance.IsZero())
			assert.True(t, a.Active)
		})
	}
}

func TestBankAccountPost(t *testing.T) {
	t.Run("credit increases balance", func(t *testing.T) {
		a := createTestBankAccount(t)

		txn, err := a.Post(DirectionCredit, decimal.NewFromInt(275000), "payment INV-2026-00001")

		require.NoError(t, err)
		assert.True(t, a.Balance.Equal(decimal.NewFromInt(275000)))
		assert.Equal(t, a.ID, txn.BankAccountID)
		assert.Equal(t, DirectionCredit, txn.Direction)
		assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(275000)))
	})

	t.Run("debit decreases balance", func(t *testing.T) {
		a := createTestBankAccount(t)
		_, err := a.Post(DirectionCredit, decimal.NewFromInt(500000), "opening")
		require.NoError(t, err)

		txn, err := a.Post(DirectionDebit, decimal.NewFromInt(200000), "settlement STL-2026-00001")

		require.NoError(t, err)
		assert.True(t, a.Balance.Equal(decimal.NewFromInt(300000)))
		assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(300000)))
	})

	t.Run("debit cannot overdraw", func(t *testing.T) {
		a := createTestBankAccount(t)
		_, err := a.Post(DirectionCredit, decimal.NewFromInt(100), "opening")
		require.NoError(t, err)

		txn, err := a.Post(DirectionDebit, decimal.NewFromInt(150), "overdrawn")

		assert.Error(t, err)
		assert.Nil(t, txn)
		assert.True(t, a.Balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		a := createTestBankAccount(t)

		_, err := a.Post(DirectionCredit, decimal.Zero, "nothing")

		assert.Error(t, err)
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		a := createTestBankAccount(t)

		_, err := a.Post(TransactionDirection("SIDEWAYS"), decimal.NewFromInt(10), "")

		assert.Error(t, err)
	})

	t.Run("rejects posting to inactive account", func(t *testing.T) {
		a := createTestBankAccount(t)
		a.Deactivate()

		_, err := a.Post(DirectionCredit, decimal.NewFromInt(10), "")

		assert.Error(t, err)
	})

	t.Run("ledger records running balance", func(t *testing.T) {
		a := createTestBankAccount(t)

		t1, err := a.Post(DirectionCredit, decimal.NewFromInt(100), "")
		require.NoError(t, err)
		t2, err := a.Post(DirectionCredit, decimal.NewFromInt(50), "")
		require.NoError(t, err)
		t3, err := a.Post(DirectionDebit, decimal.NewFromInt(30), "")
		require.NoError(t, err)

		assert.True(t, t1.BalanceAfter.Equal(decimal.NewFromInt(100)))
		assert.True(t, t2.BalanceAfter.Equal(decimal.NewFromInt(150)))
		assert.True(t, t3.BalanceAfter.Equal(decimal.NewFromInt(120)))
	})
}

func TestBankAccountDeactivate(t *testing.T) {
	a := createTestBankAccount(t)

	a.Deactivate()
	assert.False(t, a.Active)

	// idempotent
	a.Deactivate()
	assert.False(t, a.Active)
}
