package payment

import (
	"testing"
	"time"

	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(
		uuid.New(),
		decimal.NewFromInt(110),
		valueobject.USD,
		MethodBankTransfer,
		time.Now(),
		"TXN-2026-0001",
		"CRDB Bank",
		"",
	)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	tests := []struct {
		name      string
		invoiceID uuid.UUID
		amount    decimal.Decimal
		currency  valueobject.Currency
		method    Method
		txnRef    string
		wantErr   bool
	}{
		{
			name:      "valid bank transfer claim",
			invoiceID: uuid.New(),
			amount:    decimal.NewFromInt(110),
			currency:  valueobject.USD,
			method:    MethodBankTransfer,
			txnRef:    "TXN-001",
			wantErr:   false,
		},
		{
			name:      "valid mobile money claim",
			invoiceID: uuid.New(),
			amount:    decimal.NewFromFloat(25000.50),
			currency:  valueobject.TZS,
			method:    MethodMobileMoney,
			txnRef:    "MPESA-XYZ",
			wantErr:   false,
		},
		{
			name:      "empty invoice ID",
			invoiceID: uuid.Nil,
			amount:    decimal.NewFromInt(100),
			currency:  valueobject.TZS,
			method:    MethodCash,
			txnRef:    "REF",
			wantErr:   true,
		},
		{
			name:      "zero amount",
			invoiceID: uuid.New(),
			amount:    decimal.Zero,
			currency:  valueobject.TZS,
			method:    MethodCash,
			txnRef:    "REF",
			wantErr:   true,
		},
		{
			name:      "negative amount",
			invoiceID: uuid.New(),
			amount:    decimal.NewFromInt(-50),
			currency:  valueobject.TZS,
			method:    MethodCash,
			txnRef:    "REF",
			wantErr:   true,
		},
		{
			name:      "invalid method",
			invoiceID: uuid.New(),
			amount:    decimal.NewFromInt(100),
			currency:  valueobject.TZS,
			method:    Method("CRYPTO"),
			txnRef:    "REF",
			wantErr:   true,
		},
		{
			name:      "missing transaction reference",
			invoiceID: uuid.New(),
			amount:    decimal.NewFromInt(100),
			currency:  valueobject.TZS,
			method:    MethodBankTransfer,
			txnRef:    "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPayment(tt.invoiceID, tt.amount, tt.currency, tt.method, time.Now(), tt.txnRef, "", "")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, VerificationStatusPending, p.Status)
			assert.Nil(t, p.BankAccountID)
			assert.Nil(t, p.VerifiedBy)
			assert.Len(t, p.GetDomainEvents(), 1)
		})
	}
}

func TestPaymentVerify(t *testing.T) {
	t.Run("verifies pending claim against bank account", func(t *testing.T) {
		p := createTestPayment(t)
		accountID := uuid.New()
		verifierID := uuid.New()

		err := p.Verify(accountID, verifierID)

		require.NoError(t, err)
		assert.Equal(t, VerificationStatusVerified, p.Status)
		require.NotNil(t, p.BankAccountID)
		assert.Equal(t, accountID, *p.BankAccountID)
		require.NotNil(t, p.VerifiedBy)
		assert.Equal(t, verifierID, *p.VerifiedBy)
		assert.NotNil(t, p.VerifiedAt)
	})

	t.Run("requires a bank account", func(t *testing.T) {
		p := createTestPayment(t)

		err := p.Verify(uuid.Nil, uuid.New())

		assert.Error(t, err)
		assert.Equal(t, VerificationStatusPending, p.Status)
	})

	t.Run("requires a verifier", func(t *testing.T) {
		p := createTestPayment(t)

		err := p.Verify(uuid.New(), uuid.Nil)

		assert.Error(t, err)
		assert.Equal(t, VerificationStatusPending, p.Status)
	})

	t.Run("cannot verify twice", func(t *testing.T) {
		p := createTestPayment(t)
		require.NoError(t, p.Verify(uuid.New(), uuid.New()))

		err := p.Verify(uuid.New(), uuid.New())

		assert.Error(t, err)
	})

	t.Run("cannot verify rejected claim", func(t *testing.T) {
		p := createTestPayment(t)
		require.NoError(t, p.Reject(uuid.New(), "wrong amount"))

		err := p.Verify(uuid.New(), uuid.New())

		assert.Error(t, err)
		assert.Equal(t, VerificationStatusRejected, p.Status)
	})
}

func TestPaymentReject(t *testing.T) {
	t.Run("rejects pending claim with reason", func(t *testing.T) {
		p := createTestPayment(t)
		verifierID := uuid.New()

		err := p.Reject(verifierID, "no matching bank statement entry")

		require.NoError(t, err)
		assert.Equal(t, VerificationStatusRejected, p.Status)
		assert.Equal(t, "no matching bank statement entry", p.RejectionReason)
		require.NotNil(t, p.VerifiedBy)
		assert.Equal(t, verifierID, *p.VerifiedBy)
	})

	t.Run("cannot reject verified claim", func(t *testing.T) {
		p := createTestPayment(t)
		require.NoError(t, p.Verify(uuid.New(), uuid.New()))

		err := p.Reject(uuid.New(), "late")

		assert.Error(t, err)
		assert.Equal(t, VerificationStatusVerified, p.Status)
	})
}

func TestVerificationStatus(t *testing.T) {
	assert.True(t, VerificationStatusPending.IsValid())
	assert.True(t, VerificationStatusVerified.IsValid())
	assert.True(t, VerificationStatusRejected.IsValid())
	assert.False(t, VerificationStatus("UNKNOWN").IsValid())

	assert.False(t, VerificationStatusPending.IsTerminal())
	assert.True(t, VerificationStatusVerified.IsTerminal())
	assert.True(t, VerificationStatusRejected.IsTerminal())
}

func TestPaymentAmountMoney(t *testing.T) {
	p := createTestPayment(t)

	m := p.AmountMoney()

	assert.Equal(t, valueobject.USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(110)))
}
