package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCustomer(t *testing.T) *Customer {
	t.Helper()
	c, err := NewCustomer("CUST-001", "Amani Traders Ltd")
	require.NoError(t, err)
	return c
}

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		custName string
		wantErr  bool
	}{
		{"valid customer", "CUST-001", "Amani Traders Ltd", false},
		{"code is uppercased", "cust-002", "Mwangi Imports", false},
		{"empty code", "", "Amani Traders", true},
		{"empty name", "CUST-001", "", true},
		{"code with spaces", "CUST 001", "Amani Traders", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.code, tt.custName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, CustomerStatusActive, c.Status)
			assert.Len(t, c.GetDomainEvents(), 1)
		})
	}

	t.Run("code normalization", func(t *testing.T) {
		c, err := NewCustomer("cust-002", "Mwangi Imports")
		require.NoError(t, err)
		assert.Equal(t, "CUST-002", c.Code)
	})
}

func TestCustomerContact(t *testing.T) {
	t.Run("valid contact", func(t *testing.T) {
		c := createTestCustomer(t)

		err := c.SetContact("Asha Juma", "+255 754 123 456", "asha@amanitraders.co.tz")

		require.NoError(t, err)
		assert.Equal(t, "Asha Juma", c.ContactName)
	})

	t.Run("invalid email", func(t *testing.T) {
		c := createTestCustomer(t)

		err := c.SetContact("Asha Juma", "", "not-an-email")

		assert.Error(t, err)
	})

	t.Run("invalid phone", func(t *testing.T) {
		c := createTestCustomer(t)

		err := c.SetContact("", "call me maybe", "")

		assert.Error(t, err)
	})
}

func TestCustomerStatusTransitions(t *testing.T) {
	t.Run("suspend and reactivate", func(t *testing.T) {
		c := createTestCustomer(t)

		require.NoError(t, c.Suspend())
		assert.Equal(t, CustomerStatusSuspended, c.Status)

		require.NoError(t, c.Activate())
		assert.True(t, c.IsActive())
	})

	t.Run("activate is not idempotent", func(t *testing.T) {
		c := createTestCustomer(t)

		assert.Error(t, c.Activate())
	})

	t.Run("deactivate", func(t *testing.T) {
		c := createTestCustomer(t)

		require.NoError(t, c.Deactivate())
		assert.Error(t, c.Deactivate())
	})
}
