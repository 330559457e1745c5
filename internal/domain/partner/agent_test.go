package partner

import (
	"testing"

	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAgent(t *testing.T) *Agent {
	t.Helper()
	a, err := NewAgent("AGT-EU-01", "Hamburg Freight Partners", uuid.New(), valueobject.EUR)
	require.NoError(t, err)
	return a
}

func TestNewAgent(t *testing.T) {
	t.Run("valid agent", func(t *testing.T) {
		a := createTestAgent(t)

		assert.Equal(t, AgentStatusActive, a.Status)
		assert.Equal(t, valueobject.EUR, a.Currency)
		assert.Len(t, a.GetDomainEvents(), 1)
	})

	t.Run("requires a region", func(t *testing.T) {
		_, err := NewAgent("AGT-EU-01", "Hamburg Freight Partners", uuid.Nil, valueobject.EUR)

		assert.Error(t, err)
	})

	t.Run("requires a valid currency", func(t *testing.T) {
		_, err := NewAgent("AGT-EU-01", "Hamburg Freight Partners", uuid.New(), valueobject.Currency("EURO"))

		assert.Error(t, err)
	})
}

func TestAgentBankDetails(t *testing.T) {
	a := createTestAgent(t)

	err := a.SetBankDetails("Commerzbank", "DE89 3704 0044 0532 0130 00")

	require.NoError(t, err)
	assert.Equal(t, "Commerzbank", a.BankName)
}

func TestAgentStatusTransitions(t *testing.T) {
	t.Run("block and reactivate", func(t *testing.T) {
		a := createTestAgent(t)

		require.NoError(t, a.Block())
		assert.Equal(t, AgentStatusBlocked, a.Status)

		require.NoError(t, a.Activate())
		assert.True(t, a.IsActive())
	})

	t.Run("block is not repeatable", func(t *testing.T) {
		a := createTestAgent(t)
		require.NoError(t, a.Block())

		assert.Error(t, a.Block())
	})
}

func TestShipmentLifecycle(t *testing.T) {
	newShipment := func(t *testing.T) *Shipment {
		t.Helper()
		w, err := valueobject.NewWeightFromFloat(20)
		require.NoError(t, err)
		agentID := uuid.New()
		s, err := NewShipment(uuid.New(), uuid.New(), &agentID, w, "household goods")
		require.NoError(t, err)
		return s
	}

	t.Run("advances through the full lifecycle", func(t *testing.T) {
		s := newShipment(t)

		require.NoError(t, s.Advance())
		assert.Equal(t, ShipmentStatusInTransit, s.Status)

		require.NoError(t, s.Advance())
		assert.Equal(t, ShipmentStatusArrived, s.Status)

		require.NoError(t, s.Advance())
		assert.Equal(t, ShipmentStatusDelivered, s.Status)
		assert.NotNil(t, s.DeliveredAt)

		assert.Error(t, s.Advance())
	})

	t.Run("cancel before delivery", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.Advance())

		require.NoError(t, s.Cancel())
		assert.Equal(t, ShipmentStatusCancelled, s.Status)
	})

	t.Run("cannot cancel after delivery", func(t *testing.T) {
		s := newShipment(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.Advance())
		}

		assert.Error(t, s.Cancel())
	})

	t.Run("rejects zero weight", func(t *testing.T) {
		_, err := NewShipment(uuid.New(), uuid.New(), nil, valueobject.ZeroWeight(), "")

		assert.Error(t, err)
	})
}
