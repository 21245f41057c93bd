package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass validation", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Taken, order.Ready, order.InTransit,
			order.Arrived, order.Delivered, order.Cancelled,
		} {
			require.NoError(t, s.Validate(), "status %s should be valid", s)
		}
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		require.Error(t, order.StatusUnknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Taken", order.Taken.String())
	assert.Equal(t, "Ready", order.Ready.String())
	assert.Equal(t, "InTransit", order.InTransit.String())
	assert.Equal(t, "Arrived", order.Arrived.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.StatusUnknown.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips all valid statuses", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Taken, order.Ready, order.InTransit,
			order.Arrived, order.Delivered, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Preparing")
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Taken.IsTerminal())
	assert.False(t, order.Ready.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
	assert.False(t, order.Arrived.IsTerminal())
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	t.Run("on-premise orders never have an agent", func(t *testing.T) {
		require.NoError(t, order.Ready.ValidateCanHaveAgent(false, order.TypeOnPremise))
		require.NoError(t, order.Delivered.ValidateCanHaveAgent(false, order.TypeOnPremise))
		require.Error(t, order.Delivered.ValidateCanHaveAgent(true, order.TypeOnPremise))
	})

	t.Run("delivery orders require an agent once in transit", func(t *testing.T) {
		for _, s := range []order.Status{order.InTransit, order.Arrived, order.Delivered} {
			require.NoError(t, s.ValidateCanHaveAgent(true, order.TypeDelivery), "status %s", s)
			require.Error(t, s.ValidateCanHaveAgent(false, order.TypeDelivery), "status %s", s)
		}
	})

	t.Run("delivery orders must not have an agent before claim", func(t *testing.T) {
		for _, s := range []order.Status{order.Taken, order.Ready, order.Cancelled} {
			require.NoError(t, s.ValidateCanHaveAgent(false, order.TypeDelivery), "status %s", s)
			require.Error(t, s.ValidateCanHaveAgent(true, order.TypeDelivery), "status %s", s)
		}
	})
}
