package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	agent := testActor(t, actor.DeliveryAgent)

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewClaimOrderCommand(orderID, agent)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.Agent().UserID().IsEqual(agent.UserID()))
		assert.Equal(t, actor.DeliveryAgent, cmd.Agent().Role())
	})

	t.Run("should reject empty order ID", func(t *testing.T) {
		_, err := commands.NewClaimOrderCommand(kernel.UUID{}, agent)
		require.Error(t, err)
	})

	t.Run("should reject unconstructed actor", func(t *testing.T) {
		_, err := commands.NewClaimOrderCommand(orderID, actor.Actor{})
		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.ClaimOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
	})
}
