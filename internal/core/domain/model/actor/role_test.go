package actor_test

import (
	"testing"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Validate(t *testing.T) {
	t.Run("valid roles pass validation", func(t *testing.T) {
		for _, r := range []actor.Role{
			actor.Owner, actor.Admin, actor.Kitchen, actor.Cashier, actor.DeliveryAgent,
		} {
			require.NoError(t, r.Validate(), "role %s should be valid", r)
		}
	})

	t.Run("unknown role fails validation", func(t *testing.T) {
		require.Error(t, actor.RoleUnknown.Validate())
		require.Error(t, actor.Role(99).Validate())
	})
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "Owner", actor.Owner.String())
	assert.Equal(t, "Admin", actor.Admin.String())
	assert.Equal(t, "Kitchen", actor.Kitchen.String())
	assert.Equal(t, "Cashier", actor.Cashier.String())
	assert.Equal(t, "DeliveryAgent", actor.DeliveryAgent.String())
	assert.Equal(t, "Unknown", actor.RoleUnknown.String())
	assert.Equal(t, "Unknown", actor.Role(99).String())
}

func TestRoleFromString(t *testing.T) {
	t.Run("round-trips all valid roles", func(t *testing.T) {
		for _, r := range []actor.Role{
			actor.Owner, actor.Admin, actor.Kitchen, actor.Cashier, actor.DeliveryAgent,
		} {
			parsed, err := actor.RoleFromString(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := actor.RoleFromString("Barista")
		require.Error(t, err)

		_, err = actor.RoleFromString("Unknown")
		require.Error(t, err)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should create valid actor", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := actor.NewActor(id, actor.Kitchen)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.UserID().IsEqual(id))
		assert.Equal(t, actor.Kitchen, a.Role())
	})

	t.Run("should fail with invalid user ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := actor.NewActor(invalidID, actor.Kitchen)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unknown role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("zero value actor fails validation", func(t *testing.T) {
		var a actor.Actor

		require.Error(t, a.Validate())
	})
}

func TestActor_Is(t *testing.T) {
	a, err := actor.NewActor(kernel.NewUUID(), actor.Admin)
	require.NoError(t, err)

	assert.True(t, a.Is(actor.Admin))
	assert.True(t, a.Is(actor.Kitchen, actor.Admin))
	assert.False(t, a.Is(actor.Kitchen, actor.Cashier))
}
