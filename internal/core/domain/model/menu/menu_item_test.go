package menu_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuItem(t *testing.T) {
	t.Run("creates_valid_menu_item", func(t *testing.T) {
		id := kernel.NewUUID()
		restaurantID := kernel.NewUUID()

		item, err := menu.NewMenuItem(id, restaurantID, "Burger", "Beef burger", 10.00, true)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, id.IsEqual(item.ID()))
		assert.True(t, restaurantID.IsEqual(item.RestaurantID()))
		assert.Equal(t, "Burger", item.Name())
		assert.Equal(t, "Beef burger", item.Description())
		assert.InDelta(t, 10.00, item.Price(), 0.0001)
		assert.True(t, item.IsAvailable())
	})

	t.Run("allows_zero_price", func(t *testing.T) {
		_, err := menu.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), "Water", "", 0, true)

		require.NoError(t, err)
	})

	t.Run("rejects_negative_price", func(t *testing.T) {
		_, err := menu.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), "Burger", "", -1.50, true)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := menu.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), "", "", 5, true)

		require.Error(t, err)
		require.ErrorIs(t, err, menu.ErrNameIsRequired)
	})

	t.Run("rejects_missing_restaurant", func(t *testing.T) {
		var restaurantID kernel.UUID

		_, err := menu.NewMenuItem(kernel.NewUUID(), restaurantID, "Burger", "", 5, true)

		require.Error(t, err)
	})
}

func TestMenuItem_Edit(t *testing.T) {
	t.Run("updates_mutable_fields", func(t *testing.T) {
		item, err := menu.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), "Burger", "Beef", 10.00, true)
		require.NoError(t, err)

		err = item.Edit("Cheeseburger", "Beef and cheese", 12.50, false)

		require.NoError(t, err)
		assert.Equal(t, "Cheeseburger", item.Name())
		assert.Equal(t, "Beef and cheese", item.Description())
		assert.InDelta(t, 12.50, item.Price(), 0.0001)
		assert.False(t, item.IsAvailable())
	})

	t.Run("rejects_invalid_edit", func(t *testing.T) {
		item, err := menu.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), "Burger", "Beef", 10.00, true)
		require.NoError(t, err)

		err = item.Edit("", "desc", -5, true)

		require.Error(t, err)
		// failed edits must not corrupt price
		assert.Equal(t, "Burger", item.Name())
	})
}

func TestMenuItem_BelongsTo(t *testing.T) {
	restaurantID := kernel.NewUUID()
	item, err := menu.NewMenuItem(kernel.NewUUID(), restaurantID, "Burger", "", 10.00, true)
	require.NoError(t, err)

	assert.True(t, item.BelongsTo(restaurantID))
	assert.False(t, item.BelongsTo(kernel.NewUUID()))
}
