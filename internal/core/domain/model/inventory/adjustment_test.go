package inventory_test

import (
	"testing"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdjustmentTransaction(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	loc := kernel.MustNewLocation("A-01")
	ref := inventory.Reference{PlanID: kernel.NewUUID(), EntryID: kernel.NewUUID()}

	t.Run("should keep signed quantity", func(t *testing.T) {
		id := kernel.NewUUID()

		tx, err := inventory.NewAdjustmentTransaction(id, " SKU-1 ", loc, decimal.NewFromInt(-3),
			inventory.ReasonCycleCount, "rev", ref, now)

		require.NoError(t, err)
		assert.True(t, tx.ID().IsEqual(id))
		assert.Equal(t, "SKU-1", tx.ItemID())
		assert.True(t, tx.Quantity().Equal(decimal.NewFromInt(-3)))
		assert.Equal(t, ref, tx.Reference())
		assert.Equal(t, now, tx.CreatedAt())
	})

	t.Run("should allow zero quantity", func(t *testing.T) {
		_, err := inventory.NewAdjustmentTransaction(kernel.NewUUID(), "SKU-1", loc, decimal.Zero,
			inventory.ReasonCycleCount, "rev", ref, now)

		require.NoError(t, err)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		tx, err := inventory.NewAdjustmentTransaction(kernel.UUID{}, "", kernel.Location{}, decimal.Zero,
			"", "", ref, now)

		require.Error(t, err)
		assert.Nil(t, tx)
		assert.Contains(t, err.Error(), "item id")
		assert.Contains(t, err.Error(), "reason")
		assert.Contains(t, err.Error(), "location must be created")
	})
}
