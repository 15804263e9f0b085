package cyclecount_test

import (
	"testing"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, system string) *cyclecount.Entry {
	t.Helper()
	e, err := cyclecount.NewEntry(kernel.NewUUID(), kernel.NewUUID(), "SKU-1",
		kernel.MustNewLocation("A-01-01"), decimal.RequireFromString(system), testNow)
	require.NoError(t, err)
	return e
}

func TestNewEntry(t *testing.T) {
	t.Run("should start pending with negated system variance", func(t *testing.T) {
		e := newEntry(t, "10")

		require.NoError(t, e.Validate())
		assert.Equal(t, cyclecount.Pending, e.Status())
		assert.True(t, e.CountedQuantity().IsZero())
		assert.True(t, e.Variance().Equal(decimal.NewFromInt(-10)))
		assert.True(t, e.VariancePercent().Equal(decimal.NewFromInt(100)))
		assert.False(t, e.IsCounted())
		assert.Nil(t, e.AdjustmentTxID())
	})

	t.Run("should reject bad input", func(t *testing.T) {
		e, err := cyclecount.NewEntry(kernel.UUID{}, kernel.NewUUID(), " ", kernel.Location{},
			decimal.NewFromInt(-1), testNow)

		require.Error(t, err)
		assert.Nil(t, e)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "item id")
		assert.Contains(t, err.Error(), "location must be created")
		assert.Contains(t, err.Error(), "system quantity")
	})
}

func TestEntry_VarianceMath(t *testing.T) {
	tests := []struct {
		name        string
		system      string
		counted     string
		wantVar     string
		wantPercent string
	}{
		{"over count", "10", "12", "2", "20"},
		{"fractional over count", "10", "10.3", "0.3", "3"},
		{"under count", "8", "6", "-2", "25"},
		{"exact", "5", "5", "0", "0"},
		{"no system stock", "0", "4", "4", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntry(t, tt.system)

			require.NoError(t, e.RecordCount(decimal.RequireFromString(tt.system),
				decimal.RequireFromString(tt.counted), "counter-1", testNow))

			assert.Truef(t, e.Variance().Equal(decimal.RequireFromString(tt.wantVar)),
				"variance %s", e.Variance())
			assert.Truef(t, e.VariancePercent().Equal(decimal.RequireFromString(tt.wantPercent)),
				"percent %s", e.VariancePercent())
			assert.True(t, e.IsCounted())
			assert.Equal(t, "counter-1", e.CountedBy())
		})
	}
}

func TestEntry_RecordCount(t *testing.T) {
	t.Run("should reject negative count", func(t *testing.T) {
		e := newEntry(t, "10")

		err := e.RecordCount(decimal.NewFromInt(10), decimal.NewFromInt(-1), "c", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, e.IsCounted())
	})

	t.Run("should reject count on reviewed entry", func(t *testing.T) {
		e := newEntry(t, "10")
		require.NoError(t, e.AutoAdjust(kernel.NewUUID(), testNow))

		err := e.RecordCount(decimal.NewFromInt(10), decimal.NewFromInt(10), "c", testNow)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestEntry_Review(t *testing.T) {
	t.Run("should auto adjust with reference", func(t *testing.T) {
		e := newEntry(t, "10")
		tx := kernel.NewUUID()

		require.NoError(t, e.AutoAdjust(tx, testNow))

		assert.Equal(t, cyclecount.AutoAdjusted, e.Status())
		require.NotNil(t, e.AdjustmentTxID())
		assert.True(t, e.AdjustmentTxID().IsEqual(tx))
	})

	t.Run("should require reference when approving nonzero variance", func(t *testing.T) {
		e := newEntry(t, "10")

		err := e.Approve("rev", "", nil, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, cyclecount.Pending, e.Status())
	})

	t.Run("should approve zero variance without reference", func(t *testing.T) {
		e := newEntry(t, "10")
		require.NoError(t, e.RecordCount(decimal.NewFromInt(10), decimal.NewFromInt(10), "c", testNow))

		require.NoError(t, e.Approve("rev", "matches", nil, testNow))

		assert.Equal(t, cyclecount.Approved, e.Status())
		assert.Nil(t, e.AdjustmentTxID())
		assert.Equal(t, "rev", e.ReviewedBy())
		assert.Equal(t, "matches", e.Notes())
		require.NotNil(t, e.ReviewedAt())
	})

	t.Run("should refuse reference on zero variance approval", func(t *testing.T) {
		e := newEntry(t, "0")
		tx := kernel.NewUUID()

		require.ErrorIs(t, e.Approve("rev", "", &tx, testNow), errs.ErrValueIsInvalid)
	})

	t.Run("should keep rejected entries terminal", func(t *testing.T) {
		e := newEntry(t, "10")
		require.NoError(t, e.Reject("rev", "recount", testNow))
		tx := kernel.NewUUID()

		err := e.Approve("rev", "", &tx, testNow)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, cyclecount.Rejected, e.Status())
		assert.Nil(t, e.AdjustmentTxID())
	})
}

func TestRestoreEntry(t *testing.T) {
	base := cyclecount.EntryState{
		ID:              kernel.NewUUID(),
		PlanID:          kernel.NewUUID(),
		ItemID:          "SKU-1",
		Location:        kernel.MustNewLocation("A-01"),
		SystemQuantity:  decimal.NewFromInt(10),
		CountedQuantity: decimal.NewFromInt(12),
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}

	t.Run("should reject auto adjusted entry without reference", func(t *testing.T) {
		state := base
		state.Status = cyclecount.AutoAdjusted

		_, err := cyclecount.RestoreEntry(state)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject pending entry with reference", func(t *testing.T) {
		state := base
		state.Status = cyclecount.Pending
		tx := kernel.NewUUID()
		state.AdjustmentTxID = &tx

		_, err := cyclecount.RestoreEntry(state)

		require.Error(t, err)
	})

	t.Run("should restore approved entry with reference", func(t *testing.T) {
		state := base
		state.Status = cyclecount.Approved
		tx := kernel.NewUUID()
		state.AdjustmentTxID = &tx

		e, err := cyclecount.RestoreEntry(state)

		require.NoError(t, err)
		assert.Equal(t, state, e.State())
	})
}
