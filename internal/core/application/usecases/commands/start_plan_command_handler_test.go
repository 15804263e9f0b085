package commands_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPlan(t *testing.T, store *memStore, planID kernel.UUID, logger *slog.Logger) (commands.StartPlanResult, error) {
	t.Helper()
	cmd, err := commands.NewStartPlanCommand(planID, "counter-1")
	require.NoError(t, err)
	return commands.NewStartPlanCommandHandler(store, fixedClock, logger).Handle(t.Context(), cmd)
}

func TestStartPlanCommandHandler_Handle(t *testing.T) {
	t.Run("should generate blanket entries for the plan location", func(t *testing.T) {
		store := newMemStore()
		store.setStock("SKU-2", "A-01", "4")
		store.setStock("SKU-1", "A-01", "10")
		store.setStock("SKU-3", "A-01", "0")
		store.setStock("SKU-1", "B-01", "7")
		plan := mustPlan(kernel.NewUUID(), cyclecount.Blanket, cyclecount.Scheduled, "A-01")
		store.addPlan(plan)

		result, err := startPlan(t, store, plan.ID(), nil)

		require.NoError(t, err)
		assert.Equal(t, cyclecount.InProgress, result.Plan.Status())
		assert.Equal(t, 2, result.GeneratedEntries)
		entries := store.entriesOf(plan.ID())
		require.Len(t, entries, 2)
		assert.Equal(t, "SKU-1", entries[0].ItemID())
		assert.True(t, entries[0].Variance().Equal(entries[0].SystemQuantity().Neg()))
		assert.Equal(t, cyclecount.Pending, entries[1].Status())
		require.Len(t, store.state.audit, 1)
		assert.Equal(t, audit.ActionPlanStarted, store.state.audit[0].Action)
		assert.Contains(t, string(store.state.audit[0].After), `"generatedEntries":2`)
	})

	t.Run("should start blanket plan without location with zero entries", func(t *testing.T) {
		store := newMemStore()
		store.setStock("SKU-1", "A-01", "10")
		plan := mustPlan(kernel.NewUUID(), cyclecount.Blanket, cyclecount.Scheduled, "")
		store.addPlan(plan)
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		result, err := startPlan(t, store, plan.ID(), logger)

		require.NoError(t, err)
		assert.Equal(t, cyclecount.InProgress, result.Plan.Status())
		assert.Zero(t, result.GeneratedEntries)
		assert.Empty(t, store.entriesOf(plan.ID()))
		assert.Contains(t, logs.String(), "plan started without entries")
	})

	t.Run("should refuse to start twice", func(t *testing.T) {
		store := newMemStore()
		plan := mustPlan(kernel.NewUUID(), cyclecount.Blanket, cyclecount.InProgress, "A-01")
		store.addPlan(plan)

		_, err := startPlan(t, store, plan.ID(), nil)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should fail with not found for unknown plan", func(t *testing.T) {
		_, err := startPlan(t, newMemStore(), kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should roll back status and entries together", func(t *testing.T) {
		store := newMemStore()
		store.setStock("SKU-1", "A-01", "10")
		plan := mustPlan(kernel.NewUUID(), cyclecount.Blanket, cyclecount.Scheduled, "A-01")
		store.addPlan(plan)
		store.failOn = "AuditLog.Append"

		_, err := startPlan(t, store, plan.ID(), nil)

		require.ErrorIs(t, err, errInjected)
		assert.Equal(t, cyclecount.Scheduled, store.state.plans[plan.ID()].Status())
		assert.Empty(t, store.entriesOf(plan.ID()))
		assert.Zero(t, store.commits)
	})
}
