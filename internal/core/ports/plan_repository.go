// Package ports defines the contracts between the cycle count core and its
// infrastructure: repositories, the inventory store, the adjustment ledger,
// the audit sink and the notification sink.
package ports

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// PlanRepository persists Plan aggregates.
type PlanRepository interface {
	// Add persists a new plan.
	Add(ctx context.Context, plan *cyclecount.Plan) error

	// Update persists status, notes and timestamps of an existing plan.
	Update(ctx context.Context, plan *cyclecount.Plan) error

	// Get returns errs.ObjectNotFoundError when no plan has the given id.
	Get(ctx context.Context, id kernel.UUID) (*cyclecount.Plan, error)
}
