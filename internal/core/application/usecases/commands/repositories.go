// Package commands contains the cycle count operations that modify state.
// Every handler validates its command, opens one unit of work, commits it,
// and re-reads what it returns after the commit.
package commands

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	PlanRepoFactory interface {
		PlanRepository() ports.PlanRepository
	}

	EntryRepoFactory interface {
		EntryRepository() ports.EntryRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	LedgerFactory interface {
		AdjustmentLedger() ports.AdjustmentLedger
	}

	ToleranceRepoFactory interface {
		TolerancePolicyRepository() ports.TolerancePolicyRepository
	}

	AuditLogFactory interface {
		AuditLog() ports.AuditLog
	}

	// PlanUoW covers lifecycle changes that only touch the plan row.
	PlanUoW interface {
		TxManager
		PlanRepoFactory
		AuditLogFactory
	}

	// PlanUoWFactory creates plan-only units of work.
	PlanUoWFactory interface {
		Create() PlanUoW
	}

	// UoW covers operations that generate or review entries and may adjust stock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   entry, err := uow.EntryRepository().Get(ctx, id)
	//   // ... review, adjust, audit
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		PlanRepoFactory
		EntryRepoFactory
		InventoryRepoFactory
		LedgerFactory
		ToleranceRepoFactory
		AuditLogFactory
	}

	// UoWFactory creates full units of work.
	UoWFactory interface {
		Create() UoW
	}
)
