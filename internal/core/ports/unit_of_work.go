package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction; before Begin they run without one.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	PlanRepository() PlanRepository
	EntryRepository() EntryRepository
	InventoryRepository() InventoryRepository
	AdjustmentLedger() AdjustmentLedger
	TolerancePolicyRepository() TolerancePolicyRepository
	AuditLog() AuditLog
}
