// Package postgres provides the GORM-based Unit of Work and schema migration.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it after Begin share that transaction; before Begin they use the plain
// connection.
//
//	uow := NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.PlanRepository().Update(ctx, plan); err != nil {
//	    return err
//	}
//	if err := uow.EntryRepository().Add(ctx, entries...); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each command must use its own instance; a GormUnitOfWork is not safe for
// concurrent use.
package postgres

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/auditrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/entryrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/inventoryrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/planrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/tolerancerepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is
// active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is active,
// which is the normal outcome of the deferred rollback after a commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) PlanRepository() ports.PlanRepository {
	return planrepo.NewGormPlanRepository(uow.conn())
}

func (uow *GormUnitOfWork) EntryRepository() ports.EntryRepository {
	return entryrepo.NewGormEntryRepository(uow.conn())
}

func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) AdjustmentLedger() ports.AdjustmentLedger {
	return inventoryrepo.NewGormAdjustmentLedger(uow.conn())
}

func (uow *GormUnitOfWork) TolerancePolicyRepository() ports.TolerancePolicyRepository {
	return tolerancerepo.NewGormTolerancePolicyRepository(uow.conn())
}

func (uow *GormUnitOfWork) AuditLog() ports.AuditLog {
	return auditrepo.NewGormAuditLog(uow.conn())
}
