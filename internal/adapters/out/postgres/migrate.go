package postgres

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/auditrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/entryrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/inventoryrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/planrepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/schedulerepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/tolerancerepo"

	"gorm.io/gorm"
)

// Tables lists every table owned or read by the service, in truncation order.
var Tables = []string{
	"cycle_count_entries",
	"cycle_count_plans",
	"cycle_count_schedules",
	"inventory_adjustments",
	"inventory",
	"items",
	"stock_movements",
	"order_lines",
	"orders",
	"tolerance_policies",
	"audit_logs",
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&planrepo.PlanDTO{},
		&entryrepo.EntryDTO{},
		&schedulerepo.ScheduleDTO{},
		&inventoryrepo.StockDTO{},
		&inventoryrepo.ItemDTO{},
		&inventoryrepo.MovementDTO{},
		&inventoryrepo.OrderDTO{},
		&inventoryrepo.OrderLineDTO{},
		&inventoryrepo.AdjustmentDTO{},
		&tolerancerepo.PolicyDTO{},
		&auditrepo.RecordDTO{},
	)
}
