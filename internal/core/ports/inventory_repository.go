package ports

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// InventoryRepository is the inventory store. AdjustUp and AdjustDown are the
// only write paths and are only called while recording an adjustment transaction.
type InventoryRepository interface {
	services.InventorySnapshot

	// GetQuantity returns the quantity at (item, location) and whether a stock
	// record exists.
	GetQuantity(ctx context.Context, itemID string, location kernel.Location) (decimal.Decimal, bool, error)

	// AdjustUp adds quantity, creating the stock record when absent.
	AdjustUp(ctx context.Context, itemID string, location kernel.Location, quantity decimal.Decimal) error

	// AdjustDown removes quantity, clamping the result at zero.
	AdjustDown(ctx context.Context, itemID string, location kernel.Location, quantity decimal.Decimal) error
}

// AdjustmentLedger is the append-only record of stock corrections.
type AdjustmentLedger interface {
	Append(ctx context.Context, tx *inventory.AdjustmentTransaction) error
}
