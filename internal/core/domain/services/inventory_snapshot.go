package services

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// StockFilter narrows snapshot queries. A nil Location and an empty Zone mean
// no restriction; when both are set Location wins.
type StockFilter struct {
	Location *kernel.Location
	// Zone keeps stock whose location has this kernel.Location.Zone.
	Zone string
}

// InventorySnapshot is the read side of the inventory store used for entry generation.
// Every method returns stock levels ordered by item and location.
type InventorySnapshot interface {
	// PositiveStock returns every stock level with a quantity above zero.
	PositiveStock(ctx context.Context, filter StockFilter) ([]inventory.StockLevel, error)

	// StockInCategory returns stock levels of items in the given ABC category.
	StockInCategory(ctx context.Context, category string, filter StockFilter) ([]inventory.StockLevel, error)

	// StockForItems returns existing stock levels of the named items.
	StockForItems(ctx context.Context, itemIDs []string, filter StockFilter) ([]inventory.StockLevel, error)

	// CountEligible counts stock levels with a quantity above zero.
	CountEligible(ctx context.Context, filter StockFilter) (int64, error)

	// SampleEligible returns up to n random stock levels with a quantity above zero.
	SampleEligible(ctx context.Context, filter StockFilter, n int) ([]inventory.StockLevel, error)

	// ReceivedSince returns stock levels of items with a receiving movement at or after since.
	ReceivedSince(ctx context.Context, since time.Time, filter StockFilter) ([]inventory.StockLevel, error)

	// OnOpenOrders returns stock levels of items on order lines whose order is in one of statuses.
	OnOpenOrders(ctx context.Context, statuses []string, filter StockFilter) ([]inventory.StockLevel, error)
}
