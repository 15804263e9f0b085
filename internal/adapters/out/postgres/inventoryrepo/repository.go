package inventoryrepo

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// filtered starts a query over the inventory table restricted by filter.
func (r *GormInventoryRepository) filtered(ctx context.Context, filter services.StockFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Table("inventory AS s")
	switch {
	case filter.Location != nil:
		q = q.Where("s.location = ?", filter.Location.Code())
	case filter.Zone != "":
		// Same rule as kernel.Location.Zone: the prefix before the first
		// separator, or the whole code when there is none.
		q = q.Where("split_part(s.location, ?, 1) = ?", kernel.ZoneSeparator, filter.Zone)
	}
	return q
}

func (r *GormInventoryRepository) stock(ctx context.Context, filter services.StockFilter) *gorm.DB {
	return r.filtered(ctx, filter).Select("s.item_id, s.location, s.quantity")
}

func scanLevels(q *gorm.DB) ([]inventory.StockLevel, error) {
	var rows []stockRow
	if err := q.Order("s.item_id, s.location").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toStockLevels(rows)
}

func (r *GormInventoryRepository) PositiveStock(
	ctx context.Context,
	filter services.StockFilter,
) ([]inventory.StockLevel, error) {
	return scanLevels(r.stock(ctx, filter).Where("s.quantity > 0"))
}

func (r *GormInventoryRepository) StockInCategory(
	ctx context.Context,
	category string,
	filter services.StockFilter,
) ([]inventory.StockLevel, error) {
	return scanLevels(r.stock(ctx, filter).
		Joins("JOIN items i ON i.id = s.item_id").
		Where("i.abc_category = ? AND s.quantity > 0", category))
}

func (r *GormInventoryRepository) StockForItems(
	ctx context.Context,
	itemIDs []string,
	filter services.StockFilter,
) ([]inventory.StockLevel, error) {
	if len(itemIDs) == 0 {
		return []inventory.StockLevel{}, nil
	}
	return scanLevels(r.stock(ctx, filter).Where("s.item_id IN ?", itemIDs))
}

func (r *GormInventoryRepository) CountEligible(ctx context.Context, filter services.StockFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, filter).Where("s.quantity > 0").Count(&n).Error
	return n, err
}

// SampleEligible draws the sample with ORDER BY random() and returns it in
// item, location order.
func (r *GormInventoryRepository) SampleEligible(
	ctx context.Context,
	filter services.StockFilter,
	n int,
) ([]inventory.StockLevel, error) {
	if n <= 0 {
		return []inventory.StockLevel{}, nil
	}
	sample := r.stock(ctx, filter).Where("s.quantity > 0").Order("random()").Limit(n)
	return scanLevels(r.db.WithContext(ctx).Table("(?) AS s", sample).Select("s.item_id, s.location, s.quantity"))
}

func (r *GormInventoryRepository) ReceivedSince(
	ctx context.Context,
	since time.Time,
	filter services.StockFilter,
) ([]inventory.StockLevel, error) {
	received := r.db.WithContext(ctx).Table("stock_movements").Select("item_id").
		Where("movement_type = ? AND created_at >= ?", inventory.MovementReceiving, since)
	return scanLevels(r.stock(ctx, filter).Where("s.item_id IN (?)", received))
}

func (r *GormInventoryRepository) OnOpenOrders(
	ctx context.Context,
	statuses []string,
	filter services.StockFilter,
) ([]inventory.StockLevel, error) {
	if len(statuses) == 0 {
		return []inventory.StockLevel{}, nil
	}
	ordered := r.db.WithContext(ctx).Table("order_lines ol").Select("ol.item_id").
		Joins("JOIN orders o ON o.id = ol.order_id").
		Where("o.status IN ?", statuses)
	return scanLevels(r.stock(ctx, filter).Where("s.item_id IN (?)", ordered))
}

// GetQuantity reads the stock at (item, location) and reports whether a record exists.
func (r *GormInventoryRepository) GetQuantity(
	ctx context.Context,
	itemID string,
	location kernel.Location,
) (decimal.Decimal, bool, error) {
	var dtos []StockDTO
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND location = ?", itemID, location.Code()).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return decimal.Zero, false, err
	}
	if len(dtos) == 0 {
		return decimal.Zero, false, nil
	}
	return dtos[0].Quantity, true, nil
}

// AdjustUp adds quantity, inserting the stock record when it does not exist.
func (r *GormInventoryRepository) AdjustUp(
	ctx context.Context,
	itemID string,
	location kernel.Location,
	quantity decimal.Decimal,
) error {
	dto := StockDTO{ItemID: itemID, Location: location.Code(), Quantity: quantity, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "location"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("inventory.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&dto).Error
}

// AdjustDown subtracts quantity, never going below zero. A missing record is left absent.
func (r *GormInventoryRepository) AdjustDown(
	ctx context.Context,
	itemID string,
	location kernel.Location,
	quantity decimal.Decimal,
) error {
	return r.db.WithContext(ctx).Model(&StockDTO{}).
		Where("item_id = ? AND location = ?", itemID, location.Code()).
		Updates(map[string]any{
			"quantity":   gorm.Expr("GREATEST(quantity - ?, 0)", quantity),
			"updated_at": time.Now().UTC(),
		}).Error
}

// GormAdjustmentLedger implements ports.AdjustmentLedger using GORM.
type GormAdjustmentLedger struct {
	db *gorm.DB
}

func NewGormAdjustmentLedger(db *gorm.DB) *GormAdjustmentLedger {
	return &GormAdjustmentLedger{db: db}
}

// Append writes one ledger row. Rows are never updated.
func (l *GormAdjustmentLedger) Append(ctx context.Context, tx *inventory.AdjustmentTransaction) error {
	dto := adjustmentFromDomain(tx)
	return l.db.WithContext(ctx).Create(&dto).Error
}
