// Package inventoryrepo is the inventory store: stock records, the item
// master, stock movements and order lines read for entry generation, and the
// adjustment ledger.
package inventoryrepo

import (
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockDTO is the quantity of an item at a bin.
type StockDTO struct {
	ItemID    string          `gorm:"primaryKey;size:64"`
	Location  string          `gorm:"primaryKey;size:64"`
	Quantity  decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	UpdatedAt time.Time
}

func (StockDTO) TableName() string {
	return "inventory"
}

// ItemDTO is the part of the item master used here.
type ItemDTO struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:200"`
	ABCCategory string `gorm:"column:abc_category;size:1;index"`
}

func (ItemDTO) TableName() string {
	return "items"
}

// MovementDTO is a stock movement written by receiving, picking and putaway.
type MovementDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID       string          `gorm:"size:64;not null;index"`
	Location     string          `gorm:"size:64;not null"`
	MovementType string          `gorm:"size:20;not null;index"`
	Quantity     decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CreatedAt    time.Time       `gorm:"index"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

// OrderDTO is the status header of an outbound order.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status string    `gorm:"size:20;not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one pick line of an order.
type OrderLineDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID   string          `gorm:"size:64;not null"`
	Location string          `gorm:"size:64;not null"`
	Quantity decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// AdjustmentDTO is an append-only ledger row.
type AdjustmentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID    string          `gorm:"size:64;not null"`
	Location  string          `gorm:"size:64;not null"`
	Quantity  decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Reason    string          `gorm:"size:32;not null"`
	Actor     string          `gorm:"size:64;not null"`
	PlanID    uuid.UUID       `gorm:"type:uuid;index"`
	EntryID   uuid.UUID       `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (AdjustmentDTO) TableName() string {
	return "inventory_adjustments"
}

func adjustmentFromDomain(tx *inventory.AdjustmentTransaction) AdjustmentDTO {
	ref := tx.Reference()
	return AdjustmentDTO{
		ID:        tx.ID().Bytes(),
		ItemID:    tx.ItemID(),
		Location:  tx.Location().Code(),
		Quantity:  tx.Quantity(),
		Reason:    tx.Reason(),
		Actor:     tx.Actor(),
		PlanID:    ref.PlanID.Bytes(),
		EntryID:   ref.EntryID.Bytes(),
		CreatedAt: tx.CreatedAt(),
	}
}

// stockRow is the projection returned by snapshot queries.
type stockRow struct {
	ItemID   string
	Location string
	Quantity decimal.Decimal
}

func toStockLevels(rows []stockRow) ([]inventory.StockLevel, error) {
	levels := make([]inventory.StockLevel, 0, len(rows))
	for _, row := range rows {
		loc, err := kernel.NewLocation(row.Location)
		if err != nil {
			return nil, err
		}
		levels = append(levels, inventory.StockLevel{ItemID: row.ItemID, Location: loc, Quantity: row.Quantity})
	}
	return levels, nil
}
