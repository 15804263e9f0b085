// Package entryrepo persists count entries in the cycle_count_entries table.
package entryrepo

import (
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO is the row layout of a count entry. Variance is not stored; it is
// always derived from the two quantities.
type EntryDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlanID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_entries_plan_item_location,priority:1"`
	ItemID          string          `gorm:"size:64;not null;index:idx_entries_plan_item_location,priority:2"`
	Location        string          `gorm:"size:64;not null;index:idx_entries_plan_item_location,priority:3"`
	SystemQuantity  decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	CountedQuantity decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	VarianceStatus  string          `gorm:"size:20;not null;index"`
	CountedBy       string          `gorm:"size:64"`
	CountedAt       *time.Time
	ReviewedBy      string `gorm:"size:64"`
	ReviewedAt      *time.Time
	AdjustmentTxID  *uuid.UUID `gorm:"column:adjustment_transaction_id;type:uuid"`
	Notes           string     `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (EntryDTO) TableName() string {
	return "cycle_count_entries"
}

func fromDomain(entry *cyclecount.Entry) EntryDTO {
	state := entry.State()

	var txID *uuid.UUID
	if state.AdjustmentTxID != nil {
		raw := state.AdjustmentTxID.Bytes()
		txID = &raw
	}

	return EntryDTO{
		ID:              state.ID.Bytes(),
		PlanID:          state.PlanID.Bytes(),
		ItemID:          state.ItemID,
		Location:        state.Location.Code(),
		SystemQuantity:  state.SystemQuantity,
		CountedQuantity: state.CountedQuantity,
		VarianceStatus:  state.Status.String(),
		CountedBy:       state.CountedBy,
		CountedAt:       state.CountedAt,
		ReviewedBy:      state.ReviewedBy,
		ReviewedAt:      state.ReviewedAt,
		AdjustmentTxID:  txID,
		Notes:           state.Notes,
		CreatedAt:       state.CreatedAt,
		UpdatedAt:       state.UpdatedAt,
	}
}

func toDomain(dto EntryDTO) (*cyclecount.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	planID, err := kernel.UUIDFromBytes(dto.PlanID[:])
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Location)
	if err != nil {
		return nil, err
	}
	status, err := cyclecount.ParseVarianceStatus(dto.VarianceStatus)
	if err != nil {
		return nil, err
	}

	var txID *kernel.UUID
	if dto.AdjustmentTxID != nil {
		parsed, txErr := kernel.UUIDFromBytes((*dto.AdjustmentTxID)[:])
		if txErr != nil {
			return nil, txErr
		}
		txID = &parsed
	}

	return cyclecount.RestoreEntry(cyclecount.EntryState{
		ID:              id,
		PlanID:          planID,
		ItemID:          dto.ItemID,
		Location:        loc,
		SystemQuantity:  dto.SystemQuantity,
		CountedQuantity: dto.CountedQuantity,
		Status:          status,
		CountedBy:       dto.CountedBy,
		CountedAt:       dto.CountedAt,
		ReviewedBy:      dto.ReviewedBy,
		ReviewedAt:      dto.ReviewedAt,
		AdjustmentTxID:  txID,
		Notes:           dto.Notes,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}

func toDomainList(dtos []EntryDTO) ([]*cyclecount.Entry, error) {
	entries := make([]*cyclecount.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
