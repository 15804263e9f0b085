package queries

import (
	"context"
	"errors"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanView is the read model of a cycle count plan.
type PlanView struct {
	ID            kernel.UUID
	Name          string
	CountType     string
	Status        string
	ScheduledDate time.Time
	Location      string
	SKUScope      string
	AssignedTo    string
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EntryView is the read model of a count entry. Variance and VariancePercent
// are derived from the stored quantities.
type EntryView struct {
	ID              kernel.UUID
	PlanID          kernel.UUID
	ItemID          string
	Location        string
	SystemQuantity  decimal.Decimal
	CountedQuantity decimal.Decimal
	Variance        decimal.Decimal
	VariancePercent decimal.Decimal
	VarianceStatus  string
	CountedBy       string
	CountedAt       *time.Time
	ReviewedBy      string
	ReviewedAt      *time.Time
	AdjustmentTxID  *kernel.UUID
	Notes           string
}

const planColumns = `
	id, name, count_type, status, scheduled_date, location, sku_scope,
	assigned_to, created_by, notes, created_at, updated_at`

const entryColumns = `
	id, plan_id, item_id, location, system_quantity, counted_quantity,
	variance_status, counted_by, counted_at, reviewed_by, reviewed_at,
	adjustment_transaction_id, notes`

type planRow struct {
	ID            uuid.UUID
	Name          string
	CountType     string
	Status        string
	ScheduledDate time.Time
	Location      *string
	SKUScope      string `gorm:"column:sku_scope"`
	AssignedTo    string
	CreatedBy     string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r planRow) view() (PlanView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return PlanView{}, err
	}

	v := PlanView{
		ID:            id,
		Name:          r.Name,
		CountType:     r.CountType,
		Status:        r.Status,
		ScheduledDate: r.ScheduledDate,
		SKUScope:      r.SKUScope,
		AssignedTo:    r.AssignedTo,
		CreatedBy:     r.CreatedBy,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Location != nil {
		v.Location = *r.Location
	}
	return v, nil
}

type entryRow struct {
	ID                      uuid.UUID
	PlanID                  uuid.UUID
	ItemID                  string
	Location                string
	SystemQuantity          decimal.Decimal
	CountedQuantity         decimal.Decimal
	VarianceStatus          string
	CountedBy               string
	CountedAt               *time.Time
	ReviewedBy              string
	ReviewedAt              *time.Time
	AdjustmentTransactionID *uuid.UUID `gorm:"column:adjustment_transaction_id"`
	Notes                   string
}

// view restores the row through the domain so variance math has one home.
func (r entryRow) view() (EntryView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return EntryView{}, err
	}
	planID, err := kernel.UUIDFromBytes(r.PlanID[:])
	if err != nil {
		return EntryView{}, err
	}
	loc, err := kernel.NewLocation(r.Location)
	if err != nil {
		return EntryView{}, err
	}
	status, err := cyclecount.ParseVarianceStatus(r.VarianceStatus)
	if err != nil {
		return EntryView{}, err
	}
	var txID *kernel.UUID
	if r.AdjustmentTransactionID != nil {
		parsed, txErr := kernel.UUIDFromBytes((*r.AdjustmentTransactionID)[:])
		if txErr != nil {
			return EntryView{}, txErr
		}
		txID = &parsed
	}

	entry, err := cyclecount.RestoreEntry(cyclecount.EntryState{
		ID:              id,
		PlanID:          planID,
		ItemID:          r.ItemID,
		Location:        loc,
		SystemQuantity:  r.SystemQuantity,
		CountedQuantity: r.CountedQuantity,
		Status:          status,
		CountedBy:       r.CountedBy,
		CountedAt:       r.CountedAt,
		ReviewedBy:      r.ReviewedBy,
		ReviewedAt:      r.ReviewedAt,
		AdjustmentTxID:  txID,
		Notes:           r.Notes,
	})
	if err != nil {
		return EntryView{}, err
	}

	return EntryView{
		ID:              id,
		PlanID:          planID,
		ItemID:          r.ItemID,
		Location:        r.Location,
		SystemQuantity:  r.SystemQuantity,
		CountedQuantity: r.CountedQuantity,
		Variance:        entry.Variance(),
		VariancePercent: entry.VariancePercent(),
		VarianceStatus:  r.VarianceStatus,
		CountedBy:       r.CountedBy,
		CountedAt:       r.CountedAt,
		ReviewedBy:      r.ReviewedBy,
		ReviewedAt:      r.ReviewedAt,
		AdjustmentTxID:  txID,
		Notes:           r.Notes,
	}, nil
}

// loadPlan reads one plan and fails with NotFound when it does not exist.
func loadPlan(ctx context.Context, db *gorm.DB, planID kernel.UUID) (PlanView, error) {
	var row planRow
	err := db.WithContext(ctx).
		Table("cycle_count_plans").
		Select(planColumns).
		Where("id = ?", planID.Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PlanView{}, errs.NewObjectNotFoundError("plan", planID)
	}
	if err != nil {
		return PlanView{}, err
	}
	return row.view()
}

// loadEntries reads the entries of a plan ordered by item then location.
// Scopes narrow the selection further.
func loadEntries(ctx context.Context, db *gorm.DB, planID kernel.UUID, where ...func(*gorm.DB) *gorm.DB) ([]EntryView, error) {
	var rows []entryRow
	err := db.WithContext(ctx).
		Table("cycle_count_entries").
		Select(entryColumns).
		Where("plan_id = ?", planID.Bytes()).
		Scopes(where...).
		Order("item_id, location").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]EntryView, 0, len(rows))
	for _, row := range rows {
		v, viewErr := row.view()
		if viewErr != nil {
			return nil, viewErr
		}
		entries = append(entries, v)
	}
	return entries, nil
}

func withVarianceStatus(status cyclecount.VarianceStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("variance_status = ?", status.String())
	}
}
