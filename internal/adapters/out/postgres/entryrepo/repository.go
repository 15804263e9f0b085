package entryrepo

import (
	"context"
	"errors"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"gorm.io/gorm"
)

const insertBatchSize = 200

// GormEntryRepository implements ports.EntryRepository using GORM.
type GormEntryRepository struct {
	db *gorm.DB
}

func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// Add inserts entries in batches.
func (r *GormEntryRepository) Add(ctx context.Context, entries ...*cyclecount.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	return r.db.WithContext(ctx).CreateInBatches(&dtos, insertBatchSize).Error
}

// Update writes the full state of an existing entry.
func (r *GormEntryRepository) Update(ctx context.Context, entry *cyclecount.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "plan_id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("entry", entry.ID().String())
	}

	return nil
}

// Get retrieves an entry by ID.
func (r *GormEntryRepository) Get(ctx context.Context, id kernel.UUID) (*cyclecount.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("entry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPendingByPlan returns the PENDING entries of a plan ordered by item then location.
func (r *GormEntryRepository) ListPendingByPlan(ctx context.Context, planID kernel.UUID) ([]*cyclecount.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("plan_id = ? AND variance_status = ?", planID.Bytes(), cyclecount.Pending.String()).
		Order("item_id, location").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// FindUncounted returns the generated entry for (item, location) that has
// not been counted yet, or nil.
func (r *GormEntryRepository) FindUncounted(
	ctx context.Context,
	planID kernel.UUID,
	itemID string,
	location kernel.Location,
) (*cyclecount.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("plan_id = ? AND item_id = ? AND location = ?", planID.Bytes(), itemID, location.Code()).
		Where("variance_status = ? AND counted_at IS NULL", cyclecount.Pending.String()).
		Order("created_at").
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, nil
	}
	return toDomain(dtos[0])
}
