package planrepo

import (
	"context"
	"errors"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPlanRepository implements ports.PlanRepository using GORM.
type GormPlanRepository struct {
	db *gorm.DB
}

func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Add inserts a new plan.
func (r *GormPlanRepository) Add(ctx context.Context, plan *cyclecount.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	dto := fromDomain(plan)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the mutable columns of an existing plan.
func (r *GormPlanRepository) Update(ctx context.Context, plan *cyclecount.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	dto := fromDomain(plan)
	result := r.db.WithContext(ctx).Model(&PlanDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":      dto.Status,
		"notes":       dto.Notes,
		"assigned_to": dto.AssignedTo,
		"updated_at":  dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("plan", plan.ID().String())
	}

	return nil
}

// Get retrieves a plan by ID.
func (r *GormPlanRepository) Get(ctx context.Context, id kernel.UUID) (*cyclecount.Plan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PlanDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("plan", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
