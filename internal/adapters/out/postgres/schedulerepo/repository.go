package schedulerepo

import (
	"context"
	"fmt"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"

	"gorm.io/gorm"
)

// GormScheduleRepository implements ports.RecurringScheduleRepository using GORM.
type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// ListActive returns active schedules ordered by name.
func (r *GormScheduleRepository) ListActive(ctx context.Context) ([]cyclecount.RecurringSchedule, error) {
	var dtos []ScheduleDTO
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	schedules := make([]cyclecount.RecurringSchedule, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", dto.ID, err)
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}
