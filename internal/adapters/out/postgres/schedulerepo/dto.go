// Package schedulerepo reads recurring plan templates from the
// cycle_count_schedules table.
package schedulerepo

import (
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ScheduleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"size:200;not null"`
	CronSpec   string    `gorm:"size:100;not null"`
	PlanName   string    `gorm:"size:200"`
	CountType  string    `gorm:"size:20;not null"`
	Location   *string   `gorm:"size:64"`
	SKUScope   string    `gorm:"column:sku_scope;type:text"`
	AssignedTo string    `gorm:"size:64"`
	CreatedBy  string    `gorm:"size:64"`
	Notes      string    `gorm:"type:text"`
	Active     bool      `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ScheduleDTO) TableName() string {
	return "cycle_count_schedules"
}

// FromDomain maps a schedule to its row.
func FromDomain(s cyclecount.RecurringSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:         s.ID.Bytes(),
		Name:       s.Name,
		CronSpec:   s.CronSpec,
		PlanName:   s.Template.Name,
		CountType:  s.Template.CountType.String(),
		SKUScope:   s.Template.SKUScope,
		AssignedTo: s.Template.AssignedTo,
		CreatedBy:  s.Template.CreatedBy,
		Notes:      s.Template.Notes,
		Active:     s.Active,
	}
	if s.Template.Location != nil {
		code := s.Template.Location.Code()
		dto.Location = &code
	}
	return dto
}

func toDomain(dto ScheduleDTO) (cyclecount.RecurringSchedule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return cyclecount.RecurringSchedule{}, err
	}
	countType, err := cyclecount.ParseCountType(dto.CountType)
	if err != nil {
		return cyclecount.RecurringSchedule{}, err
	}

	template := cyclecount.PlanDetails{
		Name:       dto.PlanName,
		CountType:  countType,
		SKUScope:   dto.SKUScope,
		AssignedTo: dto.AssignedTo,
		CreatedBy:  dto.CreatedBy,
		Notes:      dto.Notes,
	}
	if dto.Location != nil {
		loc, locErr := kernel.NewLocation(*dto.Location)
		if locErr != nil {
			return cyclecount.RecurringSchedule{}, locErr
		}
		template.Location = &loc
	}

	schedule := cyclecount.RecurringSchedule{
		ID:       id,
		Name:     dto.Name,
		CronSpec: dto.CronSpec,
		Template: template,
		Active:   dto.Active,
	}
	return schedule, schedule.Validate()
}
