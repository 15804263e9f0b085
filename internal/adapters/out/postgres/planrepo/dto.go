// Package planrepo persists cycle count plans in the cycle_count_plans table.
package planrepo

import (
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PlanDTO is the row layout of a plan. Status and count type are stored by
// name so the table stays readable for reporting queries.
type PlanDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:200;not null"`
	CountType     string    `gorm:"size:20;not null;index"`
	Status        string    `gorm:"size:20;not null;index"`
	ScheduledDate time.Time `gorm:"not null;index"`
	Location      *string   `gorm:"size:64;index"`
	SKUScope      string    `gorm:"column:sku_scope;type:text"`
	AssignedTo    string    `gorm:"size:64;index"`
	CreatedBy     string    `gorm:"size:64"`
	Notes         string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PlanDTO) TableName() string {
	return "cycle_count_plans"
}

func fromDomain(plan *cyclecount.Plan) PlanDTO {
	dto := PlanDTO{
		ID:            plan.ID().Bytes(),
		Name:          plan.Name(),
		CountType:     plan.CountType().String(),
		Status:        plan.Status().String(),
		ScheduledDate: plan.ScheduledDate(),
		SKUScope:      plan.SKUScope(),
		AssignedTo:    plan.AssignedTo(),
		CreatedBy:     plan.CreatedBy(),
		Notes:         plan.Notes(),
		CreatedAt:     plan.CreatedAt(),
		UpdatedAt:     plan.UpdatedAt(),
	}
	if loc, ok := plan.Location(); ok {
		code := loc.Code()
		dto.Location = &code
	}
	return dto
}

func toDomain(dto PlanDTO) (*cyclecount.Plan, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	countType, err := cyclecount.ParseCountType(dto.CountType)
	if err != nil {
		return nil, err
	}
	status, err := cyclecount.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	details := cyclecount.PlanDetails{
		Name:          dto.Name,
		CountType:     countType,
		ScheduledDate: dto.ScheduledDate,
		SKUScope:      dto.SKUScope,
		AssignedTo:    dto.AssignedTo,
		CreatedBy:     dto.CreatedBy,
		Notes:         dto.Notes,
	}
	if dto.Location != nil {
		loc, locErr := kernel.NewLocation(*dto.Location)
		if locErr != nil {
			return nil, locErr
		}
		details.Location = &loc
	}

	return cyclecount.RestorePlan(id, details, status, dto.CreatedAt, dto.UpdatedAt)
}
