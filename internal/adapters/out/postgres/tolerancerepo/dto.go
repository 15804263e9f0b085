// Package tolerancerepo reads tolerance policies from the tolerance_policies table.
package tolerancerepo

import (
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/tolerance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PolicyDTO struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                     string          `gorm:"size:100;not null;index"`
	Scope                    string          `gorm:"size:10;not null"`
	ItemID                   *string         `gorm:"size:64;index"`
	Zone                     *string         `gorm:"size:32;index"`
	AllowableVariancePercent decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	AllowableVarianceAmount  decimal.Decimal `gorm:"type:numeric(18,4);not null;default:0"`
	AutoAdjustThreshold      decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	ReviewThreshold          decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	Active                   bool            `gorm:"not null;default:true"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (PolicyDTO) TableName() string {
	return "tolerance_policies"
}

// FromDomain maps a policy to its row. Used to seed reference data.
func FromDomain(p tolerance.Policy) PolicyDTO {
	dto := PolicyDTO{
		ID:                       p.ID.Bytes(),
		Name:                     p.Name,
		Scope:                    p.Scope.String(),
		AllowableVariancePercent: p.AllowableVariancePercent,
		AllowableVarianceAmount:  p.AllowableVarianceAmount,
		AutoAdjustThreshold:      p.AutoAdjustThreshold,
		ReviewThreshold:          p.ReviewThreshold,
		Active:                   p.Active,
	}
	if p.ItemID != "" {
		item := p.ItemID
		dto.ItemID = &item
	}
	if p.Zone != "" {
		zone := p.Zone
		dto.Zone = &zone
	}
	return dto
}

func toDomain(dto PolicyDTO) (tolerance.Policy, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return tolerance.Policy{}, err
	}

	p := tolerance.Policy{
		ID:                       id,
		Name:                     dto.Name,
		Scope:                    tolerance.ParseScope(dto.Scope),
		AllowableVariancePercent: dto.AllowableVariancePercent,
		AllowableVarianceAmount:  dto.AllowableVarianceAmount,
		AutoAdjustThreshold:      dto.AutoAdjustThreshold,
		ReviewThreshold:          dto.ReviewThreshold,
		Active:                   dto.Active,
	}
	if dto.ItemID != nil {
		p.ItemID = *dto.ItemID
	}
	if dto.Zone != nil {
		p.Zone = *dto.Zone
	}
	return p, nil
}
