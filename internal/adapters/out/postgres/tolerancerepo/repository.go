package tolerancerepo

import (
	"context"
	"errors"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/tolerance"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTolerancePolicyRepository implements ports.TolerancePolicyRepository using GORM.
type GormTolerancePolicyRepository struct {
	db *gorm.DB
}

func NewGormTolerancePolicyRepository(db *gorm.DB) *GormTolerancePolicyRepository {
	return &GormTolerancePolicyRepository{db: db}
}

// FindCandidates loads, in one query, the active policies the resolver may
// pick from: the item policy, the zone policy and the named default.
// Precedence is left to tolerance.Resolve.
func (r *GormTolerancePolicyRepository) FindCandidates(
	ctx context.Context,
	itemID, zone string,
) ([]tolerance.Policy, error) {
	var dtos []PolicyDTO
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where(r.db.Where("scope = ? AND item_id = ?", tolerance.ItemScope.String(), itemID).
			Or("scope = ? AND LOWER(zone) = LOWER(?)", tolerance.ZoneScope.String(), zone).
			Or("name = ?", tolerance.DefaultPolicyName)).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	policies := make([]tolerance.Policy, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// Get retrieves a policy by ID.
func (r *GormTolerancePolicyRepository) Get(ctx context.Context, id kernel.UUID) (tolerance.Policy, error) {
	if err := id.Validate(); err != nil {
		return tolerance.Policy{}, err
	}

	var dto PolicyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tolerance.Policy{}, errs.NewObjectNotFoundError("tolerance policy", id.String())
		}
		return tolerance.Policy{}, err
	}

	return toDomain(dto)
}
