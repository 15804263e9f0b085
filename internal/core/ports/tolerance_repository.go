package ports

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/tolerance"
)

// TolerancePolicyRepository reads tolerance reference data.
type TolerancePolicyRepository interface {
	// FindCandidates returns active policies that could apply to the item in
	// the zone: its item policy, the zone policy and the named default.
	FindCandidates(ctx context.Context, itemID, zone string) ([]tolerance.Policy, error)

	// Get returns errs.ObjectNotFoundError when no policy has the given id.
	Get(ctx context.Context, id kernel.UUID) (tolerance.Policy, error)
}
