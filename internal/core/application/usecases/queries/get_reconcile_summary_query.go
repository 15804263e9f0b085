package queries

import (
	"errors"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetReconcileSummaryQueryIsNotConstructed = errors.New(
		"GetReconcileSummaryQuery must be created via NewGetReconcileSummaryQuery constructor",
	)
)

// GetReconcileSummaryQuery previews what reconciling a plan would touch.
// It reads only; nothing is approved.
type GetReconcileSummaryQuery struct {
	planID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetReconcileSummaryQuery(planID kernel.UUID) (GetReconcileSummaryQuery, error) {
	if err := planID.Validate(); err != nil {
		return GetReconcileSummaryQuery{}, err
	}
	return GetReconcileSummaryQuery{planID: planID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReconcileSummaryQuery) PlanID() kernel.UUID {
	return q.planID
}

func (q GetReconcileSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetReconcileSummaryQueryIsNotConstructed)
}

// GetReconcileSummaryQueryResponse groups the pending entries of a plan.
// TotalAbsoluteVariance is the sum of |variance| over both groups.
type GetReconcileSummaryQueryResponse struct {
	PlanID                kernel.UUID
	PlanStatus            string
	PendingCount          int
	ZeroVariance          []EntryView
	NonZeroVariance       []EntryView
	TotalAbsoluteVariance decimal.Decimal
}
