package queries

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetReconcileSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetReconcileSummaryQueryHandler(db *gorm.DB) GetReconcileSummaryQueryHandler {
	return GetReconcileSummaryQueryHandler{db: db}
}

func (h GetReconcileSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetReconcileSummaryQuery,
) (GetReconcileSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReconcileSummaryQueryResponse{}, err
	}

	plan, err := loadPlan(ctx, h.db, query.PlanID())
	if err != nil {
		return GetReconcileSummaryQueryResponse{}, err
	}

	pending, err := loadEntries(ctx, h.db, query.PlanID(), withVarianceStatus(cyclecount.Pending))
	if err != nil {
		return GetReconcileSummaryQueryResponse{}, err
	}

	resp := GetReconcileSummaryQueryResponse{
		PlanID:                plan.ID,
		PlanStatus:            plan.Status,
		PendingCount:          len(pending),
		ZeroVariance:          make([]EntryView, 0),
		NonZeroVariance:       make([]EntryView, 0),
		TotalAbsoluteVariance: decimal.Zero,
	}
	for _, e := range pending {
		if e.Variance.IsZero() {
			resp.ZeroVariance = append(resp.ZeroVariance, e)
			continue
		}
		resp.NonZeroVariance = append(resp.NonZeroVariance, e)
		resp.TotalAbsoluteVariance = resp.TotalAbsoluteVariance.Add(e.Variance.Abs())
	}

	return resp, nil
}
