package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetPlanQueryHandler struct {
	db *gorm.DB
}

func NewGetPlanQueryHandler(db *gorm.DB) GetPlanQueryHandler {
	return GetPlanQueryHandler{db: db}
}

// Handle returns NotFound when the plan does not exist.
func (h GetPlanQueryHandler) Handle(ctx context.Context, query GetPlanQuery) (GetPlanQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPlanQueryResponse{}, err
	}

	plan, err := loadPlan(ctx, h.db, query.PlanID())
	if err != nil {
		return GetPlanQueryResponse{}, err
	}

	entries, err := loadEntries(ctx, h.db, query.PlanID())
	if err != nil {
		return GetPlanQueryResponse{}, err
	}

	return GetPlanQueryResponse{Plan: plan, Entries: entries}, nil
}
