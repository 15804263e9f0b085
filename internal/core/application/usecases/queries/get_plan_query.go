package queries

import (
	"errors"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var (
	ErrGetPlanQueryIsNotConstructed = errors.New(
		"GetPlanQuery must be created via NewGetPlanQuery constructor",
	)
)

// GetPlanQuery retrieves one plan with all of its entries.
//
// Example:
//
//	query, err := queries.NewGetPlanQuery(planID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	fmt.Printf("%s has %d entries\n", resp.Plan.Name, len(resp.Entries))
type GetPlanQuery struct {
	planID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPlanQuery(planID kernel.UUID) (GetPlanQuery, error) {
	if err := planID.Validate(); err != nil {
		return GetPlanQuery{}, err
	}
	return GetPlanQuery{planID: planID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPlanQuery) PlanID() kernel.UUID {
	return q.planID
}

// Validate ensures the query was created through the constructor.
func (q GetPlanQuery) Validate() error {
	return q.guard.Validate(ErrGetPlanQueryIsNotConstructed)
}

// GetPlanQueryResponse is a plan and its entries ordered by item then location.
type GetPlanQueryResponse struct {
	Plan    PlanView
	Entries []EntryView
}
