package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var (
	ErrListPlansQueryIsNotConstructed = errors.New(
		"ListPlansQuery must be created via NewListPlansQuery constructor",
	)
)

// PlanFilter narrows ListPlans. Zero values are ignored.
//
// VisibleTo is the owner scope supplied by the caller layer: when set, only
// plans assigned to or created by that user are returned. Whether a role gets
// a scope at all is decided by the caller.
type PlanFilter struct {
	Status        *cyclecount.Status
	CountType     *cyclecount.CountType
	Location      string
	AssignedTo    string
	VisibleTo     string
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
}

// ListPlansQuery lists plans newest scheduled date first.
type ListPlansQuery struct {
	filter PlanFilter

	guard guard.ConstructorGuard
}

func NewListPlansQuery(filter PlanFilter) (ListPlansQuery, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	filter.AssignedTo = strings.TrimSpace(filter.AssignedTo)
	filter.VisibleTo = strings.TrimSpace(filter.VisibleTo)

	var problems []error
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if filter.CountType != nil {
		if err := filter.CountType.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if filter.ScheduledFrom != nil && filter.ScheduledTo != nil && filter.ScheduledTo.Before(*filter.ScheduledFrom) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("scheduled range",
			fmt.Errorf("%s is before %s", filter.ScheduledTo.Format(time.RFC3339), filter.ScheduledFrom.Format(time.RFC3339))))
	}
	if err := errors.Join(problems...); err != nil {
		return ListPlansQuery{}, err
	}

	return ListPlansQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPlansQuery) Filter() PlanFilter {
	return q.filter
}

func (q ListPlansQuery) Validate() error {
	return q.guard.Validate(ErrListPlansQueryIsNotConstructed)
}
