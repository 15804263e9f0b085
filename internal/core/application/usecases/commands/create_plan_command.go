package commands

import (
	"errors"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var ErrCreatePlanCommandIsNotConstructed = errors.New(
	"CreatePlanCommand must be created via NewCreatePlanCommand constructor",
)

// CreatePlanCommand requests a new SCHEDULED plan. The identifier is assigned
// by the handler.
//
// Example:
//
//	cmd, err := NewCreatePlanCommand(cyclecount.PlanDetails{
//	    Name:          "Aisle 4 blanket",
//	    CountType:     cyclecount.Blanket,
//	    ScheduledDate: time.Now(),
//	    Location:      &loc,
//	}, "supervisor-1")
type CreatePlanCommand struct { //nolint:recvcheck //using for validation
	details cyclecount.PlanDetails

	guard guard.ConstructorGuard
}

// NewCreatePlanCommand checks the request fields. The actor becomes the plan
// creator when the details do not name one.
func NewCreatePlanCommand(details cyclecount.PlanDetails, actor string) (CreatePlanCommand, error) {
	if strings.TrimSpace(details.CreatedBy) == "" {
		details.CreatedBy = strings.TrimSpace(actor)
	}

	var problems []error
	if strings.TrimSpace(details.Name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if err := details.CountType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if details.ScheduledDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("scheduled date"))
	}
	if details.CreatedBy == "" {
		problems = append(problems, errs.NewValueIsRequiredError("actor"))
	}
	if err := errors.Join(problems...); err != nil {
		return CreatePlanCommand{}, err
	}

	return CreatePlanCommand{details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c CreatePlanCommand) Validate() error {
	return c.guard.Validate(ErrCreatePlanCommandIsNotConstructed)
}

func (c CreatePlanCommand) Details() cyclecount.PlanDetails {
	return c.details
}

func (c CreatePlanCommand) Actor() string {
	return c.details.CreatedBy
}
