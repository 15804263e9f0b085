package commands

import (
	"errors"
	"strings"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

// planCommand carries the fields shared by every lifecycle command on an
// existing plan.
type planCommand struct {
	planID kernel.UUID
	actor  string
	text   string

	guard guard.ConstructorGuard
}

func newPlanCommand(planID kernel.UUID, actor, text string) (planCommand, error) {
	actor = strings.TrimSpace(actor)

	var problems []error
	if err := planID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if actor == "" {
		problems = append(problems, errs.NewValueIsRequiredError("actor"))
	}
	if err := errors.Join(problems...); err != nil {
		return planCommand{}, err
	}

	return planCommand{
		planID: planID,
		actor:  actor,
		text:   strings.TrimSpace(text),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c planCommand) PlanID() kernel.UUID {
	return c.planID
}

func (c planCommand) Actor() string {
	return c.actor
}

var (
	ErrStartPlanCommandIsNotConstructed = errors.New(
		"StartPlanCommand must be created via NewStartPlanCommand constructor",
	)
	ErrCompletePlanCommandIsNotConstructed = errors.New(
		"CompletePlanCommand must be created via NewCompletePlanCommand constructor",
	)
	ErrCancelPlanCommandIsNotConstructed = errors.New(
		"CancelPlanCommand must be created via NewCancelPlanCommand constructor",
	)
	ErrReconcilePlanCommandIsNotConstructed = errors.New(
		"ReconcilePlanCommand must be created via NewReconcilePlanCommand constructor",
	)
)

// StartPlanCommand moves a plan to IN_PROGRESS and generates its entries.
type StartPlanCommand struct{ planCommand }

func NewStartPlanCommand(planID kernel.UUID, actor string) (StartPlanCommand, error) {
	c, err := newPlanCommand(planID, actor, "")
	return StartPlanCommand{c}, err
}

func (c StartPlanCommand) Validate() error {
	return c.guard.Validate(ErrStartPlanCommandIsNotConstructed)
}

// CompletePlanCommand moves a plan to COMPLETED.
type CompletePlanCommand struct{ planCommand }

func NewCompletePlanCommand(planID kernel.UUID, actor string) (CompletePlanCommand, error) {
	c, err := newPlanCommand(planID, actor, "")
	return CompletePlanCommand{c}, err
}

func (c CompletePlanCommand) Validate() error {
	return c.guard.Validate(ErrCompletePlanCommandIsNotConstructed)
}

// CancelPlanCommand cancels a plan that has not completed. The reason is
// appended to the plan notes.
type CancelPlanCommand struct{ planCommand }

func NewCancelPlanCommand(planID kernel.UUID, actor, reason string) (CancelPlanCommand, error) {
	c, err := newPlanCommand(planID, actor, reason)
	return CancelPlanCommand{c}, err
}

func (c CancelPlanCommand) Validate() error {
	return c.guard.Validate(ErrCancelPlanCommandIsNotConstructed)
}

func (c CancelPlanCommand) Reason() string {
	return c.text
}

// ReconcilePlanCommand closes a completed plan and approves every pending entry.
type ReconcilePlanCommand struct{ planCommand }

func NewReconcilePlanCommand(planID kernel.UUID, actor, notes string) (ReconcilePlanCommand, error) {
	c, err := newPlanCommand(planID, actor, notes)
	return ReconcilePlanCommand{c}, err
}

func (c ReconcilePlanCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePlanCommandIsNotConstructed)
}

func (c ReconcilePlanCommand) Notes() string {
	return c.text
}
