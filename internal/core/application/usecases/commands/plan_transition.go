package commands

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// transitionPlan loads a plan, applies a status change, persists it with an
// audit record and returns the committed plan.
func transitionPlan(
	ctx context.Context,
	factory PlanUoWFactory,
	planID kernel.UUID,
	actor, action string,
	now time.Time,
	apply func(*cyclecount.Plan) error,
) (*cyclecount.Plan, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	plan, err := planRepo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	before := planView(plan)
	if err = apply(plan); err != nil {
		return nil, err
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	if err = recordAudit(ctx, uow.AuditLog(), planID.String(), action, actor, before, planView(plan), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return uow.PlanRepository().Get(ctx, planID)
}

// CompletePlanCommandHandler marks counting as finished. Entries are not touched.
type CompletePlanCommandHandler struct {
	uowFactory PlanUoWFactory
	clock      Clock
}

func NewCompletePlanCommandHandler(uowFactory PlanUoWFactory, clock Clock) CompletePlanCommandHandler {
	return CompletePlanCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h CompletePlanCommandHandler) Handle(ctx context.Context, command CompletePlanCommand) (*cyclecount.Plan, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	return transitionPlan(ctx, h.uowFactory, command.PlanID(), command.Actor(), audit.ActionPlanCompleted, now,
		func(p *cyclecount.Plan) error {
			return p.Complete(now)
		})
}

// CancelPlanCommandHandler cancels SCHEDULED or IN_PROGRESS plans. Completed
// and reconciled plans fail with errs.InvalidStateTransitionError.
type CancelPlanCommandHandler struct {
	uowFactory PlanUoWFactory
	clock      Clock
}

func NewCancelPlanCommandHandler(uowFactory PlanUoWFactory, clock Clock) CancelPlanCommandHandler {
	return CancelPlanCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h CancelPlanCommandHandler) Handle(ctx context.Context, command CancelPlanCommand) (*cyclecount.Plan, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	return transitionPlan(ctx, h.uowFactory, command.PlanID(), command.Actor(), audit.ActionPlanCancelled, now,
		func(p *cyclecount.Plan) error {
			return p.Cancel(command.Reason(), now)
		})
}
