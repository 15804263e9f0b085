package commands

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// CreatePlanCommandHandler persists new plans in SCHEDULED status together
// with a PLAN_CREATED audit record. The recurring scheduler uses it too.
type CreatePlanCommandHandler struct {
	uowFactory PlanUoWFactory
	clock      Clock
}

func NewCreatePlanCommandHandler(uowFactory PlanUoWFactory, clock Clock) CreatePlanCommandHandler {
	return CreatePlanCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
	}
}

// Handle creates the plan and returns it as committed.
func (h CreatePlanCommandHandler) Handle(ctx context.Context, command CreatePlanCommand) (*cyclecount.Plan, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	plan, err := cyclecount.NewPlan(kernel.NewUUID(), command.Details(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PlanRepository().Add(ctx, plan); err != nil {
		return nil, err
	}

	if err = recordAudit(ctx, uow.AuditLog(), plan.ID().String(), audit.ActionPlanCreated,
		command.Actor(), nil, planView(plan), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return uow.PlanRepository().Get(ctx, plan.ID())
}
