package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"
)

// StartPlanResult is the committed plan and the number of entries generated for it.
type StartPlanResult struct {
	Plan             *cyclecount.Plan
	GeneratedEntries int
}

// StartPlanCommandHandler moves a plan to IN_PROGRESS and populates its
// pending entries with the generator registered for its count type. The
// status change and the entries commit together.
//
// A plan whose scope is insufficient for its count type (BLANKET without a
// location, AD_HOC without SKUs) still starts, with zero entries and a warning.
type StartPlanCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewStartPlanCommandHandler(uowFactory UoWFactory, clock Clock, logger *slog.Logger) StartPlanCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return StartPlanCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrDefault(clock),
		logger:     logger.With("component", "start-plan"),
	}
}

func (h StartPlanCommandHandler) Handle(ctx context.Context, command StartPlanCommand) (StartPlanResult, error) {
	if err := command.Validate(); err != nil {
		return StartPlanResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StartPlanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	plan, err := planRepo.Get(ctx, command.PlanID())
	if err != nil {
		return StartPlanResult{}, err
	}

	now := h.clock()
	before := planView(plan)
	if err = plan.Start(now); err != nil {
		return StartPlanResult{}, err
	}

	entries, err := services.GenerateEntries(ctx, uow.InventoryRepository(), plan, now)
	if errors.Is(err, services.ErrDegradedScope) {
		h.logger.WarnContext(ctx, "plan started without entries",
			"plan_id", plan.ID().String(),
			"count_type", plan.CountType().String(),
			"reason", err.Error(),
		)
		entries, err = nil, nil
	}
	if err != nil {
		return StartPlanResult{}, err
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		return StartPlanResult{}, err
	}

	if err = uow.EntryRepository().Add(ctx, entries...); err != nil {
		return StartPlanResult{}, err
	}

	after := struct {
		planAuditView
		GeneratedEntries int `json:"generatedEntries"`
	}{planView(plan), len(entries)}
	if err = recordAudit(ctx, uow.AuditLog(), plan.ID().String(), audit.ActionPlanStarted,
		command.Actor(), before, after, now); err != nil {
		return StartPlanResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return StartPlanResult{}, err
	}

	committed, err := uow.PlanRepository().Get(ctx, plan.ID())
	if err != nil {
		return StartPlanResult{}, err
	}

	return StartPlanResult{Plan: committed, GeneratedEntries: len(entries)}, nil
}
