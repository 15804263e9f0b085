package commands

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// BulkResult summarizes a bulk review.
type BulkResult struct {
	Updated     int
	Skipped     int
	Adjustments []*inventory.AdjustmentTransaction
}

// reviewPending routes every PENDING entry of a plan through the single-entry
// review. Any failure aborts the whole batch; the caller's unit of work rolls it back.
func reviewPending(
	ctx context.Context,
	uow UoW,
	planID kernel.UUID,
	decision reviewDecision,
	autoApproveZeroVariance bool,
	now time.Time,
) (BulkResult, error) {
	entryRepo := uow.EntryRepository()
	pending, err := entryRepo.ListPendingByPlan(ctx, planID)
	if err != nil {
		return BulkResult{}, err
	}

	processor := newVarianceProcessor(uow, now)
	result := BulkResult{Adjustments: []*inventory.AdjustmentTransaction{}}
	for _, entry := range pending {
		if entry.Variance().IsZero() && !autoApproveZeroVariance {
			result.Skipped++
			continue
		}

		tx, err := processor.review(ctx, entry, decision.Status(), decision.Reviewer(), decision.Notes())
		if err != nil {
			return BulkResult{}, err
		}
		if err = entryRepo.Update(ctx, entry); err != nil {
			return BulkResult{}, err
		}

		result.Updated++
		if tx != nil {
			result.Adjustments = append(result.Adjustments, tx)
		}
	}
	return result, nil
}

type bulkAuditView struct {
	Decision    string `json:"decision"`
	Updated     int    `json:"updated"`
	Skipped     int    `json:"skipped"`
	Adjustments int    `json:"adjustments"`
}

// BulkUpdateVarianceStatusCommandHandler reviews all pending entries of a plan
// in one transaction.
type BulkUpdateVarianceStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewBulkUpdateVarianceStatusCommandHandler(uowFactory UoWFactory, clock Clock) BulkUpdateVarianceStatusCommandHandler {
	return BulkUpdateVarianceStatusCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h BulkUpdateVarianceStatusCommandHandler) Handle(
	ctx context.Context,
	command BulkUpdateVarianceStatusCommand,
) (BulkResult, error) {
	if err := command.Validate(); err != nil {
		return BulkResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BulkResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	plan, err := uow.PlanRepository().Get(ctx, command.PlanID())
	if err != nil {
		return BulkResult{}, err
	}
	if err = ensureReviewable(plan); err != nil {
		return BulkResult{}, err
	}

	now := h.clock()
	result, err := reviewPending(ctx, uow, plan.ID(), command.reviewDecision, command.AutoApproveZeroVariance(), now)
	if err != nil {
		return BulkResult{}, err
	}

	if err = recordAudit(ctx, uow.AuditLog(), plan.ID().String(), audit.ActionBulkVarianceReview,
		command.Reviewer(), nil, bulkAuditView{
			Decision:    command.Status().String(),
			Updated:     result.Updated,
			Skipped:     result.Skipped,
			Adjustments: len(result.Adjustments),
		}, now); err != nil {
		return BulkResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return BulkResult{}, err
	}

	return result, nil
}

// ReconcileResult is the committed plan and the outcome of approving its pending entries.
type ReconcileResult struct {
	Plan *cyclecount.Plan
	BulkResult
}

// ReconcilePlanCommandHandler moves a COMPLETED plan to RECONCILED and
// approves every PENDING entry, zero variances included, in one transaction.
type ReconcilePlanCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewReconcilePlanCommandHandler(uowFactory UoWFactory, clock Clock) ReconcilePlanCommandHandler {
	return ReconcilePlanCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h ReconcilePlanCommandHandler) Handle(ctx context.Context, command ReconcilePlanCommand) (ReconcileResult, error) {
	if err := command.Validate(); err != nil {
		return ReconcileResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconcileResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	planRepo := uow.PlanRepository()
	plan, err := planRepo.Get(ctx, command.PlanID())
	if err != nil {
		return ReconcileResult{}, err
	}

	now := h.clock()
	before := planView(plan)
	if err = plan.Reconcile(command.Notes(), now); err != nil {
		return ReconcileResult{}, err
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		return ReconcileResult{}, err
	}

	approve := reviewDecision{status: cyclecount.Approved, reviewer: command.Actor(), notes: command.Notes()}
	result, err := reviewPending(ctx, uow, plan.ID(), approve, true, now)
	if err != nil {
		return ReconcileResult{}, err
	}

	after := struct {
		planAuditView
		Approved    int `json:"approved"`
		Adjustments int `json:"adjustments"`
	}{planView(plan), result.Updated, len(result.Adjustments)}
	if err = recordAudit(ctx, uow.AuditLog(), plan.ID().String(), audit.ActionPlanReconciled,
		command.Actor(), before, after, now); err != nil {
		return ReconcileResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcileResult{}, err
	}

	committed, err := uow.PlanRepository().Get(ctx, plan.ID())
	if err != nil {
		return ReconcileResult{}, err
	}

	return ReconcileResult{Plan: committed, BulkResult: result}, nil
}
