package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
)

// ErrPlanNotReviewable is returned when entries of a CANCELLED plan are reviewed.
var ErrPlanNotReviewable = errors.New("plan entries cannot be reviewed")

func ensureReviewable(plan *cyclecount.Plan) error {
	if plan.Status() == cyclecount.Cancelled {
		return fmt.Errorf("%w: plan %s is %s", ErrPlanNotReviewable, plan.ID(), plan.Status())
	}
	return nil
}

// UpdateVarianceStatusCommandHandler records a reviewer decision on one
// entry. Approving a nonzero variance adjusts stock; rejecting never does.
// Only PENDING entries of a plan that is not CANCELLED can be reviewed, so
// REJECTED is final.
type UpdateVarianceStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewUpdateVarianceStatusCommandHandler(uowFactory UoWFactory, clock Clock) UpdateVarianceStatusCommandHandler {
	return UpdateVarianceStatusCommandHandler{uowFactory: uowFactory, clock: clockOrDefault(clock)}
}

func (h UpdateVarianceStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateVarianceStatusCommand,
) (*cyclecount.Entry, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entryRepo := uow.EntryRepository()
	entry, err := entryRepo.Get(ctx, command.EntryID())
	if err != nil {
		return nil, err
	}
	plan, err := uow.PlanRepository().Get(ctx, entry.PlanID())
	if err != nil {
		return nil, err
	}
	if err = ensureReviewable(plan); err != nil {
		return nil, err
	}

	now := h.clock()
	before := entryView(entry)
	if _, err = newVarianceProcessor(uow, now).review(ctx, entry, command.Status(),
		command.Reviewer(), command.Notes()); err != nil {
		return nil, err
	}

	if err = entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	if err = recordAudit(ctx, uow.AuditLog(), entry.PlanID().String(), audit.ActionVarianceReviewed,
		command.Reviewer(), before, entryView(entry), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return uow.EntryRepository().Get(ctx, entry.ID())
}
