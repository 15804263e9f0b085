package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"github.com/shopspring/decimal"
)

// ErrPlanNotAcceptingCounts is returned when counts are submitted to a plan
// that is not IN_PROGRESS or COMPLETED.
var ErrPlanNotAcceptingCounts = errors.New("plan is not accepting counts")

// CreateEntryCommandHandler records a physical count. A generated entry for
// the same item and location that has not been counted yet is counted in
// place; otherwise a new entry is inserted.
//
// Within tolerance the variance is applied to stock and the entry becomes
// AUTO_ADJUSTED in the same transaction. Outside tolerance the entry stays
// PENDING and, for large variances, an alert is sent after commit.
type CreateEntryCommandHandler struct {
	uowFactory UoWFactory
	alerts     alertSender
	clock      Clock
}

func NewCreateEntryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock Clock,
	logger *slog.Logger,
) CreateEntryCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateEntryCommandHandler{
		uowFactory: uowFactory,
		alerts:     newAlertSender(notifier, logger.With("component", "create-entry")),
		clock:      clockOrDefault(clock),
	}
}

func (h CreateEntryCommandHandler) Handle(ctx context.Context, command CreateEntryCommand) (*cyclecount.Entry, error) {
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

	plan, err := uow.PlanRepository().Get(ctx, command.PlanID())
	if err != nil {
		return nil, err
	}
	if !plan.Status().AcceptsCounts() {
		return nil, fmt.Errorf("%w: plan %s is %s", ErrPlanNotAcceptingCounts, plan.ID(), plan.Status())
	}

	now := h.clock()
	entryRepo := uow.EntryRepository()
	entry, err := entryRepo.FindUncounted(ctx, plan.ID(), command.ItemID(), command.Location())
	if err != nil {
		return nil, err
	}
	isNew := entry == nil
	if isNew {
		entry, err = cyclecount.NewEntry(kernel.NewUUID(), plan.ID(), command.ItemID(), command.Location(),
			decimal.Zero, now)
		if err != nil {
			return nil, err
		}
	}

	outcome, err := newVarianceProcessor(uow, now).submit(ctx, entry, command.CountedQuantity(), command.Counter())
	if err != nil {
		return nil, err
	}

	if isNew {
		err = entryRepo.Add(ctx, entry)
	} else {
		err = entryRepo.Update(ctx, entry)
	}
	if err != nil {
		return nil, err
	}

	action := audit.ActionEntryCounted
	if outcome.Adjustment != nil {
		action = audit.ActionVarianceAutoAdjusted
	}
	if err = recordAudit(ctx, uow.AuditLog(), plan.ID().String(), action, command.Counter(),
		nil, entryView(entry), now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if outcome.Decision.Alert {
		h.alerts.sendVarianceAlert(ctx, entry, outcome.Decision.Priority)
	}

	return uow.EntryRepository().Get(ctx, entry.ID())
}
