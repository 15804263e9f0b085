package commands

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/tolerance"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"github.com/shopspring/decimal"
)

// varianceProcessor routes counts and reviews through tolerance resolution and
// the inventory adjuster. It works inside the caller's unit of work and never
// commits.
type varianceProcessor struct {
	inventory  ports.InventoryRepository
	ledger     ports.AdjustmentLedger
	tolerances ports.TolerancePolicyRepository
	now        time.Time
}

func newVarianceProcessor(uow UoW, now time.Time) varianceProcessor {
	return varianceProcessor{
		inventory:  uow.InventoryRepository(),
		ledger:     uow.AdjustmentLedger(),
		tolerances: uow.TolerancePolicyRepository(),
		now:        now,
	}
}

// countOutcome describes what submitting a count did.
type countOutcome struct {
	Decision   services.VarianceDecision
	Policy     tolerance.Policy
	Adjustment *inventory.AdjustmentTransaction
}

// submit records a physical count on a pending entry and auto-adjusts stock
// when the variance is within tolerance.
func (p varianceProcessor) submit(
	ctx context.Context,
	entry *cyclecount.Entry,
	counted decimal.Decimal,
	counter string,
) (countOutcome, error) {
	system, _, err := p.inventory.GetQuantity(ctx, entry.ItemID(), entry.Location())
	if err != nil {
		return countOutcome{}, err
	}
	if err = entry.RecordCount(system, counted, counter, p.now); err != nil {
		return countOutcome{}, err
	}

	candidates, err := p.tolerances.FindCandidates(ctx, entry.ItemID(), entry.Location().Zone())
	if err != nil {
		return countOutcome{}, err
	}
	policy := tolerance.Resolve(entry.ItemID(), entry.Location(), candidates)
	outcome := countOutcome{
		Decision: services.EvaluateVariance(entry.VariancePercent(), policy),
		Policy:   policy,
	}
	if !outcome.Decision.AutoAdjust {
		return outcome, nil
	}

	tx, err := p.adjustInventory(ctx, entry, counter)
	if err != nil {
		return countOutcome{}, err
	}
	if err = entry.AutoAdjust(tx.ID(), p.now); err != nil {
		return countOutcome{}, err
	}
	outcome.Adjustment = tx
	return outcome, nil
}

// review applies a reviewer decision to a pending entry. Approving a nonzero
// variance adjusts stock; everything else changes status only. The returned
// transaction is nil when no adjustment was made.
func (p varianceProcessor) review(
	ctx context.Context,
	entry *cyclecount.Entry,
	decision cyclecount.VarianceStatus,
	reviewer, notes string,
) (*inventory.AdjustmentTransaction, error) {
	if err := decision.ValidateReviewDecision(); err != nil {
		return nil, err
	}

	if decision == cyclecount.Rejected {
		return nil, entry.Reject(reviewer, notes, p.now)
	}

	// A non-pending entry must fail here, before any stock is touched.
	if entry.Status() != cyclecount.Pending || entry.Variance().IsZero() {
		return nil, entry.Approve(reviewer, notes, nil, p.now)
	}
	tx, err := p.adjustInventory(ctx, entry, reviewer)
	if err != nil {
		return nil, err
	}
	txID := tx.ID()
	if err = entry.Approve(reviewer, notes, &txID, p.now); err != nil {
		return nil, err
	}
	return tx, nil
}

// adjustInventory appends a ledger record for the entry's variance and
// applies it to the stock record. This is the only stock write path.
func (p varianceProcessor) adjustInventory(
	ctx context.Context,
	entry *cyclecount.Entry,
	actor string,
) (*inventory.AdjustmentTransaction, error) {
	delta := entry.Variance()
	tx, err := inventory.NewAdjustmentTransaction(
		kernel.NewUUID(),
		entry.ItemID(),
		entry.Location(),
		delta,
		inventory.ReasonCycleCount,
		actor,
		inventory.Reference{PlanID: entry.PlanID(), EntryID: entry.ID()},
		p.now,
	)
	if err != nil {
		return nil, err
	}
	if err = p.ledger.Append(ctx, tx); err != nil {
		return nil, err
	}

	switch delta.Sign() {
	case 1:
		err = p.inventory.AdjustUp(ctx, entry.ItemID(), entry.Location(), delta)
	case -1:
		err = p.inventory.AdjustDown(ctx, entry.ItemID(), entry.Location(), delta.Abs())
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}
