package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/inventory"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
)

const (
	// TopVelocityCategory is the ABC category counted by ABC plans.
	TopVelocityCategory = "A"

	// ReceivingLookback is how far back RECEIVING plans look for inbound movements.
	ReceivingLookback = 7 * 24 * time.Hour

	spotCheckPercent = 15
	spotCheckMin     = 5
	spotCheckMax     = 50
)

// ErrDegradedScope is returned when a plan lacks the scope its count type
// needs. Callers log it and carry on with zero entries.
var ErrDegradedScope = errors.New("plan scope is insufficient for entry generation")

// ShippingOrderStatuses are the order statuses whose lines SHIPPING plans count.
func ShippingOrderStatuses() []string {
	return []string{"PICKING", "PICKED", "PACKED"}
}

// EntryGenerator builds the pending entries of a plan that is being started.
type EntryGenerator func(
	ctx context.Context,
	snapshot InventorySnapshot,
	plan *cyclecount.Plan,
	now time.Time,
) ([]*cyclecount.Entry, error)

// EntryGenerators maps every count type to its generator.
func EntryGenerators() map[cyclecount.CountType]EntryGenerator {
	return map[cyclecount.CountType]EntryGenerator{
		cyclecount.Blanket:   generateBlanket,
		cyclecount.ABC:       generateABC,
		cyclecount.SpotCheck: generateSpotCheck,
		cyclecount.Receiving: generateReceiving,
		cyclecount.Shipping:  generateShipping,
		cyclecount.AdHoc:     generateAdHoc,
	}
}

// GenerateEntries dispatches to the generator registered for the plan's count type.
func GenerateEntries(
	ctx context.Context,
	snapshot InventorySnapshot,
	plan *cyclecount.Plan,
	now time.Time,
) ([]*cyclecount.Entry, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	generate, ok := EntryGenerators()[plan.CountType()]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"count type is invalid",
			fmt.Errorf("no entry generator for %s", plan.CountType()),
		)
	}
	return generate(ctx, snapshot, plan, now)
}

// SpotCheckSampleSize is 15% of the eligible count rounded up, clamped to
// [5, 50] and never more than the eligible count itself.
func SpotCheckSampleSize(eligible int64) int {
	if eligible <= 0 {
		return 0
	}
	size := (eligible*spotCheckPercent + 99) / 100
	size = max(size, spotCheckMin)
	size = min(size, spotCheckMax, eligible)
	return int(size)
}

func generateBlanket(
	ctx context.Context, snapshot InventorySnapshot, plan *cyclecount.Plan, now time.Time,
) ([]*cyclecount.Entry, error) {
	loc, ok := plan.Location()
	if !ok {
		return nil, fmt.Errorf("%w: BLANKET plan %s has no location", ErrDegradedScope, plan.ID())
	}
	levels, err := snapshot.PositiveStock(ctx, StockFilter{Location: &loc})
	if err != nil {
		return nil, err
	}
	return entriesFromStock(plan, levels, now)
}

func generateABC(
	ctx context.Context, snapshot InventorySnapshot, plan *cyclecount.Plan, now time.Time,
) ([]*cyclecount.Entry, error) {
	var filter StockFilter
	if loc, ok := plan.Location(); ok {
		filter.Zone = loc.Zone()
	}

	levels, err := snapshot.StockInCategory(ctx, TopVelocityCategory, filter)
	if err != nil {
		return nil, err
	}
	if skus := plan.SKUList(); len(skus) > 0 {
		named, err := snapshot.StockForItems(ctx, skus, filter)
		if err != nil {
			return nil, err
		}
		levels = append(levels, named...)
	}
	return entriesFromStock(plan, levels, now)
}

func generateSpotCheck(
	ctx context.Context, snapshot InventorySnapshot, plan *cyclecount.Plan, now time.Time,
) ([]*cyclecount.Entry, error) {
	filter := locationFilter(plan)
	eligible, err := snapshot.CountEligible(ctx, filter)
	if err != nil {
		return nil, err
	}
	size := SpotCheckSampleSize(eligible)
	if size == 0 {
		return nil, nil
	}
	levels, err := snapshot.SampleEligible(ctx, filter, size)
	if err != nil {
		return nil, err
	}
	return entriesFromStock(plan, levels, now)
}

func generateReceiving(
	ctx context.Context, snapshot InventorySnapshot, plan *cyclecount.Plan, now time.Time,
) ([]*cyclecount.Entry, error) {
	levels, err := snapshot.ReceivedSince(ctx, now.Add(-ReceivingLookback), locationFilter(plan))
	if err != nil {
		return nil, err
	}
	return entriesFromStock(plan, levels, now)
}

func generateShipping(
	ctx context.Context, snapshot InventorySnapshot, plan *cyclecount.Plan, now time.Time,
) ([]*cyclecount.Entry, error) {
	levels, err := snapshot.OnOpenOrders(ctx, ShippingOrderStatuses(), locationFilter(plan))
	if err != nil {
		return nil, err
	}
	return entriesFromStock(plan, levels, now)
}

func generateAdHoc(
	ctx context.Context, snapshot InventorySnapshot, plan *cyclecount.Plan, now time.Time,
) ([]*cyclecount.Entry, error) {
	skus := plan.SKUList()
	if len(skus) == 0 {
		return nil, fmt.Errorf("%w: AD_HOC plan %s has no SKU list", ErrDegradedScope, plan.ID())
	}
	levels, err := snapshot.StockForItems(ctx, skus, locationFilter(plan))
	if err != nil {
		return nil, err
	}
	return entriesFromStock(plan, levels, now)
}

func locationFilter(plan *cyclecount.Plan) StockFilter {
	if loc, ok := plan.Location(); ok {
		return StockFilter{Location: &loc}
	}
	return StockFilter{}
}

// entriesFromStock turns stock levels into pending entries, keeping the first
// level seen for each (item, location) pair.
func entriesFromStock(plan *cyclecount.Plan, levels []inventory.StockLevel, now time.Time) ([]*cyclecount.Entry, error) {
	type key struct{ item, location string }
	seen := make(map[key]struct{}, len(levels))
	entries := make([]*cyclecount.Entry, 0, len(levels))

	for _, level := range levels {
		k := key{level.ItemID, level.Location.Code()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		entry, err := cyclecount.NewEntry(kernel.NewUUID(), plan.ID(), level.ItemID, level.Location, level.Quantity, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
