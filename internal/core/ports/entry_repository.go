package ports

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// EntryRepository persists count entries. Entries are never deleted.
type EntryRepository interface {
	// Add persists new entries in one batch. An empty batch is a no-op.
	Add(ctx context.Context, entries ...*cyclecount.Entry) error

	// Update persists the mutable state of an existing entry.
	Update(ctx context.Context, entry *cyclecount.Entry) error

	// Get returns errs.ObjectNotFoundError when no entry has the given id.
	Get(ctx context.Context, id kernel.UUID) (*cyclecount.Entry, error)

	// ListPendingByPlan returns the PENDING entries of a plan ordered by item then location.
	ListPendingByPlan(ctx context.Context, planID kernel.UUID) ([]*cyclecount.Entry, error)

	// FindUncounted returns the generated, not yet counted PENDING entry for
	// (item, location) in a plan, or nil when there is none.
	FindUncounted(ctx context.Context, planID kernel.UUID, itemID string, location kernel.Location) (*cyclecount.Entry, error)
}
