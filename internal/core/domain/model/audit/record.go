// Package audit defines the append-only audit trail records written by every
// cycle count mutation.
package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
)

// ResourceCycleCountPlan is the resource type under which plan and entry actions are recorded.
const ResourceCycleCountPlan = "CYCLE_COUNT_PLAN"

// Action names.
const (
	ActionPlanCreated          = "PLAN_CREATED"
	ActionPlanStarted          = "PLAN_STARTED"
	ActionPlanCompleted        = "PLAN_COMPLETED"
	ActionPlanCancelled        = "PLAN_CANCELLED"
	ActionPlanReconciled       = "PLAN_RECONCILED"
	ActionEntryCounted         = "ENTRY_COUNTED"
	ActionVarianceAutoAdjusted = "VARIANCE_AUTO_ADJUSTED"
	ActionVarianceReviewed     = "VARIANCE_REVIEWED"
	ActionBulkVarianceReview   = "BULK_VARIANCE_REVIEW"
)

// Record is one audit trail line. Before and After hold JSON snapshots and
// may be nil.
type Record struct {
	ID           kernel.UUID
	ResourceType string
	ResourceID   string
	Action       string
	Actor        string
	Before       json.RawMessage
	After        json.RawMessage
	OccurredAt   time.Time
}

// NewRecord snapshots before and after as JSON.
func NewRecord(resourceType, resourceID, action, actor string, before, after any, at time.Time) (Record, error) {
	beforeJSON, err := snapshot(before)
	if err != nil {
		return Record{}, fmt.Errorf("audit %s before: %w", action, err)
	}
	afterJSON, err := snapshot(after)
	if err != nil {
		return Record{}, fmt.Errorf("audit %s after: %w", action, err)
	}

	return Record{
		ID:           kernel.NewUUID(),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Actor:        actor,
		Before:       beforeJSON,
		After:        afterJSON,
		OccurredAt:   at,
	}, nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
