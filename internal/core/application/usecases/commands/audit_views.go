package commands

import (
	"context"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"
)

type planAuditView struct {
	Name       string `json:"name"`
	CountType  string `json:"countType"`
	Status     string `json:"status"`
	Location   string `json:"location,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func planView(p *cyclecount.Plan) planAuditView {
	view := planAuditView{
		Name:       p.Name(),
		CountType:  p.CountType().String(),
		Status:     p.Status().String(),
		AssignedTo: p.AssignedTo(),
		Notes:      p.Notes(),
	}
	if loc, ok := p.Location(); ok {
		view.Location = loc.Code()
	}
	return view
}

type entryAuditView struct {
	EntryID         string `json:"entryId"`
	ItemID          string `json:"itemId"`
	Location        string `json:"location"`
	SystemQuantity  string `json:"systemQuantity"`
	CountedQuantity string `json:"countedQuantity"`
	Variance        string `json:"variance"`
	Status          string `json:"status"`
	AdjustmentTxID  string `json:"adjustmentTransactionId,omitempty"`
}

func entryView(e *cyclecount.Entry) entryAuditView {
	view := entryAuditView{
		EntryID:         e.ID().String(),
		ItemID:          e.ItemID(),
		Location:        e.Location().Code(),
		SystemQuantity:  e.SystemQuantity().String(),
		CountedQuantity: e.CountedQuantity().String(),
		Variance:        e.Variance().String(),
		Status:          e.Status().String(),
	}
	if tx := e.AdjustmentTxID(); tx != nil {
		view.AdjustmentTxID = tx.String()
	}
	return view
}

// recordAudit appends a plan-scoped audit record. Entry actions are recorded
// under their plan so the plan audit log shows the whole count.
func recordAudit(
	ctx context.Context,
	log ports.AuditLog,
	planID string,
	action, actor string,
	before, after any,
	at time.Time,
) error {
	record, err := audit.NewRecord(audit.ResourceCycleCountPlan, planID, action, actor, before, after, at)
	if err != nil {
		return err
	}
	return log.Append(ctx, record)
}
