package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

type GetAuditLogQueryHandler struct {
	db *gorm.DB
}

func NewGetAuditLogQueryHandler(db *gorm.DB) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{db: db}
}

// Handle fails with NotFound when the plan does not exist, even if audit
// records for its id are present.
func (h GetAuditLogQueryHandler) Handle(ctx context.Context, query GetAuditLogQuery) ([]AuditLogLine, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := loadPlan(ctx, h.db, query.PlanID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			occurred_at,
			action,
			actor,
			before_value,
			after_value
		FROM audit_logs
		WHERE resource_type = ?
			AND resource_id = ?
		ORDER BY occurred_at, seq
	`, audit.ResourceCycleCountPlan, query.PlanID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]AuditLogLine, 0)
	for rows.Next() {
		var (
			line          AuditLogLine
			occurredAt    time.Time
			before, after *string
		)
		if err = rows.Scan(&occurredAt, &line.Action, &line.Actor, &before, &after); err != nil {
			return nil, err
		}
		line.OccurredAt = occurredAt
		line.Before = rawJSON(before)
		line.After = rawJSON(after)
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func rawJSON(s *string) json.RawMessage {
	if s == nil {
		return nil
	}
	return json.RawMessage(*s)
}
