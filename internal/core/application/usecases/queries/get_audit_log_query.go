package queries

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var (
	ErrGetAuditLogQueryIsNotConstructed = errors.New(
		"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor",
	)
)

// GetAuditLogQuery reads the audit trail of a plan in chronological order.
type GetAuditLogQuery struct {
	planID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAuditLogQuery(planID kernel.UUID) (GetAuditLogQuery, error) {
	if err := planID.Validate(); err != nil {
		return GetAuditLogQuery{}, err
	}
	return GetAuditLogQuery{planID: planID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAuditLogQuery) PlanID() kernel.UUID {
	return q.planID
}

func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

// AuditLogLine is one audit record. Before and After are nil when the action
// had no snapshot on that side.
type AuditLogLine struct {
	OccurredAt time.Time
	Action     string
	Actor      string
	Before     json.RawMessage
	After      json.RawMessage
}
