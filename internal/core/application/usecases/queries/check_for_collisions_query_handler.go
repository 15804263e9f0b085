package queries

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckForCollisionsQueryHandler struct {
	db *gorm.DB
}

func NewCheckForCollisionsQueryHandler(db *gorm.DB) CheckForCollisionsQueryHandler {
	return CheckForCollisionsQueryHandler{db: db}
}

// Handle returns no collisions for a plan without a location and does not
// look at other plans in that case.
func (h CheckForCollisionsQueryHandler) Handle(
	ctx context.Context,
	query CheckForCollisionsQuery,
) (CheckForCollisionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckForCollisionsQueryResponse{}, err
	}

	plan, err := loadPlan(ctx, h.db, query.PlanID())
	if err != nil {
		return CheckForCollisionsQueryResponse{}, err
	}

	resp := CheckForCollisionsQueryResponse{Collisions: make([]Collision, 0)}
	if plan.Location == "" {
		return resp, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			assigned_to,
			scheduled_date
		FROM cycle_count_plans
		WHERE location = ?
			AND status IN ?
			AND id <> ?
		ORDER BY scheduled_date, id
	`, plan.Location, []string{cyclecount.Scheduled.String(), cyclecount.InProgress.String()}, plan.ID.Bytes()).Rows()
	if err != nil {
		return CheckForCollisionsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var c Collision
		var id uuid.UUID

		if err = rows.Scan(&id, &c.Name, &c.Status, &c.AssignedTo, &c.ScheduledDate); err != nil {
			return CheckForCollisionsQueryResponse{}, err
		}

		planID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return CheckForCollisionsQueryResponse{}, idErr
		}
		c.PlanID = planID
		resp.Collisions = append(resp.Collisions, c)
	}
	if err = rows.Err(); err != nil {
		return CheckForCollisionsQueryResponse{}, err
	}

	resp.HasCollisions = len(resp.Collisions) > 0
	return resp, nil
}
