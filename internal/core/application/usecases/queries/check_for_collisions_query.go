package queries

import (
	"errors"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var (
	ErrCheckForCollisionsQueryIsNotConstructed = errors.New(
		"CheckForCollisionsQuery must be created via NewCheckForCollisionsQuery constructor",
	)
)

// CheckForCollisionsQuery finds other active plans at the location of a plan.
// The result is advisory: nothing prevents two plans from running at once.
type CheckForCollisionsQuery struct {
	planID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCheckForCollisionsQuery(planID kernel.UUID) (CheckForCollisionsQuery, error) {
	if err := planID.Validate(); err != nil {
		return CheckForCollisionsQuery{}, err
	}
	return CheckForCollisionsQuery{planID: planID, guard: guard.NewConstructorGuard()}, nil
}

func (q CheckForCollisionsQuery) PlanID() kernel.UUID {
	return q.planID
}

func (q CheckForCollisionsQuery) Validate() error {
	return q.guard.Validate(ErrCheckForCollisionsQueryIsNotConstructed)
}

// Collision is another SCHEDULED or IN_PROGRESS plan at the same location.
type Collision struct {
	PlanID        kernel.UUID
	Name          string
	Status        string
	AssignedTo    string
	ScheduledDate time.Time
}

type CheckForCollisionsQueryResponse struct {
	HasCollisions bool
	Collisions    []Collision
}
