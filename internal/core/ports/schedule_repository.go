package ports

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
)

// RecurringScheduleRepository reads recurring plan templates.
type RecurringScheduleRepository interface {
	ListActive(ctx context.Context) ([]cyclecount.RecurringSchedule, error)
}
