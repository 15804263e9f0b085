package cyclecount

import (
	"errors"
	"strings"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"
)

// RecurringSchedule is a cron-driven template for plans. The scheduler only
// turns a schedule into PlanDetails; the plan itself is created through the
// normal create path.
type RecurringSchedule struct {
	ID       kernel.UUID
	Name     string
	CronSpec string
	Template PlanDetails
	Active   bool
}

// Validate checks the fields the scheduler depends on. The cron expression is
// parsed by the scheduler itself.
func (s RecurringSchedule) Validate() error {
	var problems []error
	if err := s.ID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if strings.TrimSpace(s.CronSpec) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("cron spec"))
	}
	if err := s.Template.CountType.Validate(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// PlanFor builds the details of the plan due at the given tick.
func (s RecurringSchedule) PlanFor(tick time.Time) PlanDetails {
	details := s.Template
	name := strings.TrimSpace(details.Name)
	if name == "" {
		name = s.Name
	}
	details.Name = name + " " + tick.Format(time.DateOnly)
	details.ScheduledDate = tick
	if details.CreatedBy == "" {
		details.CreatedBy = "scheduler"
	}
	if details.Location != nil {
		loc := *details.Location
		details.Location = &loc
	}
	return details
}
