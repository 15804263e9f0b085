package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	schedulerActor = "scheduler"
	leaseTTL       = time.Minute
)

// PlanCreator is the create-plan use case. It is the only operation the
// scheduler may call.
type PlanCreator interface {
	Handle(ctx context.Context, command commands.CreatePlanCommand) (*cyclecount.Plan, error)
}

// RecurringPlanJob creates plans from active recurring schedules. Each
// schedule gets its own cron entry. When several instances run, the locker
// makes sure one of them creates the plan for a given tick; without a locker
// every instance creates it.
type RecurringPlanJob struct {
	creator   PlanCreator
	schedules ports.RecurringScheduleRepository
	locker    Locker
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRecurringPlanJob builds the job. locker may be nil.
func NewRecurringPlanJob(
	creator PlanCreator,
	schedules ports.RecurringScheduleRepository,
	locker Locker,
	logger *slog.Logger,
) *RecurringPlanJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecurringPlanJob{
		creator:   creator,
		schedules: schedules,
		locker:    locker,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		logger:    logger.With("component", "recurring_plan_job"),
	}
}

// Start loads the active schedules and starts the cron. A schedule with an
// unparsable cron expression is logged and skipped.
func (j *RecurringPlanJob) Start(ctx context.Context) error {
	schedules, err := j.schedules.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("load recurring schedules: %w", err)
	}

	registered := 0
	for _, schedule := range schedules {
		_, addErr := j.cron.AddFunc(schedule.CronSpec, func() {
			tick := time.Now().UTC().Truncate(time.Minute)
			if _, runErr := j.RunOnce(context.Background(), schedule, tick); runErr != nil {
				j.logger.Error("recurring plan not created",
					"schedule_id", schedule.ID.String(),
					"schedule", schedule.Name,
					"error", runErr,
				)
			}
		})
		if addErr != nil {
			j.logger.WarnContext(ctx, "recurring schedule skipped",
				"schedule_id", schedule.ID.String(),
				"cron_spec", schedule.CronSpec,
				"error", addErr,
			)
			continue
		}
		registered++
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Recurring plan job started", "schedules", registered)
	return nil
}

// Stop stops the cron and waits for running ticks to finish.
func (j *RecurringPlanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Recurring plan job stopped")
}

// RunOnce creates the plan of schedule for tick. It returns nil without
// creating anything when another runner holds the tick.
func (j *RecurringPlanJob) RunOnce(
	ctx context.Context,
	schedule cyclecount.RecurringSchedule,
	tick time.Time,
) (*cyclecount.Plan, error) {
	if j.locker != nil {
		key := fmt.Sprintf("cycle-count:schedule:%s:%d", schedule.ID, tick.Unix())
		lease, err := j.locker.Obtain(ctx, key, leaseTTL)
		switch {
		case errors.Is(err, ErrLeaseHeld):
			j.logger.DebugContext(ctx, "tick handled by another runner", "schedule_id", schedule.ID.String())
			return nil, nil
		case err != nil:
			j.logger.WarnContext(ctx, "lease not obtained; proceeding without it",
				"schedule_id", schedule.ID.String(),
				"error", err,
			)
		default:
			defer func() {
				if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
					j.logger.WarnContext(ctx, "lease not released", "error", releaseErr)
				}
			}()
		}
	}

	cmd, err := commands.NewCreatePlanCommand(schedule.PlanFor(tick), schedulerActor)
	if err != nil {
		return nil, err
	}

	plan, err := j.creator.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	j.logger.InfoContext(ctx, "recurring plan created",
		"schedule_id", schedule.ID.String(),
		"plan_id", plan.ID().String(),
	)
	return plan, nil
}
