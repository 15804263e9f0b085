// Package jobs provides scheduled background tasks for the cycle count service.
//
// Jobs are cron-based and use github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RecurringPlanJob creates a SCHEDULED plan from every active recurring
// schedule when its cron expression fires. It only calls the create-plan use
// case; starting, counting and reconciling stay manual.
//
// # Usage
//
//	job := jobs.NewRecurringPlanJob(createPlanHandler, scheduleRepo, locker, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Multiple instances
//
// Every instance registers the same schedules. A Locker backed by
// github.com/bsm/redislock lets exactly one instance act on each tick. When
// Redis is unavailable the job proceeds without the lease.
package jobs
