package cmd

import (
	"log/slog"

	httpin "github.com/opsui/opsui-wmsv2-sub002/internal/adapters/in/http"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres"
	"github.com/opsui/opsui-wmsv2-sub002/internal/adapters/out/postgres/schedulerepo"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/queries"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"
	"github.com/opsui/opsui-wmsv2-sub002/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	clock      commands.Clock
	logger     *slog.Logger
}

// NewCompositionRoot wires the use cases. notifier may be nil, in which case
// variance alerts are dropped.
func NewCompositionRoot(gormDB *gorm.DB, notifier ports.Notifier, logger *slog.Logger) CompositionRoot {
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) planUoWFactory() commands.PlanUoWFactory {
	return FuncPlanUoWFactory(func() commands.PlanUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreatePlanCommandHandler() commands.CreatePlanCommandHandler {
	return commands.NewCreatePlanCommandHandler(c.planUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateStartPlanCommandHandler() commands.StartPlanCommandHandler {
	return commands.NewStartPlanCommandHandler(c.uoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompletePlanCommandHandler() commands.CompletePlanCommandHandler {
	return commands.NewCompletePlanCommandHandler(c.planUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelPlanCommandHandler() commands.CancelPlanCommandHandler {
	return commands.NewCancelPlanCommandHandler(c.planUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReconcilePlanCommandHandler() commands.ReconcilePlanCommandHandler {
	return commands.NewReconcilePlanCommandHandler(c.uoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateEntryCommandHandler() commands.CreateEntryCommandHandler {
	return commands.NewCreateEntryCommandHandler(c.uoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUpdateVarianceStatusCommandHandler() commands.UpdateVarianceStatusCommandHandler {
	return commands.NewUpdateVarianceStatusCommandHandler(c.uoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateBulkUpdateVarianceStatusCommandHandler() commands.BulkUpdateVarianceStatusCommandHandler {
	return commands.NewBulkUpdateVarianceStatusCommandHandler(c.uoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetPlanQueryHandler() queries.GetPlanQueryHandler {
	return queries.NewGetPlanQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPlansQueryHandler() queries.ListPlansQueryHandler {
	return queries.NewListPlansQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReconcileSummaryQueryHandler() queries.GetReconcileSummaryQueryHandler {
	return queries.NewGetReconcileSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckForCollisionsQueryHandler() queries.CheckForCollisionsQueryHandler {
	return queries.NewCheckForCollisionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditLogQueryHandler() queries.GetAuditLogQueryHandler {
	return queries.NewGetAuditLogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateExportPlanCSVQueryHandler() queries.ExportPlanCSVQueryHandler {
	return queries.NewExportPlanCSVQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateExportPlanXLSXQueryHandler() queries.ExportPlanXLSXQueryHandler {
	return queries.NewExportPlanXLSXQueryHandler(c.gormDB)
}

// HTTPHandlers collects every use case the HTTP adapter exposes.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreatePlan:    c.CreateCreatePlanCommandHandler(),
		StartPlan:     c.CreateStartPlanCommandHandler(),
		CompletePlan:  c.CreateCompletePlanCommandHandler(),
		CancelPlan:    c.CreateCancelPlanCommandHandler(),
		ReconcilePlan: c.CreateReconcilePlanCommandHandler(),

		CreateEntry:          c.CreateCreateEntryCommandHandler(),
		UpdateVarianceStatus: c.CreateUpdateVarianceStatusCommandHandler(),
		BulkUpdateVariance:   c.CreateBulkUpdateVarianceStatusCommandHandler(),

		GetPlan:             c.CreateGetPlanQueryHandler(),
		ListPlans:           c.CreateListPlansQueryHandler(),
		GetReconcileSummary: c.CreateGetReconcileSummaryQueryHandler(),
		CheckForCollisions:  c.CreateCheckForCollisionsQueryHandler(),
		GetAuditLog:         c.CreateGetAuditLogQueryHandler(),
		ExportCSV:           c.CreateExportPlanCSVQueryHandler(),
		ExportXLSX:          c.CreateExportPlanXLSXQueryHandler(),
	}
}

// CreateRecurringPlanJob builds the scheduler. locker may be nil.
func (c *CompositionRoot) CreateRecurringPlanJob(locker jobs.Locker) *jobs.RecurringPlanJob {
	return jobs.NewRecurringPlanJob(
		c.CreateCreatePlanCommandHandler(),
		schedulerepo.NewGormScheduleRepository(c.gormDB),
		locker,
		c.logger,
	)
}

type FuncPlanUoWFactory func() commands.PlanUoW

func (f FuncPlanUoWFactory) Create() commands.PlanUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
