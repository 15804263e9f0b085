package http

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/queries"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
)

// Handler is the shape shared by every command and query handler.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f HandlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// Handlers lists the use cases exposed over HTTP.
type Handlers struct {
	CreatePlan    Handler[commands.CreatePlanCommand, *cyclecount.Plan]
	StartPlan     Handler[commands.StartPlanCommand, commands.StartPlanResult]
	CompletePlan  Handler[commands.CompletePlanCommand, *cyclecount.Plan]
	CancelPlan    Handler[commands.CancelPlanCommand, *cyclecount.Plan]
	ReconcilePlan Handler[commands.ReconcilePlanCommand, commands.ReconcileResult]

	CreateEntry          Handler[commands.CreateEntryCommand, *cyclecount.Entry]
	UpdateVarianceStatus Handler[commands.UpdateVarianceStatusCommand, *cyclecount.Entry]
	BulkUpdateVariance   Handler[commands.BulkUpdateVarianceStatusCommand, commands.BulkResult]

	GetPlan             Handler[queries.GetPlanQuery, queries.GetPlanQueryResponse]
	ListPlans           Handler[queries.ListPlansQuery, []queries.PlanView]
	GetReconcileSummary Handler[queries.GetReconcileSummaryQuery, queries.GetReconcileSummaryQueryResponse]
	CheckForCollisions  Handler[queries.CheckForCollisionsQuery, queries.CheckForCollisionsQueryResponse]
	GetAuditLog         Handler[queries.GetAuditLogQuery, []queries.AuditLogLine]
	ExportCSV           Handler[queries.ExportPlanQuery, queries.ExportedFile]
	ExportXLSX          Handler[queries.ExportPlanQuery, queries.ExportedFile]
}
