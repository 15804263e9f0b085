package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/commands"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/application/usecases/queries"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderUserID identifies the caller. Authentication happens upstream.
	HeaderUserID = "X-User-ID"
	// HeaderUserRole carries the caller role used to scope plan listings.
	HeaderUserRole = "X-User-Role"
)

// unscopedRoles may list every plan. Other roles only see plans they created
// or are assigned to.
var unscopedRoles = map[string]struct{}{
	"ADMIN":      {},
	"SUPERVISOR": {},
	"MANAGER":    {},
}

// Server exposes the cycle count use cases over HTTP.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// NewEcho builds an echo instance with the request validator and the error
// handler installed and every route registered.
func NewEcho(s *Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	s.Register(e)
	return e
}

// Register mounts the cycle count routes.
func (s *Server) Register(e *echo.Echo) {
	plans := e.Group("/api/v1/cycle-counts/plans")
	plans.POST("", s.CreatePlan)
	plans.GET("", s.ListPlans)
	plans.GET("/:planId", s.GetPlan)
	plans.POST("/:planId/start", s.StartPlan)
	plans.POST("/:planId/complete", s.CompletePlan)
	plans.POST("/:planId/cancel", s.CancelPlan)
	plans.POST("/:planId/reconcile", s.ReconcilePlan)
	plans.GET("/:planId/reconcile-summary", s.GetReconcileSummary)
	plans.GET("/:planId/collisions", s.CheckForCollisions)
	plans.GET("/:planId/audit-log", s.GetAuditLog)
	plans.GET("/:planId/export", s.Export)
	plans.POST("/:planId/entries", s.CreateEntry)
	plans.PATCH("/:planId/variances", s.BulkUpdateVarianceStatus)

	e.PATCH("/api/v1/cycle-count-entries/:entryId/variance", s.UpdateVarianceStatus)
}

func userID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" header is required")
	}
	return id, nil
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.ParseID(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// bindValid binds the body and runs the struct validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// CreatePlan handles POST /api/v1/cycle-counts/plans.
func (s *Server) CreatePlan(c echo.Context) error {
	actor, err := userID(c)
	if err != nil {
		return err
	}

	var req CreatePlanRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}

	countType, err := cyclecount.ParseCountType(req.CountType)
	if err != nil {
		return err
	}
	details := cyclecount.PlanDetails{
		Name:          req.Name,
		CountType:     countType,
		ScheduledDate: req.ScheduledDate,
		SKUScope:      req.SKU,
		AssignedTo:    req.AssignedTo,
		CreatedBy:     actor,
		Notes:         req.Notes,
	}
	if strings.TrimSpace(req.Location) != "" {
		loc, locErr := kernel.NewLocation(req.Location)
		if locErr != nil {
			return locErr
		}
		details.Location = &loc
	}

	cmd, err := commands.NewCreatePlanCommand(details, actor)
	if err != nil {
		return err
	}
	plan, err := s.h.CreatePlan.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, planFromDomain(plan))
}

// ListPlans handles GET /api/v1/cycle-counts/plans.
//
// Query parameters: status, countType, location, assignedTo, from, to
// (RFC 3339). The caller role decides whether the listing is owner-scoped.
func (s *Server) ListPlans(c echo.Context) error {
	actor, err := userID(c)
	if err != nil {
		return err
	}

	filter := queries.PlanFilter{
		Location:   c.QueryParam("location"),
		AssignedTo: c.QueryParam("assignedTo"),
	}
	if _, ok := unscopedRoles[strings.ToUpper(c.Request().Header.Get(HeaderUserRole))]; !ok {
		filter.VisibleTo = actor
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, parseErr := cyclecount.ParseStatus(raw)
		if parseErr != nil {
			return parseErr
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("countType"); raw != "" {
		countType, parseErr := cyclecount.ParseCountType(raw)
		if parseErr != nil {
			return parseErr
		}
		filter.CountType = &countType
	}
	if filter.ScheduledFrom, err = timeParam(c, "from"); err != nil {
		return err
	}
	if filter.ScheduledTo, err = timeParam(c, "to"); err != nil {
		return err
	}

	query, err := queries.NewListPlansQuery(filter)
	if err != nil {
		return err
	}
	plans, err := s.h.ListPlans.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]PlanResponse, len(plans))
	for i, p := range plans {
		resp[i] = planFromView(p)
	}
	return c.JSON(http.StatusOK, resp)
}

func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &t, nil
}

// GetPlan handles GET /api/v1/cycle-counts/plans/:planId.
func (s *Server) GetPlan(c echo.Context) error {
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetPlanQuery(planID)
	if err != nil {
		return err
	}
	resp, err := s.h.GetPlan.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PlanDetailResponse{
		PlanResponse: planFromView(resp.Plan),
		Entries:      entriesFromViews(resp.Entries),
	})
}

// StartPlan handles POST /api/v1/cycle-counts/plans/:planId/start.
func (s *Server) StartPlan(c echo.Context) error {
	actor, err := userID(c)
	if err != nil {
		return err
	}
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartPlanCommand(planID, actor)
	if err != nil {
		return err
	}
	result, err := s.h.StartPlan.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StartPlanResponse{
		Plan:             planFromDomain(result.Plan),
		GeneratedEntries: result.GeneratedEntries,
	})
}

// CompletePlan handles POST /api/v1/cycle-counts/plans/:planId/complete.
func (s *Server) CompletePlan(c echo.Context) error {
	actor, err := userID(c)
	if err != nil {
		return err
	}
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompletePlanCommand(planID, actor)
	if err != nil {
		return err
	}
	plan, err := s.h.CompletePlan.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, planFromDomain(plan))
}

// CancelPlan handles POST /api/v1/cycle-counts/plans/:planId/cancel.
func (s *Server) CancelPlan(c echo.Context) error {
	actor, err := userID(c)
	if err != nil {
		return err
	}
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	var req CancelPlanRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCancelPlanCommand(planID, actor, req.Reason)
	if err != nil {
		return err
	}
	plan, err := s.h.CancelPlan.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, planFromDomain(plan))
}

// ReconcilePlan handles POST /api/v1/cycle-counts/plans/:planId/reconcile.
func (s *Server) ReconcilePlan(c echo.Context) error {
	actor, err := userID(c)
	if err != nil {
		return err
	}
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	var req ReconcilePlanRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewReconcilePlanCommand(planID, actor, req.Notes)
	if err != nil {
		return err
	}
	result, err := s.h.ReconcilePlan.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReconcileResponse{
		Plan:               planFromDomain(result.Plan),
		BulkResultResponse: bulkFromResult(result.BulkResult),
	})
}

// GetReconcileSummary handles GET /api/v1/cycle-counts/plans/:planId/reconcile-summary.
func (s *Server) GetReconcileSummary(c echo.Context) error {
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetReconcileSummaryQuery(planID)
	if err != nil {
		return err
	}
	summary, err := s.h.GetReconcileSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReconcileSummaryResponse{
		PlanID:                summary.PlanID.String(),
		PlanStatus:            summary.PlanStatus,
		PendingCount:          summary.PendingCount,
		ZeroVariance:          entriesFromViews(summary.ZeroVariance),
		NonZeroVariance:       entriesFromViews(summary.NonZeroVariance),
		TotalAbsoluteVariance: summary.TotalAbsoluteVariance,
	})
}

// CheckForCollisions handles GET /api/v1/cycle-counts/plans/:planId/collisions.
func (s *Server) CheckForCollisions(c echo.Context) error {
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	query, err := queries.NewCheckForCollisionsQuery(planID)
	if err != nil {
		return err
	}
	result, err := s.h.CheckForCollisions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := CollisionsResponse{
		HasCollisions: result.HasCollisions,
		Collisions:    make([]CollisionResponse, len(result.Collisions)),
	}
	for i, col := range result.Collisions {
		resp.Collisions[i] = CollisionResponse{
			PlanID:        col.PlanID.String(),
			Name:          col.Name,
			Status:        col.Status,
			AssignedTo:    col.AssignedTo,
			ScheduledDate: col.ScheduledDate,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAuditLog handles GET /api/v1/cycle-counts/plans/:planId/audit-log.
func (s *Server) GetAuditLog(c echo.Context) error {
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetAuditLogQuery(planID)
	if err != nil {
		return err
	}
	lines, err := s.h.GetAuditLog.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]AuditLogLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = AuditLogLineResponse{
			Timestamp: l.OccurredAt,
			Action:    l.Action,
			Actor:     l.Actor,
			Before:    l.Before,
			After:     l.After,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Export handles GET /api/v1/cycle-counts/plans/:planId/export?format=csv|xlsx.
func (s *Server) Export(c echo.Context) error {
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	query, err := queries.NewExportPlanQuery(planID)
	if err != nil {
		return err
	}

	var handler Handler[queries.ExportPlanQuery, queries.ExportedFile]
	switch strings.ToLower(c.QueryParam("format")) {
	case "", "csv":
		handler = s.h.ExportCSV
	case "xlsx":
		handler = s.h.ExportXLSX
	default:
		return errs.NewValueIsInvalidError("format")
	}

	file, err := handler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	return c.Blob(http.StatusOK, file.ContentType, file.Content)
}

// CreateEntry handles POST /api/v1/cycle-counts/plans/:planId/entries.
func (s *Server) CreateEntry(c echo.Context) error {
	counter, err := userID(c)
	if err != nil {
		return err
	}
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	var req CreateEntryRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	loc, err := kernel.NewLocation(req.BinLocation)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateEntryCommand(planID, req.SKU, loc, req.CountedQuantity, counter)
	if err != nil {
		return err
	}
	entry, err := s.h.CreateEntry.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entryFromDomain(entry))
}

// UpdateVarianceStatus handles PATCH /api/v1/cycle-count-entries/:entryId/variance.
func (s *Server) UpdateVarianceStatus(c echo.Context) error {
	reviewer, err := userID(c)
	if err != nil {
		return err
	}
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return err
	}
	var req UpdateVarianceStatusRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	status, err := cyclecount.ParseVarianceStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateVarianceStatusCommand(entryID, status, reviewer, req.Notes)
	if err != nil {
		return err
	}
	entry, err := s.h.UpdateVarianceStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryFromDomain(entry))
}

// BulkUpdateVarianceStatus handles PATCH /api/v1/cycle-counts/plans/:planId/variances.
func (s *Server) BulkUpdateVarianceStatus(c echo.Context) error {
	reviewer, err := userID(c)
	if err != nil {
		return err
	}
	planID, err := pathID(c, "planId")
	if err != nil {
		return err
	}
	var req BulkUpdateVarianceStatusRequest
	if err = bindValid(c, &req); err != nil {
		return err
	}
	status, err := cyclecount.ParseVarianceStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewBulkUpdateVarianceStatusCommand(planID, status, reviewer, req.Notes, req.AutoApproveZeroVariance)
	if err != nil {
		return err
	}
	result, err := s.h.BulkUpdateVariance.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bulkFromResult(result))
}
