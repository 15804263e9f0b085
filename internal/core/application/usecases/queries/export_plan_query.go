package queries

import (
	"errors"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/kernel"
	"github.com/opsui/opsui-wmsv2-sub002/internal/pkg/guard"
)

var (
	ErrExportPlanQueryIsNotConstructed = errors.New(
		"ExportPlanQuery must be created via NewExportPlanQuery constructor",
	)
)

// ExportPlanQuery renders the entries of a plan as a downloadable file.
// The CSV and XLSX handlers accept the same query and emit the same rows.
//
// Example:
//
//	query, _ := queries.NewExportPlanQuery(planID)
//	file, err := queries.NewExportPlanCSVQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(file.FileName, file.Content, 0o644)
type ExportPlanQuery struct {
	planID kernel.UUID

	guard guard.ConstructorGuard
}

func NewExportPlanQuery(planID kernel.UUID) (ExportPlanQuery, error) {
	if err := planID.Validate(); err != nil {
		return ExportPlanQuery{}, err
	}
	return ExportPlanQuery{planID: planID, guard: guard.NewConstructorGuard()}, nil
}

func (q ExportPlanQuery) PlanID() kernel.UUID {
	return q.planID
}

func (q ExportPlanQuery) Validate() error {
	return q.guard.Validate(ErrExportPlanQueryIsNotConstructed)
}

// ExportedFile is a rendered export.
type ExportedFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
