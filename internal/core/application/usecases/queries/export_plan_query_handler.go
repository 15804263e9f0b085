package queries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	exportSheet = "Entries"
)

var exportHeader = []string{
	"Entry ID",
	"Item",
	"Location",
	"System Quantity",
	"Counted Quantity",
	"Variance",
	"Variance %",
	"Status",
	"Counted By",
	"Counted At",
	"Reviewed By",
	"Reviewed At",
	"Adjustment Transaction",
	"Notes",
}

// exportCell is one exported value. Quantities keep their decimal so the
// spreadsheet can store them as numbers.
type exportCell struct {
	text   string
	number *decimal.Decimal
}

func textCell(s string) exportCell {
	return exportCell{text: s}
}

func numberCell(d decimal.Decimal) exportCell {
	return exportCell{text: d.String(), number: &d}
}

func timeCell(t *time.Time) exportCell {
	if t == nil {
		return textCell("")
	}
	return textCell(t.UTC().Format(time.RFC3339))
}

func exportRow(e EntryView) []exportCell {
	txID := ""
	if e.AdjustmentTxID != nil {
		txID = e.AdjustmentTxID.String()
	}
	return []exportCell{
		textCell(e.ID.String()),
		textCell(e.ItemID),
		textCell(e.Location),
		numberCell(e.SystemQuantity),
		numberCell(e.CountedQuantity),
		numberCell(e.Variance),
		numberCell(e.VariancePercent.Round(2)),
		textCell(e.VarianceStatus),
		textCell(e.CountedBy),
		timeCell(e.CountedAt),
		textCell(e.ReviewedBy),
		timeCell(e.ReviewedAt),
		textCell(txID),
		textCell(e.Notes),
	}
}

// loadExport reads the plan, failing with NotFound when absent, and its
// entries ordered by item then location.
func loadExport(ctx context.Context, db *gorm.DB, query ExportPlanQuery) (PlanView, [][]exportCell, error) {
	if err := query.Validate(); err != nil {
		return PlanView{}, nil, err
	}

	plan, err := loadPlan(ctx, db, query.PlanID())
	if err != nil {
		return PlanView{}, nil, err
	}

	entries, err := loadEntries(ctx, db, query.PlanID())
	if err != nil {
		return PlanView{}, nil, err
	}

	rows := make([][]exportCell, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, exportRow(e))
	}
	return plan, rows, nil
}

func exportFileName(plan PlanView, ext string) string {
	return fmt.Sprintf("cycle-count-%s.%s", plan.ID, ext)
}

// ExportPlanCSVQueryHandler writes every field double-quoted, header first.
type ExportPlanCSVQueryHandler struct {
	db *gorm.DB
}

func NewExportPlanCSVQueryHandler(db *gorm.DB) ExportPlanCSVQueryHandler {
	return ExportPlanCSVQueryHandler{db: db}
}

func (h ExportPlanCSVQueryHandler) Handle(ctx context.Context, query ExportPlanQuery) (ExportedFile, error) {
	plan, rows, err := loadExport(ctx, h.db, query)
	if err != nil {
		return ExportedFile{}, err
	}

	var b strings.Builder
	writeCSVLine(&b, exportHeader)
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, cell := range row {
			fields[i] = cell.text
		}
		writeCSVLine(&b, fields)
	}

	return ExportedFile{
		FileName:    exportFileName(plan, "csv"),
		ContentType: csvContentType,
		Content:     []byte(b.String()),
	}, nil
}

// writeCSVLine quotes every field. encoding/csv only quotes when needed.
func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

// ExportPlanXLSXQueryHandler writes the export as a single-sheet workbook.
type ExportPlanXLSXQueryHandler struct {
	db *gorm.DB
}

func NewExportPlanXLSXQueryHandler(db *gorm.DB) ExportPlanXLSXQueryHandler {
	return ExportPlanXLSXQueryHandler{db: db}
}

func (h ExportPlanXLSXQueryHandler) Handle(ctx context.Context, query ExportPlanQuery) (ExportedFile, error) {
	plan, rows, err := loadExport(ctx, h.db, query)
	if err != nil {
		return ExportedFile{}, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", exportSheet); err != nil {
		return ExportedFile{}, err
	}

	if err = f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return ExportedFile{}, err
	}

	for i, row := range rows {
		values := make([]any, len(row))
		for j, cell := range row {
			if cell.number != nil {
				values[j] = cell.number.InexactFloat64()
				continue
			}
			values[j] = cell.text
		}

		axis, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return ExportedFile{}, cellErr
		}
		if err = f.SetSheetRow(exportSheet, axis, &values); err != nil {
			return ExportedFile{}, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ExportedFile{}, fmt.Errorf("render xlsx for plan %s: %w", plan.ID, err)
	}

	return ExportedFile{
		FileName:    exportFileName(plan, "xlsx"),
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
	}, nil
}
