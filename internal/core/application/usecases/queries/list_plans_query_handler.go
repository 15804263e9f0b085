package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListPlansQueryHandler reads plans without their entries.
type ListPlansQueryHandler struct {
	db *gorm.DB
}

func NewListPlansQueryHandler(db *gorm.DB) ListPlansQueryHandler {
	return ListPlansQueryHandler{db: db}
}

func (h ListPlansQueryHandler) Handle(ctx context.Context, query ListPlansQuery) ([]PlanView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	f := query.Filter()

	tx := h.db.WithContext(ctx).Table("cycle_count_plans").Select(planColumns)
	if f.Status != nil {
		tx = tx.Where("status = ?", f.Status.String())
	}
	if f.CountType != nil {
		tx = tx.Where("count_type = ?", f.CountType.String())
	}
	if f.Location != "" {
		tx = tx.Where("location = ?", f.Location)
	}
	if f.AssignedTo != "" {
		tx = tx.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.VisibleTo != "" {
		tx = tx.Where("(assigned_to = ? OR created_by = ?)", f.VisibleTo, f.VisibleTo)
	}
	if f.ScheduledFrom != nil {
		tx = tx.Where("scheduled_date >= ?", *f.ScheduledFrom)
	}
	if f.ScheduledTo != nil {
		tx = tx.Where("scheduled_date <= ?", *f.ScheduledTo)
	}

	var rows []planRow
	if err := tx.Order("scheduled_date DESC, created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	plans := make([]PlanView, 0, len(rows))
	for _, row := range rows {
		v, err := row.view()
		if err != nil {
			return nil, err
		}
		plans = append(plans, v)
	}
	return plans, nil
}
