package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/cyclecount"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/services"
	"github.com/opsui/opsui-wmsv2-sub002/internal/core/ports"
)

const alertTimeout = 3 * time.Second

// alertSender delivers variance alerts after commit. Failures are logged and dropped.
type alertSender struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func newAlertSender(notifier ports.Notifier, logger *slog.Logger) alertSender {
	if logger == nil {
		logger = slog.Default()
	}
	return alertSender{notifier: notifier, logger: logger}
}

func (a alertSender) sendVarianceAlert(ctx context.Context, entry *cyclecount.Entry, priority services.AlertPriority) {
	if a.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	defer cancel()

	n := ports.Notification{
		Type:     ports.NotificationTypeVarianceAlert,
		Priority: string(priority),
		Title:    "Cycle count variance",
		Message: fmt.Sprintf("%s at %s: system %s, counted %s, variance %s (%s%%)",
			entry.ItemID(), entry.Location().Code(),
			entry.SystemQuantity(), entry.CountedQuantity(),
			entry.Variance(), entry.VariancePercent().StringFixed(2)),
		Data: map[string]string{
			"planId":          entry.PlanID().String(),
			"entryId":         entry.ID().String(),
			"itemId":          entry.ItemID(),
			"location":        entry.Location().Code(),
			"systemQuantity":  entry.SystemQuantity().String(),
			"countedQuantity": entry.CountedQuantity().String(),
			"variance":        entry.Variance().String(),
		},
	}
	if err := a.notifier.Notify(ctx, n); err != nil {
		a.logger.WarnContext(ctx, "variance alert not delivered",
			"entry_id", entry.ID().String(),
			"priority", string(priority),
			"error", err,
		)
	}
}
