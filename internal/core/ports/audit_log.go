package ports

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"
)

// AuditLog is the append-only audit sink.
type AuditLog interface {
	Append(ctx context.Context, record audit.Record) error
}
