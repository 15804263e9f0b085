package auditrepo

import (
	"context"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditLog implements ports.AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append writes one audit row inside the caller's transaction.
func (l *GormAuditLog) Append(ctx context.Context, record audit.Record) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return l.db.WithContext(ctx).Create(&dto).Error
}
