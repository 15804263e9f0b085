// Package auditrepo stores audit records in the audit_logs table.
package auditrepo

import (
	"time"

	"github.com/opsui/opsui-wmsv2-sub002/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// RecordDTO is an audit row. Seq orders records written in the same instant.
type RecordDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int64     `gorm:"autoIncrement;uniqueIndex"`
	ResourceType string    `gorm:"size:40;not null;index:idx_audit_resource,priority:1"`
	ResourceID   string    `gorm:"size:64;not null;index:idx_audit_resource,priority:2"`
	Action       string    `gorm:"size:40;not null"`
	Actor        string    `gorm:"size:64;not null"`
	Before       *string   `gorm:"column:before_value;type:jsonb"`
	After        *string   `gorm:"column:after_value;type:jsonb"`
	OccurredAt   time.Time `gorm:"not null"`
}

func (RecordDTO) TableName() string {
	return "audit_logs"
}

func fromDomain(r audit.Record) RecordDTO {
	return RecordDTO{
		ID:           r.ID.Bytes(),
		ResourceType: r.ResourceType,
		ResourceID:   r.ResourceID,
		Action:       r.Action,
		Actor:        r.Actor,
		Before:       rawJSON(r.Before),
		After:        rawJSON(r.After),
		OccurredAt:   r.OccurredAt,
	}
}

func rawJSON(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	return &s
}
