package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is an append-only record of who did what. Entries are never
// updated or deleted.
type AuditLog struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName  string           `gorm:"size:255;not null" json:"user_name"`
	Action    enum.AuditAction `gorm:"size:50;not null;index" json:"action"`
	Details   string           `gorm:"type:text" json:"details"`
	EntityID  *uuid.UUID       `gorm:"type:uuid" json:"entity_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit log entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
