package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BilliardTable is a billable resource on the floor. Status and
// CurrentSessionID are owned by the session ledger; administrative edits
// never touch them. A table can only be deleted while FREE.
type BilliardTable struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name             string           `gorm:"size:100;unique;not null" json:"name"`
	TableType        enum.TableType   `gorm:"size:20;not null" json:"table_type"`
	Group            string           `gorm:"size:100" json:"group"`
	IsActive         bool             `gorm:"default:true" json:"is_active"`
	Status           enum.TableStatus `gorm:"size:20;not null;default:FREE" json:"status"`
	CurrentSessionID *uuid.UUID       `gorm:"type:uuid" json:"current_session_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *BilliardTable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BilliardTable model
func (BilliardTable) TableName() string {
	return "billiard_tables"
}
