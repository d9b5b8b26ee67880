package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outlet holds the store profile and receipt settings. A single row is
// seeded at startup; the settings page edits it in place.
type Outlet struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Address       string    `gorm:"size:500" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	TaxPercent    float64   `gorm:"default:0" json:"tax_percent"`
	ReceiptHeader string    `gorm:"size:500" json:"receipt_header"`
	ReceiptFooter string    `gorm:"size:500" json:"receipt_footer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new outlet
func (o *Outlet) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Outlet model
func (Outlet) TableName() string {
	return "outlets"
}
