package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KdsOrder is a kitchen display ticket created from the kitchen items of a
// sale. The order flips to READY once every item is READY.
type KdsOrder struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	SaleInvoiceNo string         `gorm:"size:100;not null" json:"sale_invoice_no"`
	Status        enum.KdsStatus `gorm:"size:20;not null;default:NEW" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Relationships
	Items []KdsItem `gorm:"foreignKey:KdsOrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new KDS order
func (o *KdsOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KdsOrder model
func (KdsOrder) TableName() string {
	return "kds_orders"
}

// KdsItem is a single dish on a kitchen ticket
type KdsItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	KdsOrderID uuid.UUID      `gorm:"type:uuid;not null;index" json:"kds_order_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null" json:"product_id"`
	Qty        int            `gorm:"not null" json:"qty"`
	Status     enum.KdsStatus `gorm:"size:20;not null;default:NEW" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new KDS item
func (i *KdsItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the KdsItem model
func (KdsItem) TableName() string {
	return "kds_items"
}
