package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a completed POS transaction. All amounts are whole rupiah.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ShiftID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"shift_id"`
	CustomerName  *string            `gorm:"size:255" json:"customer_name,omitempty"`
	InvoiceNo     string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	SaleDate      time.Time          `gorm:"not null;index" json:"sale_date"`
	SubTotal      int64              `gorm:"default:0" json:"sub_total"`
	Discount      int64              `gorm:"default:0" json:"discount"`
	Tax           int64              `gorm:"default:0" json:"tax"`
	Total         int64              `gorm:"default:0" json:"total"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Paid          int64              `gorm:"default:0" json:"paid"`
	Change        int64              `gorm:"default:0" json:"change"`
	Status        enum.SaleStatus    `gorm:"size:20;not null;default:COMPLETED" json:"status"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one line of a sale, priced at sale time
type SaleItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Qty       int            `gorm:"not null" json:"qty"`
	Price     int64          `gorm:"not null" json:"price"`
	Discount  int64          `gorm:"default:0" json:"discount"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
