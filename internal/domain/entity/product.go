package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item. Prices are stored in whole rupiah.
// IsKitchen items fan out to the KDS queue on sale; IsFnb items can be
// attached to a running billiard session.
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	UnitID     *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	SKU        string         `gorm:"size:100;unique;not null" json:"sku"`
	Barcode    *string        `gorm:"size:100" json:"barcode,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Price      int64          `gorm:"default:0" json:"price"`
	Cost       int64          `gorm:"default:0" json:"cost"`
	Stock      int            `gorm:"default:0" json:"stock"`
	MinStock   int            `gorm:"default:0" json:"min_stock"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	IsKitchen  bool           `gorm:"default:false" json:"is_kitchen"`
	IsFnb      bool           `gorm:"default:false" json:"is_fnb"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether stock has fallen to the alert threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
