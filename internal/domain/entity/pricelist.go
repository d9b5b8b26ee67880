package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricelistPackage defines how table time is converted to money for one
// table type. Editing or deactivating a package never affects sessions that
// already snapshotted it.
type PricelistPackage struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name           string              `gorm:"size:255;not null" json:"name"`
	TableType      enum.TableType      `gorm:"size:20;not null;index" json:"table_type"`
	Unit           enum.PricingUnit    `gorm:"size:20;not null" json:"unit"`
	PricePerUnit   int64               `gorm:"not null" json:"price_per_unit"`
	Rounding       enum.RoundingMethod `gorm:"size:10;not null;default:NONE" json:"rounding"`
	GraceMinutes   int                 `gorm:"default:0" json:"grace_minutes"`
	MinBillMinutes int                 `gorm:"default:0" json:"min_bill_minutes"`
	IsActive       bool                `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new pricelist package
func (p *PricelistPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PricelistPackage model
func (PricelistPackage) TableName() string {
	return "pricelist_packages"
}

// Snapshot copies the package into an immutable value for a session
func (p *PricelistPackage) Snapshot() PricelistSnapshot {
	return PricelistSnapshot{
		PackageID:      p.ID,
		Name:           p.Name,
		TableType:      p.TableType,
		Unit:           p.Unit,
		PricePerUnit:   p.PricePerUnit,
		Rounding:       p.Rounding,
		GraceMinutes:   p.GraceMinutes,
		MinBillMinutes: p.MinBillMinutes,
	}
}

// PricelistSnapshot is the pricing rule set frozen into a session at start
// time. It is stored as JSON on the session row and never mutated.
type PricelistSnapshot struct {
	PackageID      uuid.UUID           `json:"package_id"`
	Name           string              `json:"name"`
	TableType      enum.TableType      `json:"table_type"`
	Unit           enum.PricingUnit    `json:"unit"`
	PricePerUnit   int64               `json:"price_per_unit"`
	Rounding       enum.RoundingMethod `json:"rounding"`
	GraceMinutes   int                 `json:"grace_minutes"`
	MinBillMinutes int                 `json:"min_bill_minutes"`
}
