package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is one cashier drawer session. The sales/movement breakdown and
// expected cash are derived from sales, ended table sessions and cash
// movements recorded while the shift was open; they are written once at
// close and stay zero on the row while OPEN (live values are computed on
// read).
type Shift struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName  string           `gorm:"size:255;not null" json:"user_name"`
	Status    enum.ShiftStatus `gorm:"size:20;not null;index" json:"status"`
	StartTime time.Time        `gorm:"not null" json:"start_time"`
	EndTime   *time.Time       `json:"end_time,omitempty"`
	StartCash int64            `gorm:"default:0" json:"start_cash"`
	EndCash   *int64           `json:"end_cash,omitempty"`

	CashSales     int64  `gorm:"default:0" json:"cash_sales"`
	QrisSales     int64  `gorm:"default:0" json:"qris_sales"`
	TransferSales int64  `gorm:"default:0" json:"transfer_sales"`
	SessionSales  int64  `gorm:"default:0" json:"session_sales"`
	TotalSales    int64  `gorm:"default:0" json:"total_sales"`
	CashIn        int64  `gorm:"default:0" json:"cash_in"`
	CashOut       int64  `gorm:"default:0" json:"cash_out"`
	ExpectedCash  int64  `gorm:"default:0" json:"expected_cash"`
	Difference    *int64 `json:"difference,omitempty"`

	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// CashMovement records cash put into or taken out of the drawer mid-shift
type CashMovement struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID   uuid.UUID             `gorm:"type:uuid;not null;index" json:"shift_id"`
	Type      enum.CashMovementType `gorm:"size:10;not null" json:"type"`
	Amount    int64                 `gorm:"not null" json:"amount"`
	Notes     string                `gorm:"size:500" json:"notes"`
	CreatedAt time.Time             `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new cash movement
func (m *CashMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashMovement model
func (CashMovement) TableName() string {
	return "cash_movements"
}
