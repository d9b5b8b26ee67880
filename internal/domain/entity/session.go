package entity

import (
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableSession is one occupancy episode of a billiard table, from start to
// stop. PausedAt is set only while paused; TotalPauseDuration accumulates
// completed pause intervals. DurationMs and the charge fields are derived
// values: refreshed by the recalculator while live, frozen at stop.
type TableSession struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TableID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"table_id"`
	TableName          string             `gorm:"size:100;not null" json:"table_name"`
	StartedAt          time.Time          `gorm:"not null" json:"started_at"`
	EndedAt            *time.Time         `json:"ended_at,omitempty"`
	PausedAt           *time.Time         `json:"paused_at,omitempty"`
	TotalPauseDuration time.Duration      `gorm:"default:0" json:"total_pause_duration"`
	Package            PricelistSnapshot  `gorm:"serializer:json" json:"package_snapshot"`
	Status             enum.SessionStatus `gorm:"size:20;not null;index" json:"status"`
	DurationMs         int64              `gorm:"default:0" json:"duration_ms"`
	TimeCharge         int64              `gorm:"default:0" json:"time_charge"`
	FnbCharge          int64              `gorm:"default:0" json:"fnb_charge"`
	TotalCharge        int64              `gorm:"default:0" json:"total_charge"`
	Payment            *enum.PaymentMethod `gorm:"size:20" json:"payment,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relationships
	FnbItems []SessionFnbItem `gorm:"foreignKey:SessionID" json:"fnb_items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *TableSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsLive reports whether the session still accrues time
func (s *TableSession) IsLive() bool {
	return s.Status == enum.SessionStatusRunning || s.Status == enum.SessionStatusPaused
}

// Clone returns a deep copy safe to read outside the ledger lock
func (s *TableSession) Clone() *TableSession {
	cp := *s
	if s.EndedAt != nil {
		t := *s.EndedAt
		cp.EndedAt = &t
	}
	if s.PausedAt != nil {
		t := *s.PausedAt
		cp.PausedAt = &t
	}
	if s.Payment != nil {
		p := *s.Payment
		cp.Payment = &p
	}
	cp.FnbItems = make([]SessionFnbItem, len(s.FnbItems))
	copy(cp.FnbItems, s.FnbItems)
	return &cp
}

// SessionFnbItem is a food & beverage line attached to a session. Price is
// copied from the catalog at attach time and is immune to later edits.
type SessionFnbItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Qty       int       `gorm:"not null" json:"qty"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new F&B line
func (i *SessionFnbItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SessionFnbItem model
func (SessionFnbItem) TableName() string {
	return "session_fnb_items"
}
