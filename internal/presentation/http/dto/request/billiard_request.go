package request

import "github.com/google/uuid"

// CreateTableRequest represents a billiard table creation request
type CreateTableRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	TableType string `json:"table_type" binding:"required"`
	Group     string `json:"group" binding:"omitempty,max=100"`
}

// UpdateTableRequest represents a billiard table update request
type UpdateTableRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	TableType *string `json:"table_type"`
	Group     *string `json:"group" binding:"omitempty,max=100"`
	IsActive  *bool   `json:"is_active"`
}

// PricelistRequest represents a pricelist package create/update request
type PricelistRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=255"`
	TableType      string `json:"table_type" binding:"required"`
	Unit           string `json:"unit" binding:"required"`
	PricePerUnit   int64  `json:"price_per_unit" binding:"min=0"`
	Rounding       string `json:"rounding" binding:"required"`
	GraceMinutes   int    `json:"grace_minutes" binding:"min=0"`
	MinBillMinutes int    `json:"min_bill_minutes" binding:"min=0"`
	IsActive       bool   `json:"is_active"`
}

// StartSessionRequest represents a session start request
type StartSessionRequest struct {
	TableID   uuid.UUID `json:"table_id" binding:"required"`
	PackageID uuid.UUID `json:"package_id" binding:"required"`
}

// AttachChargeRequest represents an F&B attach request
type AttachChargeRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty" binding:"required,min=1"`
}

// StopSessionRequest represents a session stop request
type StopSessionRequest struct {
	Payment *string `json:"payment"`
}

// SessionHistoryFilterRequest represents session history filter parameters
type SessionHistoryFilterRequest struct {
	TableID  string `form:"table_id"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
