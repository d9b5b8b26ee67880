package request

import "github.com/google/uuid"

// SaleItemRequest is one line of a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty" binding:"required,min=1"`
	Discount  int64     `json:"discount" binding:"min=0"`
}

// CreateSaleRequest represents a POS sale request
type CreateSaleRequest struct {
	CustomerName  *string           `json:"customer_name" binding:"omitempty,max=255"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount      int64             `json:"discount" binding:"min=0"`
	PaymentMethod string            `json:"payment_method" binding:"required"`
	Paid          int64             `json:"paid" binding:"min=0"`
	Notes         *string           `json:"notes"`
}

// VoidSaleRequest represents a sale void request
type VoidSaleRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	ShiftID       string `form:"shift_id"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}

// UpdateKdsItemRequest represents a kitchen item status update
type UpdateKdsItemRequest struct {
	Status string `json:"status" binding:"required"`
}
