package request

import (
	"github.com/google/uuid"
)

// SupplierRequest represents a supplier create/update request
type SupplierRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// PurchaseItemRequest is one product line of a purchase request
type PurchaseItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Qty       int       `json:"qty" binding:"required,min=1"`
	Cost      int64     `json:"cost" binding:"min=0"`
}

// CreatePurchaseRequest represents a stock purchase request
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID             `json:"supplier_id" binding:"required"`
	PurchaseDate *string               `json:"purchase_date"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOutletRequest represents an outlet settings update request
type UpdateOutletRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Address       *string  `json:"address" binding:"omitempty,max=500"`
	Phone         *string  `json:"phone" binding:"omitempty,max=50"`
	TaxPercent    *float64 `json:"tax_percent" binding:"omitempty,min=0,max=100"`
	ReceiptHeader *string  `json:"receipt_header" binding:"omitempty,max=500"`
	ReceiptFooter *string  `json:"receipt_footer" binding:"omitempty,max=500"`
}
