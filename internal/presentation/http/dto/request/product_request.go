package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	UnitID     *uuid.UUID `json:"unit_id"`
	SKU        string     `json:"sku" binding:"omitempty,max=100"`
	Barcode    *string    `json:"barcode" binding:"omitempty,max=100"`
	Name       string     `json:"name" binding:"required,min=2,max=255"`
	Price      int64      `json:"price" binding:"min=0"`
	Cost       int64      `json:"cost" binding:"min=0"`
	Stock      int        `json:"stock" binding:"min=0"`
	MinStock   int        `json:"min_stock" binding:"min=0"`
	IsKitchen  bool       `json:"is_kitchen"`
	IsFnb      bool       `json:"is_fnb"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	UnitID     *uuid.UUID `json:"unit_id"`
	Barcode    *string    `json:"barcode" binding:"omitempty,max=100"`
	Name       *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Price      *int64     `json:"price" binding:"omitempty,min=0"`
	Cost       *int64     `json:"cost" binding:"omitempty,min=0"`
	Stock      *int       `json:"stock" binding:"omitempty,min=0"`
	MinStock   *int       `json:"min_stock" binding:"omitempty,min=0"`
	IsActive   *bool      `json:"is_active"`
	IsKitchen  *bool      `json:"is_kitchen"`
	IsFnb      *bool      `json:"is_fnb"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	FnbOnly    bool   `form:"fnb_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CategoryRequest represents a category create/update request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// UnitRequest represents a unit create/update request
type UnitRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Precision int    `json:"precision" binding:"min=0,max=4"`
}
