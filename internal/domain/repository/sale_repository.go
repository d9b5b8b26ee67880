package repository

import (
	"context"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// SaleTotals aggregates completed sales for one shift, broken down by
// payment method. Voided sales are excluded.
type SaleTotals struct {
	Cash     int64
	Qris     int64
	Transfer int64
	Total    int64
	Count    int64
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*SaleTotals, error)
	// DailyRevenue sums completed sales per calendar day over the window
	DailyRevenue(ctx context.Context, start, end time.Time) ([]DailyRevenuePoint, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]ProductSalesRow, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	ShiftID       *uuid.UUID
	UserID        *uuid.UUID
	Status        *enum.SaleStatus
	PaymentMethod *enum.PaymentMethod
	DateFrom      *time.Time
	DateTo        *time.Time
}

// DailyRevenuePoint is one day of aggregated sales for the dashboard
type DailyRevenuePoint struct {
	Date    time.Time `json:"date"`
	Revenue int64     `json:"revenue"`
	Count   int64     `json:"count"`
}

// ProductSalesRow is one product's aggregated sales over a window
type ProductSalesRow struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Qty       int64     `json:"qty"`
	Revenue   int64     `json:"revenue"`
}

// KdsRepository defines the interface for kitchen display orders
type KdsRepository interface {
	Create(ctx context.Context, order *entity.KdsOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.KdsOrder, error)
	Update(ctx context.Context, order *entity.KdsOrder) error
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enum.KdsStatus) error
	// ListActive returns orders that still have at least one unserved item
	ListActive(ctx context.Context) ([]entity.KdsOrder, error)
	ListByDate(ctx context.Context, day time.Time) ([]entity.KdsOrder, error)
}
