package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	domainRepo "github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		First(&sale, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.ShiftID != nil {
		query = query.Where("shift_id = ?", *params.ShiftID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.DateFrom != nil {
		query = query.Where("sale_date >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("sale_date < ?", *params.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("sale_date DESC").
		Find(&sales).Error

	return sales, total, err
}

// TotalsByShift aggregates completed sales per payment method for one shift
func (r *saleRepository) TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*domainRepo.SaleTotals, error) {
	var row struct {
		Cash     int64
		Qris     int64
		Transfer int64
		Total    int64
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select(
			"COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS cash, "+
				"COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS qris, "+
				"COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS transfer, "+
				"COALESCE(SUM(total), 0) AS total, "+
				"COUNT(*) AS count",
			enum.PaymentCash, enum.PaymentQRIS, enum.PaymentTransfer,
		).
		Where("shift_id = ? AND status = ?", shiftID, enum.SaleStatusCompleted).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.SaleTotals{
		Cash:     row.Cash,
		Qris:     row.Qris,
		Transfer: row.Transfer,
		Total:    row.Total,
		Count:    row.Count,
	}, nil
}

func (r *saleRepository) DailyRevenue(ctx context.Context, start, end time.Time) ([]domainRepo.DailyRevenuePoint, error) {
	var points []domainRepo.DailyRevenuePoint
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("DATE_TRUNC('day', sale_date) AS date, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Where("status = ? AND sale_date >= ? AND sale_date < ?", enum.SaleStatusCompleted, start, end).
		Group("DATE_TRUNC('day', sale_date)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

func (r *saleRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.ProductSalesRow, error) {
	var rows []domainRepo.ProductSalesRow
	err := r.db.WithContext(ctx).
		Table("sale_items").
		Select(
			"sale_items.product_id AS product_id, products.name AS name, "+
				"SUM(sale_items.qty) AS qty, "+
				"SUM(sale_items.qty * sale_items.price - sale_items.discount) AS revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("sales.status = ? AND sales.sale_date >= ? AND sales.sale_date < ?",
			enum.SaleStatusCompleted, start, end).
		Group("sale_items.product_id, products.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

type kdsRepository struct {
	db *gorm.DB
}

// NewKdsRepository creates a new kitchen display repository
func NewKdsRepository(db *gorm.DB) domainRepo.KdsRepository {
	return &kdsRepository{db: db}
}

func (r *kdsRepository) Create(ctx context.Context, order *entity.KdsOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *kdsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.KdsOrder, error) {
	var order entity.KdsOrder
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *kdsRepository) Update(ctx context.Context, order *entity.KdsOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

func (r *kdsRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enum.KdsStatus) error {
	return r.db.WithContext(ctx).Model(&entity.KdsItem{}).
		Where("id = ?", itemID).
		Update("status", status).Error
}

// ListActive returns tickets that still have at least one unfinished item
func (r *kdsRepository) ListActive(ctx context.Context) ([]entity.KdsOrder, error) {
	var orders []entity.KdsOrder
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Where("status NOT IN ?", []enum.KdsStatus{enum.KdsStatusServed, enum.KdsStatusCancelled}).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *kdsRepository) ListByDate(ctx context.Context, day time.Time) ([]entity.KdsOrder, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var orders []entity.KdsOrder
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
