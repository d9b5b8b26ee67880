package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	domainRepo "github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new billiard table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.BilliardTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BilliardTable, error) {
	var table entity.BilliardTable
	err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

// Save upserts the full row, occupancy fields included
func (r *tableRepository) Save(ctx context.Context, table *entity.BilliardTable) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(table).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BilliardTable{}, "id = ?", id).Error
}

func (r *tableRepository) ListAll(ctx context.Context) ([]entity.BilliardTable, error) {
	var tables []entity.BilliardTable
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tables).Error
	return tables, err
}

type pricelistRepository struct {
	db *gorm.DB
}

// NewPricelistRepository creates a new pricelist package repository
func NewPricelistRepository(db *gorm.DB) domainRepo.PricelistRepository {
	return &pricelistRepository{db: db}
}

func (r *pricelistRepository) Create(ctx context.Context, pkg *entity.PricelistPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *pricelistRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error) {
	var pkg entity.PricelistPackage
	err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pkg, err
}

func (r *pricelistRepository) Update(ctx context.Context, pkg *entity.PricelistPackage) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *pricelistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PricelistPackage{}, "id = ?", id).Error
}

func (r *pricelistRepository) List(ctx context.Context, params *pagination.PaginationParams, tableType string, activeOnly bool) ([]entity.PricelistPackage, int64, error) {
	var packages []entity.PricelistPackage
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PricelistPackage{})
	if tableType != "" {
		query = query.Where("table_type = ?", tableType)
	}
	if activeOnly {
		query = query.Where("is_active = true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("table_type ASC, name ASC").
		Find(&packages).Error

	return packages, total, err
}

func (r *pricelistRepository) ListAll(ctx context.Context) ([]entity.PricelistPackage, error) {
	var packages []entity.PricelistPackage
	err := r.db.WithContext(ctx).Order("table_type ASC, name ASC").Find(&packages).Error
	return packages, err
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new table session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

// Save upserts the session row and replaces its item lines. The ledger
// calls this on every lifecycle transition.
func (r *sessionRepository) Save(ctx context.Context, session *entity.TableSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("FnbItems").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(session).Error; err != nil {
			return err
		}
		if len(session.FnbItems) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&session.FnbItems).Error
	})
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	var session entity.TableSession
	err := r.db.WithContext(ctx).
		Preload("FnbItems").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) ListOpen(ctx context.Context) ([]entity.TableSession, error) {
	var sessions []entity.TableSession
	err := r.db.WithContext(ctx).
		Preload("FnbItems").
		Where("status <> ?", enum.SessionStatusEnded).
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) ListEnded(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.TableSession, int64, error) {
	var sessions []entity.TableSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.TableSession{}).
		Where("status = ?", enum.SessionStatusEnded)

	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.DateFrom != nil {
		query = query.Where("ended_at >= ?", *params.DateFrom)
	}
	if params.DateTo != nil {
		query = query.Where("ended_at < ?", *params.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("FnbItems").
		Order("ended_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

// TotalsEndedBetween sums the frozen totals of sessions ended inside the
// window, for shift reconciliation
func (r *sessionRepository) TotalsEndedBetween(ctx context.Context, start, end time.Time) (*domainRepo.SessionTotals, error) {
	var row struct {
		Total int64
		Cash  int64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&entity.TableSession{}).
		Select(
			"COALESCE(SUM(total_charge), 0) AS total, "+
				"COALESCE(SUM(CASE WHEN payment = ? THEN total_charge ELSE 0 END), 0) AS cash, "+
				"COUNT(*) AS count",
			enum.PaymentCash,
		).
		Where("status = ? AND ended_at >= ? AND ended_at < ?", enum.SessionStatusEnded, start, end).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.SessionTotals{Total: row.Total, Cash: row.Cash, Count: row.Count}, nil
}
