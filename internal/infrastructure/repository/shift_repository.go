package repository

import (
	"context"
	"errors"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	domainRepo "github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		First(&shift, "user_id = ? AND status = ?", userID, enum.ShiftStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetAnyOpen(ctx context.Context) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Order("start_time DESC").
		First(&shift, "status = ?", enum.ShiftStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepository) List(ctx context.Context, params *pagination.PaginationParams, userID *uuid.UUID) ([]entity.Shift, int64, error) {
	var shifts []entity.Shift
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Shift{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("start_time DESC").
		Find(&shifts).Error

	return shifts, total, err
}

type cashMovementRepository struct {
	db *gorm.DB
}

// NewCashMovementRepository creates a new cash movement repository
func NewCashMovementRepository(db *gorm.DB) domainRepo.CashMovementRepository {
	return &cashMovementRepository{db: db}
}

func (r *cashMovementRepository) Create(ctx context.Context, movement *entity.CashMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *cashMovementRepository) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.CashMovement, error) {
	var movements []entity.CashMovement
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *cashMovementRepository) TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*domainRepo.CashMovementTotals, error) {
	var row struct {
		CashIn  int64
		CashOut int64
	}
	err := r.db.WithContext(ctx).Model(&entity.CashMovement{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS cash_in, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS cash_out",
			enum.CashMovementIn, enum.CashMovementOut,
		).
		Where("shift_id = ?", shiftID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.CashMovementTotals{In: row.CashIn, Out: row.CashOut}, nil
}
