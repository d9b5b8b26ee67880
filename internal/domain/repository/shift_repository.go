package repository

import (
	"context"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// ShiftRepository defines the interface for cashier shift data operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetOpenByUser returns the user's OPEN shift, or nil if none
	GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.Shift, error)
	// GetAnyOpen returns any OPEN shift, or nil. Sales require one.
	GetAnyOpen(ctx context.Context) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	List(ctx context.Context, params *pagination.PaginationParams, userID *uuid.UUID) ([]entity.Shift, int64, error)
}

// CashMovementTotals aggregates mid-shift drawer movements
type CashMovementTotals struct {
	In  int64
	Out int64
}

// CashMovementRepository defines the interface for drawer cash movements
type CashMovementRepository interface {
	Create(ctx context.Context, movement *entity.CashMovement) error
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.CashMovement, error)
	TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*CashMovementTotals, error)
}
