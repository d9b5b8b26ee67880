package repository

import (
	"context"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// TableRepository defines the interface for billiard table data operations.
// Rows mirror the ledger's occupancy state so it survives a restart.
type TableRepository interface {
	Create(ctx context.Context, table *entity.BilliardTable) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BilliardTable, error)
	Save(ctx context.Context, table *entity.BilliardTable) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]entity.BilliardTable, error)
}

// PricelistRepository defines the interface for pricelist package data operations
type PricelistRepository interface {
	Create(ctx context.Context, pkg *entity.PricelistPackage) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error)
	Update(ctx context.Context, pkg *entity.PricelistPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, tableType string, activeOnly bool) ([]entity.PricelistPackage, int64, error)
	ListAll(ctx context.Context) ([]entity.PricelistPackage, error)
}

// SessionTotals aggregates ended-session revenue over a time window
type SessionTotals struct {
	Total int64
	Cash  int64
	Count int64
}

// SessionRepository defines the interface for table session history.
// Save upserts: the ledger writes the same row on every lifecycle
// transition, ending with the frozen final bill.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.TableSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error)
	ListOpen(ctx context.Context) ([]entity.TableSession, error)
	ListEnded(ctx context.Context, params *SessionFilterParams) ([]entity.TableSession, int64, error)
	// TotalsEndedBetween sums the frozen totals of sessions that ended inside
	// the window, for shift reconciliation.
	TotalsEndedBetween(ctx context.Context, start, end time.Time) (*SessionTotals, error)
}

// SessionFilterParams contains filtering parameters for session history queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	TableID    *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}
