package repository

import (
	"context"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error)
}

// OutletRepository defines the interface for outlet settings. A deployment
// has exactly one outlet row.
type OutletRepository interface {
	Get(ctx context.Context) (*entity.Outlet, error)
	Save(ctx context.Context, outlet *entity.Outlet) error
}

// AuditLogRepository defines the interface for the append-only audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, params *AuditLogFilterParams) ([]entity.AuditLog, int64, error)
}

// AuditLogFilterParams contains filtering parameters for audit log queries
type AuditLogFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Action     string
}
