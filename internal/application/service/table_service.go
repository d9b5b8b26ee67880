package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardiwinata/cuepos/internal/billing"
	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/google/uuid"
)

// TableService handles billiard table administration. The ledger owns live
// occupancy; this service owns the administrative attributes and keeps the
// ledger's view in sync with the database.
type TableService struct {
	tableRepo repository.TableRepository
	ledger    *billing.Ledger
	audit     *AuditTrail
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, ledger *billing.Ledger, audit *AuditTrail) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		ledger:    ledger,
		audit:     audit,
	}
}

// CreateTableInput represents the create table input
type CreateTableInput struct {
	ActorID   uuid.UUID
	Name      string
	TableType enum.TableType
	Group     string
}

// CreateTable registers a new billiard table
func (s *TableService) CreateTable(ctx context.Context, input *CreateTableInput) (*entity.BilliardTable, error) {
	if !input.TableType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid table type")
	}

	table := &entity.BilliardTable{
		Name:      input.Name,
		TableType: input.TableType,
		Group:     input.Group,
		IsActive:  true,
		Status:    enum.TableStatusFree,
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	s.ledger.RegisterTable(table)

	s.audit.record(ctx, input.ActorID, enum.AuditTableChange,
		fmt.Sprintf("Created table %q", table.Name), &table.ID)
	return table, nil
}

// UpdateTableInput represents the update table input
type UpdateTableInput struct {
	ActorID   uuid.UUID
	Name      *string
	TableType *enum.TableType
	Group     *string
	IsActive  *bool
}

// UpdateTable modifies a table's administrative attributes. Occupancy is
// untouched.
func (s *TableService) UpdateTable(ctx context.Context, id uuid.UUID, input *UpdateTableInput) (*entity.BilliardTable, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	if input.Name != nil {
		table.Name = *input.Name
	}
	if input.TableType != nil {
		if !input.TableType.IsValid() {
			return nil, apperror.NewBadRequestError("Invalid table type")
		}
		table.TableType = *input.TableType
	}
	if input.Group != nil {
		table.Group = *input.Group
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}
	s.ledger.RegisterTable(table)

	s.audit.record(ctx, input.ActorID, enum.AuditTableChange,
		fmt.Sprintf("Updated table %q", table.Name), &id)

	// return the ledger's view so occupancy fields are current
	current, err := s.ledger.Table(id)
	if err != nil {
		return table, nil
	}
	return &current, nil
}

// DeleteTable removes a table. Fails while a session is running on it.
func (s *TableService) DeleteTable(ctx context.Context, actorID, id uuid.UUID) error {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table == nil {
		return apperror.NewNotFoundError("Table")
	}

	if err := s.ledger.RemoveTable(id); err != nil {
		if errors.Is(err, billing.ErrTableBusy) {
			return apperror.NewConflictError("Table has a session in progress")
		}
		if !errors.Is(err, billing.ErrTableNotFound) {
			return err
		}
	}

	if err := s.tableRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, enum.AuditTableChange,
		fmt.Sprintf("Deleted table %q", table.Name), &id)
	return nil
}

// GetTable retrieves one table with live occupancy
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.BilliardTable, error) {
	table, err := s.ledger.Table(id)
	if err != nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return &table, nil
}

// ListTables retrieves every table with live occupancy
func (s *TableService) ListTables(ctx context.Context) []entity.BilliardTable {
	return s.ledger.Tables()
}
