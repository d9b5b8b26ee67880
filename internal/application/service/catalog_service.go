package service

import (
	"context"
	"fmt"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// CatalogService handles category and unit management
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	audit        *AuditTrail
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	audit *AuditTrail,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		audit:        audit,
	}
}

// CreateCategory creates a new product category
func (s *CatalogService) CreateCategory(ctx context.Context, actorID uuid.UUID, name string) (*entity.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actorID, enum.AuditCategoryCreate,
		fmt.Sprintf("Created category %q", name), &category.ID)
	return category, nil
}

// UpdateCategory renames a category
func (s *CatalogService) UpdateCategory(ctx context.Context, actorID, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actorID, enum.AuditCategoryUpdate,
		fmt.Sprintf("Updated category %q", name), &id)
	return category, nil
}

// DeleteCategory removes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, actorID, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, enum.AuditCategoryDelete,
		fmt.Sprintf("Deleted category %q", category.Name), &id)
	return nil
}

// ListCategories retrieves categories with pagination
func (s *CatalogService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	return s.categoryRepo.List(ctx, params, search)
}

// CreateUnit creates a new measurement unit
func (s *CatalogService) CreateUnit(ctx context.Context, actorID uuid.UUID, name string, precision int) (*entity.Unit, error) {
	unit := &entity.Unit{Name: name, Precision: precision}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actorID, enum.AuditUnitCreate,
		fmt.Sprintf("Created unit %q", name), &unit.ID)
	return unit, nil
}

// UpdateUnit modifies a measurement unit
func (s *CatalogService) UpdateUnit(ctx context.Context, actorID, id uuid.UUID, name string, precision int) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	unit.Name = name
	unit.Precision = precision
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actorID, enum.AuditUnitUpdate,
		fmt.Sprintf("Updated unit %q", name), &id)
	return unit, nil
}

// DeleteUnit removes a measurement unit
func (s *CatalogService) DeleteUnit(ctx context.Context, actorID, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}

	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, enum.AuditUnitDelete,
		fmt.Sprintf("Deleted unit %q", unit.Name), &id)
	return nil
}

// ListUnits retrieves units with pagination
func (s *CatalogService) ListUnits(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Unit, int64, error) {
	return s.unitRepo.List(ctx, params, search)
}
