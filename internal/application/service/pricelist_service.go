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

// PricelistService manages pricing packages. Edits never touch running
// sessions; each session carries the snapshot it started with.
type PricelistService struct {
	pricelistRepo repository.PricelistRepository
	audit         *AuditTrail
}

// NewPricelistService creates a new pricelist service
func NewPricelistService(pricelistRepo repository.PricelistRepository, audit *AuditTrail) *PricelistService {
	return &PricelistService{pricelistRepo: pricelistRepo, audit: audit}
}

// PricelistInput represents the create/update pricelist package input
type PricelistInput struct {
	ActorID        uuid.UUID
	Name           string
	TableType      enum.TableType
	Unit           enum.PricingUnit
	PricePerUnit   int64
	Rounding       enum.RoundingMethod
	GraceMinutes   int
	MinBillMinutes int
	IsActive       bool
}

func (in *PricelistInput) validate() error {
	if !in.TableType.IsValid() {
		return apperror.NewBadRequestError("Invalid table type")
	}
	if !in.Unit.IsValid() {
		return apperror.NewBadRequestError("Invalid pricing unit")
	}
	if !in.Rounding.IsValid() {
		return apperror.NewBadRequestError("Invalid rounding method")
	}
	if in.PricePerUnit < 0 {
		return apperror.NewBadRequestError("Price per unit must not be negative")
	}
	if in.GraceMinutes < 0 || in.MinBillMinutes < 0 {
		return apperror.NewBadRequestError("Grace and minimum minutes must not be negative")
	}
	return nil
}

// CreatePackage creates a new pricing package
func (s *PricelistService) CreatePackage(ctx context.Context, input *PricelistInput) (*entity.PricelistPackage, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pkg := &entity.PricelistPackage{
		Name:           input.Name,
		TableType:      input.TableType,
		Unit:           input.Unit,
		PricePerUnit:   input.PricePerUnit,
		Rounding:       input.Rounding,
		GraceMinutes:   input.GraceMinutes,
		MinBillMinutes: input.MinBillMinutes,
		IsActive:       input.IsActive,
	}
	if err := s.pricelistRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.audit.record(ctx, input.ActorID, enum.AuditPricelistChange,
		fmt.Sprintf("Created pricelist %q", pkg.Name), &pkg.ID)
	return pkg, nil
}

// UpdatePackage modifies a pricing package. Running sessions keep the
// snapshot they started with.
func (s *PricelistService) UpdatePackage(ctx context.Context, id uuid.UUID, input *PricelistInput) (*entity.PricelistPackage, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pkg, err := s.pricelistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperror.NewNotFoundError("Pricelist package")
	}

	pkg.Name = input.Name
	pkg.TableType = input.TableType
	pkg.Unit = input.Unit
	pkg.PricePerUnit = input.PricePerUnit
	pkg.Rounding = input.Rounding
	pkg.GraceMinutes = input.GraceMinutes
	pkg.MinBillMinutes = input.MinBillMinutes
	pkg.IsActive = input.IsActive

	if err := s.pricelistRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}

	s.audit.record(ctx, input.ActorID, enum.AuditPricelistChange,
		fmt.Sprintf("Updated pricelist %q", pkg.Name), &id)
	return pkg, nil
}

// DeletePackage removes a pricing package
func (s *PricelistService) DeletePackage(ctx context.Context, actorID, id uuid.UUID) error {
	pkg, err := s.pricelistRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pkg == nil {
		return apperror.NewNotFoundError("Pricelist package")
	}

	if err := s.pricelistRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, enum.AuditPricelistChange,
		fmt.Sprintf("Deleted pricelist %q", pkg.Name), &id)
	return nil
}

// GetPackage retrieves one pricing package
func (s *PricelistService) GetPackage(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error) {
	pkg, err := s.pricelistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperror.NewNotFoundError("Pricelist package")
	}
	return pkg, nil
}

// ListPackages retrieves pricing packages with filtering
func (s *PricelistService) ListPackages(ctx context.Context, params *pagination.PaginationParams, tableType string, activeOnly bool) ([]entity.PricelistPackage, int64, error) {
	return s.pricelistRepo.List(ctx, params, tableType, activeOnly)
}
