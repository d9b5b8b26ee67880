package service

import (
	"context"
	"fmt"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/ardiwinata/cuepos/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	audit        *AuditTrail
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	audit *AuditTrail,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		audit:        audit,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	ActorID    uuid.UUID
	CategoryID *uuid.UUID
	UnitID     *uuid.UUID
	SKU        string
	Barcode    *string
	Name       string
	Price      int64
	Cost       int64
	Stock      int
	MinStock   int
	IsKitchen  bool
	IsFnb      bool
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product SKU already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}
	if input.UnitID != nil {
		unit, err := s.unitRepo.GetByID(ctx, *input.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, apperror.NewNotFoundError("Unit")
		}
	}

	product := &entity.Product{
		CategoryID: input.CategoryID,
		UnitID:     input.UnitID,
		SKU:        sku,
		Barcode:    input.Barcode,
		Name:       input.Name,
		Price:      input.Price,
		Cost:       input.Cost,
		Stock:      input.Stock,
		MinStock:   input.MinStock,
		IsActive:   true,
		IsKitchen:  input.IsKitchen,
		IsFnb:      input.IsFnb,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.audit.record(ctx, input.ActorID, enum.AuditProductCreate,
		fmt.Sprintf("Created product %q", product.Name), &product.ID)

	return s.productRepo.GetByID(ctx, product.ID)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ActorID    uuid.UUID
	CategoryID *uuid.UUID
	UnitID     *uuid.UUID
	Barcode    *string
	Name       *string
	Price      *int64
	Cost       *int64
	Stock      *int
	MinStock   *int
	IsActive   *bool
	IsKitchen  *bool
	IsFnb      *bool
}

// UpdateProduct modifies an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.UnitID != nil {
		product.UnitID = input.UnitID
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Cost != nil {
		product.Cost = *input.Cost
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsKitchen != nil {
		product.IsKitchen = *input.IsKitchen
	}
	if input.IsFnb != nil {
		product.IsFnb = *input.IsFnb
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.audit.record(ctx, input.ActorID, enum.AuditProductUpdate,
		fmt.Sprintf("Updated product %q", product.Name), &product.ID)

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, actorID, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, enum.AuditProductDelete,
		fmt.Sprintf("Deleted product %q", product.Name), &id)
	return nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by barcode for POS scanning
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts retrieves products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// GetLowStockProducts retrieves products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
