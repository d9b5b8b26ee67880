package service

import (
	"context"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// PurchaseService handles suppliers and stock intake
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// SupplierInput represents the create/update supplier input
type SupplierInput struct {
	Name  string
	Phone *string
	Email *string
}

// CreateSupplier creates a new supplier
func (s *PurchaseService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier modifies a supplier
func (s *PurchaseService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	supplier.Name = input.Name
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier
func (s *PurchaseService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	return s.supplierRepo.Delete(ctx, id)
}

// ListSuppliers retrieves suppliers with pagination
func (s *PurchaseService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.List(ctx, params, search)
}

// PurchaseItemInput is one product line of a purchase request
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Qty       int
	Cost      int64
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	SupplierID   uuid.UUID
	PurchaseDate *time.Time
	Items        []PurchaseItemInput
}

// CreatePurchase records a DRAFT stock purchase
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Purchase must have at least one item")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	var total int64
	items := make([]entity.PurchaseItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Qty <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		total += item.Cost * int64(item.Qty)
		items = append(items, entity.PurchaseItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Cost:      item.Cost,
		})
	}

	purchaseDate := time.Now()
	if input.PurchaseDate != nil {
		purchaseDate = *input.PurchaseDate
	}

	purchase := &entity.Purchase{
		SupplierID:   input.SupplierID,
		PurchaseDate: purchaseDate,
		Total:        total,
		Status:       enum.PurchaseStatusDraft,
		Items:        items,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(ctx, purchase.ID)
}

// ReceivePurchase marks a DRAFT purchase as received and increments stock.
// A purchase can only be received once.
func (s *PurchaseService) ReceivePurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status != enum.PurchaseStatusDraft {
		return nil, apperror.NewConflictError("Purchase has already been received")
	}

	increments := make(map[uuid.UUID]int, len(purchase.Items))
	for _, item := range purchase.Items {
		increments[item.ProductID] += item.Qty
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	purchase.Status = enum.PurchaseStatusReceived
	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// GetPurchase retrieves one purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases retrieves purchases with filtering and pagination
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	return s.purchaseRepo.List(ctx, params)
}
