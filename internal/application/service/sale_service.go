package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/ardiwinata/cuepos/pkg/utils"
	"github.com/google/uuid"
)

// SaleService handles POS transactions. A sale requires an open shift,
// decrements stock atomically and fans kitchen items out to the KDS queue.
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	shiftRepo   repository.ShiftRepository
	kdsRepo     repository.KdsRepository
	outletRepo  repository.OutletRepository
	audit       *AuditTrail
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	shiftRepo repository.ShiftRepository,
	kdsRepo repository.KdsRepository,
	outletRepo repository.OutletRepository,
	audit *AuditTrail,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		shiftRepo:   shiftRepo,
		kdsRepo:     kdsRepo,
		outletRepo:  outletRepo,
		audit:       audit,
	}
}

// SaleItemInput is one line of a sale request
type SaleItemInput struct {
	ProductID uuid.UUID
	Qty       int
	Discount  int64
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID        uuid.UUID
	CustomerName  *string
	Items         []SaleItemInput
	Discount      int64
	PaymentMethod enum.PaymentMethod
	Paid          int64
	Notes         *string
}

// CreateSale records a POS transaction
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must have at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	shift, err := s.shiftRepo.GetOpenByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Qty <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subTotal int64
	saleItems := make([]entity.SaleItem, 0, len(input.Items))
	decrements := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			return nil, apperror.NewNotFoundError("Product")
		}
		subTotal += product.Price*int64(item.Qty) - item.Discount
		saleItems = append(saleItems, entity.SaleItem{
			ProductID: product.ID,
			Qty:       item.Qty,
			Price:     product.Price,
			Discount:  item.Discount,
		})
		decrements[product.ID] += item.Qty
	}

	var tax int64
	if outlet, err := s.outletRepo.Get(ctx); err == nil && outlet != nil && outlet.TaxPercent > 0 {
		tax = int64(float64(subTotal-input.Discount) * outlet.TaxPercent / 100)
	}

	total := subTotal - input.Discount + tax
	if input.Paid < total {
		return nil, apperror.NewBadRequestError("Paid amount is less than the total")
	}

	failed, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, apperror.NewConflictError("Insufficient stock for one or more items")
	}

	sale := &entity.Sale{
		UserID:        input.UserID,
		ShiftID:       shift.ID,
		CustomerName:  input.CustomerName,
		InvoiceNo:     utils.GenerateInvoiceNo("INV"),
		SaleDate:      time.Now(),
		SubTotal:      subTotal,
		Discount:      input.Discount,
		Tax:           tax,
		Total:         total,
		PaymentMethod: input.PaymentMethod,
		Paid:          input.Paid,
		Change:        input.Paid - total,
		Status:        enum.SaleStatusCompleted,
		Notes:         input.Notes,
		Items:         saleItems,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// put the stock back, the sale row never landed
		if incErr := s.productRepo.AtomicIncrementBatch(ctx, decrements); incErr != nil {
			return nil, fmt.Errorf("create sale failed: %w (stock restore also failed: %v)", err, incErr)
		}
		return nil, err
	}

	if err := s.fanOutKitchen(ctx, sale, byID); err != nil {
		return nil, err
	}

	return s.saleRepo.GetByID(ctx, sale.ID)
}

// fanOutKitchen creates a KDS ticket for the kitchen items of a sale
func (s *SaleService) fanOutKitchen(ctx context.Context, sale *entity.Sale, products map[uuid.UUID]entity.Product) error {
	var kitchenItems []entity.KdsItem
	for _, item := range sale.Items {
		if products[item.ProductID].IsKitchen {
			kitchenItems = append(kitchenItems, entity.KdsItem{
				ProductID: item.ProductID,
				Qty:       item.Qty,
				Status:    enum.KdsStatusNew,
			})
		}
	}
	if len(kitchenItems) == 0 {
		return nil
	}

	order := &entity.KdsOrder{
		SaleID:        sale.ID,
		SaleInvoiceNo: sale.InvoiceNo,
		Status:        enum.KdsStatusNew,
		Items:         kitchenItems,
	}
	return s.kdsRepo.Create(ctx, order)
}

// VoidSale cancels a completed sale and restores its stock
func (s *SaleService) VoidSale(ctx context.Context, actorID, id uuid.UUID, reason string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusVoided {
		return nil, apperror.NewConflictError("Sale is already voided")
	}

	increments := make(map[uuid.UUID]int, len(sale.Items))
	for _, item := range sale.Items {
		increments[item.ProductID] += item.Qty
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	sale.Status = enum.SaleStatusVoided
	if reason != "" {
		note := reason
		sale.Notes = &note
	}
	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actorID, enum.AuditSaleVoid,
		fmt.Sprintf("Voided sale %s", sale.InvoiceNo), &sale.ID)
	return sale, nil
}

// GetSale retrieves one sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}
