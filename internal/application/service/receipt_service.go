package service

import (
	"context"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/google/uuid"
)

// ReceiptService renders printable receipt views for sales and ended
// sessions. Receipts are derived from frozen data only.
type ReceiptService struct {
	saleRepo    repository.SaleRepository
	sessionRepo repository.SessionRepository
	outletRepo  repository.OutletRepository
	userRepo    repository.UserRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
	outletRepo repository.OutletRepository,
	userRepo repository.UserRepository,
) *ReceiptService {
	return &ReceiptService{
		saleRepo:    saleRepo,
		sessionRepo: sessionRepo,
		outletRepo:  outletRepo,
		userRepo:    userRepo,
	}
}

// ReceiptOutlet is the receipt letterhead
type ReceiptOutlet struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Header  string `json:"header,omitempty"`
	Footer  string `json:"footer,omitempty"`
}

// ReceiptLine is one priced line on a receipt
type ReceiptLine struct {
	Name     string `json:"name"`
	Qty      int    `json:"qty"`
	Price    int64  `json:"price"`
	Discount int64  `json:"discount,omitempty"`
	Amount   int64  `json:"amount"`
}

// SaleReceipt is the printable view of a completed sale
type SaleReceipt struct {
	Outlet        ReceiptOutlet      `json:"outlet"`
	InvoiceNo     string             `json:"invoice_no"`
	SaleDate      time.Time          `json:"sale_date"`
	Cashier       string             `json:"cashier"`
	CustomerName  *string            `json:"customer_name,omitempty"`
	Lines         []ReceiptLine      `json:"lines"`
	SubTotal      int64              `json:"sub_total"`
	Discount      int64              `json:"discount"`
	Tax           int64              `json:"tax"`
	Total         int64              `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Paid          int64              `json:"paid"`
	Change        int64              `json:"change"`
}

// SessionReceipt is the printable view of an ended table session
type SessionReceipt struct {
	Outlet      ReceiptOutlet            `json:"outlet"`
	TableName   string                   `json:"table_name"`
	PackageName string                   `json:"package_name"`
	StartedAt   time.Time                `json:"started_at"`
	EndedAt     time.Time                `json:"ended_at"`
	DurationMs  int64                    `json:"duration_ms"`
	Package     entity.PricelistSnapshot `json:"package"`
	TimeCharge  int64                    `json:"time_charge"`
	FnbLines    []ReceiptLine            `json:"fnb_lines"`
	FnbCharge   int64                    `json:"fnb_charge"`
	TotalCharge int64                    `json:"total_charge"`
	Payment     *enum.PaymentMethod      `json:"payment,omitempty"`
}

func (s *ReceiptService) outletHeader(ctx context.Context) ReceiptOutlet {
	header := ReceiptOutlet{}
	if outlet, err := s.outletRepo.Get(ctx); err == nil && outlet != nil {
		header = ReceiptOutlet{
			Name:    outlet.Name,
			Address: outlet.Address,
			Phone:   outlet.Phone,
			Header:  outlet.ReceiptHeader,
			Footer:  outlet.ReceiptFooter,
		}
	}
	return header
}

// SaleReceipt builds the receipt for a completed sale
func (s *ReceiptService) SaleReceipt(ctx context.Context, saleID uuid.UUID) (*SaleReceipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status != enum.SaleStatusCompleted {
		return nil, apperror.NewConflictError("Only completed sales have receipts")
	}

	cashier := ""
	if user, err := s.userRepo.GetByID(ctx, sale.UserID); err == nil && user != nil {
		cashier = user.Name
	}

	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := item.Product.Name
		lines = append(lines, ReceiptLine{
			Name:     name,
			Qty:      item.Qty,
			Price:    item.Price,
			Discount: item.Discount,
			Amount:   item.Price*int64(item.Qty) - item.Discount,
		})
	}

	return &SaleReceipt{
		Outlet:        s.outletHeader(ctx),
		InvoiceNo:     sale.InvoiceNo,
		SaleDate:      sale.SaleDate,
		Cashier:       cashier,
		CustomerName:  sale.CustomerName,
		Lines:         lines,
		SubTotal:      sale.SubTotal,
		Discount:      sale.Discount,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Paid:          sale.Paid,
		Change:        sale.Change,
	}, nil
}

// SessionReceipt builds the receipt for an ended session from its frozen
// snapshot and itemized tab
func (s *ReceiptService) SessionReceipt(ctx context.Context, sessionID uuid.UUID) (*SessionReceipt, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if session.Status != enum.SessionStatusEnded || session.EndedAt == nil {
		return nil, apperror.NewConflictError("Only ended sessions have receipts")
	}

	lines := make([]ReceiptLine, 0, len(session.FnbItems))
	for _, item := range session.FnbItems {
		lines = append(lines, ReceiptLine{
			Name:   item.Name,
			Qty:    item.Qty,
			Price:  item.Price,
			Amount: item.Price * int64(item.Qty),
		})
	}

	return &SessionReceipt{
		Outlet:      s.outletHeader(ctx),
		TableName:   session.TableName,
		PackageName: session.Package.Name,
		StartedAt:   session.StartedAt,
		EndedAt:     *session.EndedAt,
		DurationMs:  session.DurationMs,
		Package:     session.Package,
		TimeCharge:  session.TimeCharge,
		FnbLines:    lines,
		FnbCharge:   session.FnbCharge,
		TotalCharge: session.TotalCharge,
		Payment:     session.Payment,
	}, nil
}
