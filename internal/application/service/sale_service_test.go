package service

import (
	"context"
	"testing"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (m *memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range m.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (m *memProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (m *memProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := m.products[id]
		if !ok || p.Stock < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		m.products[id].Stock -= qty
	}
	return nil, nil
}

func (m *memProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if p, ok := m.products[id]; ok {
			p.Stock += qty
		}
	}
	return nil
}

type memSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (m *memSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	m.sales[sale.ID] = &cp
	return nil
}

func (m *memSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	for _, s := range m.sales {
		if s.InvoiceNo == invoiceNo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	cp := *sale
	m.sales[sale.ID] = &cp
	return nil
}

func (m *memSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}

func (m *memSaleRepo) TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*repository.SaleTotals, error) {
	return &repository.SaleTotals{}, nil
}

func (m *memSaleRepo) DailyRevenue(ctx context.Context, start, end time.Time) ([]repository.DailyRevenuePoint, error) {
	return nil, nil
}

func (m *memSaleRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	return nil, nil
}

type memKdsRepo struct {
	orders []entity.KdsOrder
}

func (m *memKdsRepo) Create(ctx context.Context, order *entity.KdsOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memKdsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.KdsOrder, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			cp := m.orders[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memKdsRepo) Update(ctx context.Context, order *entity.KdsOrder) error {
	for i := range m.orders {
		if m.orders[i].ID == order.ID {
			m.orders[i] = *order
		}
	}
	return nil
}

func (m *memKdsRepo) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enum.KdsStatus) error {
	return nil
}

func (m *memKdsRepo) ListActive(ctx context.Context) ([]entity.KdsOrder, error) {
	return m.orders, nil
}

func (m *memKdsRepo) ListByDate(ctx context.Context, day time.Time) ([]entity.KdsOrder, error) {
	return m.orders, nil
}

type memOutletRepo struct {
	outlet *entity.Outlet
}

func (m *memOutletRepo) Get(ctx context.Context) (*entity.Outlet, error) {
	return m.outlet, nil
}

func (m *memOutletRepo) Save(ctx context.Context, outlet *entity.Outlet) error {
	m.outlet = outlet
	return nil
}

type saleFixture struct {
	svc      *SaleService
	products *memProductRepo
	sales    *memSaleRepo
	kds      *memKdsRepo
	userID   uuid.UUID
	teaID    uuid.UUID
	friesID  uuid.UUID
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	ctx := context.Background()

	f := &saleFixture{
		products: newMemProductRepo(),
		sales:    newMemSaleRepo(),
		kds:      &memKdsRepo{},
		userID:   uuid.New(),
	}

	tea := &entity.Product{
		Name:     "Iced Tea",
		SKU:      "FNB-TEA",
		Price:    15000,
		Stock:    20,
		IsActive: true,
		IsFnb:    true,
	}
	require.NoError(t, f.products.Create(ctx, tea))
	f.teaID = tea.ID

	fries := &entity.Product{
		Name:      "French Fries",
		SKU:       "FNB-FRIES",
		Price:     25000,
		Stock:     5,
		IsActive:  true,
		IsFnb:     true,
		IsKitchen: true,
	}
	require.NoError(t, f.products.Create(ctx, fries))
	f.friesID = fries.ID

	shifts := newMockShiftRepo()
	require.NoError(t, shifts.Create(ctx, &entity.Shift{
		UserID:    f.userID,
		StartTime: time.Now(),
		Status:    enum.ShiftStatusOpen,
	}))

	outlet := &memOutletRepo{outlet: &entity.Outlet{TaxPercent: 10}}

	f.svc = NewSaleService(f.sales, f.products, shifts, f.kds, outlet, nil)
	return f
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("records a taxed sale and decrements stock", func(t *testing.T) {
		f := newSaleFixture(t)

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID: f.userID,
			Items: []SaleItemInput{
				{ProductID: f.teaID, Qty: 2},
				{ProductID: f.friesID, Qty: 1},
			},
			PaymentMethod: enum.PaymentCash,
			Paid:          100000,
		})
		require.NoError(t, err)

		// 2x15000 + 25000 = 55000, plus 10% tax
		assert.Equal(t, int64(55000), sale.SubTotal)
		assert.Equal(t, int64(5500), sale.Tax)
		assert.Equal(t, int64(60500), sale.Total)
		assert.Equal(t, int64(39500), sale.Change)
		assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
		assert.NotEmpty(t, sale.InvoiceNo)

		tea, err := f.products.GetByID(ctx, f.teaID)
		require.NoError(t, err)
		assert.Equal(t, 18, tea.Stock)
	})

	t.Run("kitchen items fan out to the kds queue", func(t *testing.T) {
		f := newSaleFixture(t)

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID: f.userID,
			Items: []SaleItemInput{
				{ProductID: f.teaID, Qty: 1},
				{ProductID: f.friesID, Qty: 2},
			},
			PaymentMethod: enum.PaymentQRIS,
			Paid:          200000,
		})
		require.NoError(t, err)

		require.Len(t, f.kds.orders, 1)
		order := f.kds.orders[0]
		assert.Equal(t, sale.ID, order.SaleID)
		assert.Equal(t, sale.InvoiceNo, order.SaleInvoiceNo)
		assert.Equal(t, enum.KdsStatusNew, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, f.friesID, order.Items[0].ProductID)
		assert.Equal(t, 2, order.Items[0].Qty)
	})

	t.Run("sale with no kitchen items creates no kds ticket", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        f.userID,
			Items:         []SaleItemInput{{ProductID: f.teaID, Qty: 1}},
			PaymentMethod: enum.PaymentCash,
			Paid:          20000,
		})
		require.NoError(t, err)
		assert.Empty(t, f.kds.orders)
	})

	t.Run("requires an open shift", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        uuid.New(),
			Items:         []SaleItemInput{{ProductID: f.teaID, Qty: 1}},
			PaymentMethod: enum.PaymentCash,
			Paid:          20000,
		})
		assert.ErrorIs(t, err, apperror.ErrNoOpenShift)
	})

	t.Run("insufficient stock aborts the sale", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        f.userID,
			Items:         []SaleItemInput{{ProductID: f.friesID, Qty: 6}},
			PaymentMethod: enum.PaymentCash,
			Paid:          500000,
		})
		require.Error(t, err)
		require.True(t, apperror.IsAppError(err))
		assert.Equal(t, 409, apperror.GetAppError(err).Code)

		fries, err := f.products.GetByID(ctx, f.friesID)
		require.NoError(t, err)
		assert.Equal(t, 5, fries.Stock)
	})

	t.Run("underpayment is rejected", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        f.userID,
			Items:         []SaleItemInput{{ProductID: f.teaID, Qty: 1}},
			PaymentMethod: enum.PaymentCash,
			Paid:          10000,
		})
		assert.Error(t, err)
	})

	t.Run("empty items are rejected", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        f.userID,
			PaymentMethod: enum.PaymentCash,
		})
		assert.Error(t, err)
	})
}

func TestVoidSale(t *testing.T) {
	ctx := context.Background()

	t.Run("restores stock and marks the sale voided", func(t *testing.T) {
		f := newSaleFixture(t)

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        f.userID,
			Items:         []SaleItemInput{{ProductID: f.teaID, Qty: 3}},
			PaymentMethod: enum.PaymentCash,
			Paid:          100000,
		})
		require.NoError(t, err)

		voided, err := f.svc.VoidSale(ctx, f.userID, sale.ID, "customer cancelled")
		require.NoError(t, err)
		assert.Equal(t, enum.SaleStatusVoided, voided.Status)

		tea, err := f.products.GetByID(ctx, f.teaID)
		require.NoError(t, err)
		assert.Equal(t, 20, tea.Stock)
	})

	t.Run("voiding twice fails", func(t *testing.T) {
		f := newSaleFixture(t)

		sale, err := f.svc.CreateSale(ctx, &CreateSaleInput{
			UserID:        f.userID,
			Items:         []SaleItemInput{{ProductID: f.teaID, Qty: 1}},
			PaymentMethod: enum.PaymentCash,
			Paid:          20000,
		})
		require.NoError(t, err)

		_, err = f.svc.VoidSale(ctx, f.userID, sale.ID, "")
		require.NoError(t, err)

		_, err = f.svc.VoidSale(ctx, f.userID, sale.ID, "")
		assert.Error(t, err)
	})

	t.Run("unknown sale fails", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.VoidSale(ctx, f.userID, uuid.New(), "")
		assert.Error(t, err)
	})
}
