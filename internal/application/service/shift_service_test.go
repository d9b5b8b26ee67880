package service

import (
	"context"
	"testing"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockShiftRepo struct {
	shifts map[uuid.UUID]*entity.Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[uuid.UUID]*entity.Shift)}
}

func (m *mockShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	cp := *shift
	m.shifts[shift.ID] = &cp
	return nil
}

func (m *mockShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, ok := m.shifts[id]
	if !ok {
		return nil, nil
	}
	cp := *shift
	return &cp, nil
}

func (m *mockShiftRepo) GetOpenByUser(ctx context.Context, userID uuid.UUID) (*entity.Shift, error) {
	for _, shift := range m.shifts {
		if shift.UserID == userID && shift.Status == enum.ShiftStatusOpen {
			cp := *shift
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockShiftRepo) GetAnyOpen(ctx context.Context) (*entity.Shift, error) {
	for _, shift := range m.shifts {
		if shift.Status == enum.ShiftStatusOpen {
			cp := *shift
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	cp := *shift
	m.shifts[shift.ID] = &cp
	return nil
}

func (m *mockShiftRepo) List(ctx context.Context, params *pagination.PaginationParams, userID *uuid.UUID) ([]entity.Shift, int64, error) {
	var out []entity.Shift
	for _, shift := range m.shifts {
		if userID == nil || shift.UserID == *userID {
			out = append(out, *shift)
		}
	}
	return out, int64(len(out)), nil
}

type mockMovementRepo struct {
	movements []entity.CashMovement
}

func (m *mockMovementRepo) Create(ctx context.Context, movement *entity.CashMovement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	m.movements = append(m.movements, *movement)
	return nil
}

func (m *mockMovementRepo) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.CashMovement, error) {
	var out []entity.CashMovement
	for _, mv := range m.movements {
		if mv.ShiftID == shiftID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *mockMovementRepo) TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*repository.CashMovementTotals, error) {
	totals := &repository.CashMovementTotals{}
	for _, mv := range m.movements {
		if mv.ShiftID != shiftID {
			continue
		}
		if mv.Type == enum.CashMovementIn {
			totals.In += mv.Amount
		} else {
			totals.Out += mv.Amount
		}
	}
	return totals, nil
}

type mockSaleRepo struct {
	totals repository.SaleTotals
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *entity.Sale) error { return nil }
func (m *mockSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return nil, nil
}
func (m *mockSaleRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error) {
	return nil, nil
}
func (m *mockSaleRepo) Update(ctx context.Context, sale *entity.Sale) error { return nil }
func (m *mockSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return nil, 0, nil
}
func (m *mockSaleRepo) TotalsByShift(ctx context.Context, shiftID uuid.UUID) (*repository.SaleTotals, error) {
	cp := m.totals
	return &cp, nil
}
func (m *mockSaleRepo) DailyRevenue(ctx context.Context, start, end time.Time) ([]repository.DailyRevenuePoint, error) {
	return nil, nil
}
func (m *mockSaleRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.ProductSalesRow, error) {
	return nil, nil
}

type mockSessionRepo struct {
	totals repository.SessionTotals
}

func (m *mockSessionRepo) Save(ctx context.Context, session *entity.TableSession) error { return nil }
func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	return nil, nil
}
func (m *mockSessionRepo) ListOpen(ctx context.Context) ([]entity.TableSession, error) {
	return nil, nil
}
func (m *mockSessionRepo) ListEnded(ctx context.Context, params *repository.SessionFilterParams) ([]entity.TableSession, int64, error) {
	return nil, 0, nil
}
func (m *mockSessionRepo) TotalsEndedBetween(ctx context.Context, start, end time.Time) (*repository.SessionTotals, error) {
	cp := m.totals
	return &cp, nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (m *mockUserRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	return nil, 0, nil
}

type shiftFixture struct {
	svc       *ShiftService
	shifts    *mockShiftRepo
	movements *mockMovementRepo
	sales     *mockSaleRepo
	sessions  *mockSessionRepo
	userID    uuid.UUID
}

func newShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()

	users := newMockUserRepo()
	cashier := &entity.User{
		ID:       uuid.New(),
		Name:     "Dewi",
		Email:    "dewi@cuepos.local",
		Role:     enum.RoleCashier,
		IsActive: true,
	}
	require.NoError(t, users.Create(context.Background(), cashier))

	f := &shiftFixture{
		shifts:    newMockShiftRepo(),
		movements: &mockMovementRepo{},
		sales:     &mockSaleRepo{},
		sessions:  &mockSessionRepo{},
		userID:    cashier.ID,
	}
	f.svc = NewShiftService(f.shifts, f.movements, f.sales, f.sessions, users, nil)
	return f
}

func TestOpenShift(t *testing.T) {
	ctx := context.Background()

	t.Run("opens with float", func(t *testing.T) {
		f := newShiftFixture(t)

		shift, err := f.svc.OpenShift(ctx, f.userID, 500000)
		require.NoError(t, err)
		assert.Equal(t, enum.ShiftStatusOpen, shift.Status)
		assert.Equal(t, int64(500000), shift.StartCash)
		assert.Equal(t, "Dewi", shift.UserName)
	})

	t.Run("second open shift for the same user fails", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.OpenShift(ctx, f.userID, 500000)
		require.NoError(t, err)

		_, err = f.svc.OpenShift(ctx, f.userID, 100000)
		assert.ErrorIs(t, err, apperror.ErrShiftAlreadyOpen)
	})

	t.Run("negative float is rejected", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.OpenShift(ctx, f.userID, -1)
		assert.Error(t, err)
	})
}

func TestRecordCashMovement(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an open shift", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.RecordCashMovement(ctx, f.userID, enum.CashMovementIn, 50000, "change refill")
		assert.ErrorIs(t, err, apperror.ErrNoOpenShift)
	})

	t.Run("records against the open shift", func(t *testing.T) {
		f := newShiftFixture(t)

		shift, err := f.svc.OpenShift(ctx, f.userID, 500000)
		require.NoError(t, err)

		mv, err := f.svc.RecordCashMovement(ctx, f.userID, enum.CashMovementOut, 75000, "supplier payment")
		require.NoError(t, err)
		assert.Equal(t, shift.ID, mv.ShiftID)
		assert.Equal(t, enum.CashMovementOut, mv.Type)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.OpenShift(ctx, f.userID, 0)
		require.NoError(t, err)

		_, err = f.svc.RecordCashMovement(ctx, f.userID, enum.CashMovementIn, 0, "")
		assert.Error(t, err)
	})
}

func TestCloseShift(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciles cash against sales, sessions and movements", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.OpenShift(ctx, f.userID, 500000)
		require.NoError(t, err)

		f.sales.totals = repository.SaleTotals{
			Cash:     300000,
			Qris:     150000,
			Transfer: 50000,
			Total:    500000,
			Count:    8,
		}
		f.sessions.totals = repository.SessionTotals{
			Total: 225000,
			Cash:  125000,
			Count: 3,
		}
		_, err = f.svc.RecordCashMovement(ctx, f.userID, enum.CashMovementIn, 100000, "change refill")
		require.NoError(t, err)
		_, err = f.svc.RecordCashMovement(ctx, f.userID, enum.CashMovementOut, 40000, "ice delivery")
		require.NoError(t, err)

		// 500000 + 300000 + 125000 + 100000 - 40000
		expected := int64(985000)
		summary, err := f.svc.CloseShift(ctx, f.userID, 980000, nil)
		require.NoError(t, err)

		assert.Equal(t, expected, summary.ExpectedCash)
		assert.Equal(t, enum.ShiftStatusClosed, summary.Shift.Status)
		require.NotNil(t, summary.Shift.Difference)
		assert.Equal(t, int64(-5000), *summary.Shift.Difference)
		assert.Equal(t, int64(300000), summary.Shift.CashSales)
		assert.Equal(t, int64(225000), summary.Shift.SessionSales)
		assert.Equal(t, int64(725000), summary.Shift.TotalSales)
		require.NotNil(t, summary.Shift.EndCash)
		assert.Equal(t, int64(980000), *summary.Shift.EndCash)
	})

	t.Run("close without an open shift fails", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.CloseShift(ctx, f.userID, 0, nil)
		assert.ErrorIs(t, err, apperror.ErrNoOpenShift)
	})

	t.Run("closed shift cannot be closed again", func(t *testing.T) {
		f := newShiftFixture(t)

		_, err := f.svc.OpenShift(ctx, f.userID, 100000)
		require.NoError(t, err)
		_, err = f.svc.CloseShift(ctx, f.userID, 100000, nil)
		require.NoError(t, err)

		_, err = f.svc.CloseShift(ctx, f.userID, 100000, nil)
		assert.ErrorIs(t, err, apperror.ErrNoOpenShift)
	})
}
