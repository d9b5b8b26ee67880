package billing

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually driven clock
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// stubCatalog serves products from a map
type stubCatalog struct {
	mu       sync.Mutex
	products map[uuid.UUID]entity.Product
}

func (s *stubCatalog) GetFnbProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (s *stubCatalog) setPrice(id uuid.UUID, price int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[id]
	p.Price = price
	s.products[id] = p
}

// stubPricelists serves packages from a map
type stubPricelists struct {
	packages map[uuid.UUID]entity.PricelistPackage
}

func (s *stubPricelists) GetPackage(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error) {
	p, ok := s.packages[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

// memStore records persisted sessions and tables
type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]entity.TableSession
	tables   map[uuid.UUID]entity.BilliardTable
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[uuid.UUID]entity.TableSession),
		tables:   make(map[uuid.UUID]entity.BilliardTable),
	}
}

func (m *memStore) SaveSession(ctx context.Context, s *entity.TableSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s.Clone()
	return nil
}

func (m *memStore) SaveTable(ctx context.Context, t *entity.BilliardTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[t.ID] = *t
	return nil
}

type fixture struct {
	ledger    *Ledger
	clock     *testClock
	catalog   *stubCatalog
	store     *memStore
	table     entity.BilliardTable
	vipTable  entity.BilliardTable
	pkg       entity.PricelistPackage
	vipPkg    entity.PricelistPackage
	snackID   uuid.UUID
	inactive  entity.PricelistPackage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	snackID := uuid.New()
	f := &fixture{
		clock:   newTestClock(),
		store:   newMemStore(),
		snackID: snackID,
		table: entity.BilliardTable{
			ID:        uuid.New(),
			Name:      "Table 7",
			TableType: enum.TableTypePool,
			Group:     "Main Hall",
			IsActive:  true,
			Status:    enum.TableStatusFree,
		},
		vipTable: entity.BilliardTable{
			ID:        uuid.New(),
			Name:      "VIP 1",
			TableType: enum.TableTypeVIP,
			Group:     "VIP Area",
			IsActive:  true,
			Status:    enum.TableStatusFree,
		},
		pkg: entity.PricelistPackage{
			ID:             uuid.New(),
			Name:           "Regular Pool - Per Hour",
			TableType:      enum.TableTypePool,
			Unit:           enum.PricingUnitPerHour,
			PricePerUnit:   50000,
			Rounding:       enum.RoundingUp15,
			GraceMinutes:   2,
			MinBillMinutes: 30,
			IsActive:       true,
		},
		vipPkg: entity.PricelistPackage{
			ID:             uuid.New(),
			Name:           "VIP Experience - Per Hour",
			TableType:      enum.TableTypeVIP,
			Unit:           enum.PricingUnitPerHour,
			PricePerUnit:   75000,
			Rounding:       enum.RoundingUp10,
			GraceMinutes:   0,
			MinBillMinutes: 60,
			IsActive:       true,
		},
		inactive: entity.PricelistPackage{
			ID:           uuid.New(),
			Name:         "Retired Promo",
			TableType:    enum.TableTypePool,
			Unit:         enum.PricingUnitPerHour,
			PricePerUnit: 10000,
			Rounding:     enum.RoundingNone,
			IsActive:     false,
		},
	}

	f.catalog = &stubCatalog{products: map[uuid.UUID]entity.Product{
		snackID: {
			ID:       snackID,
			Name:     "Iced Tea",
			Price:    15000,
			IsActive: true,
			IsFnb:    true,
		},
	}}

	pricelists := &stubPricelists{packages: map[uuid.UUID]entity.PricelistPackage{
		f.pkg.ID:      f.pkg,
		f.vipPkg.ID:   f.vipPkg,
		f.inactive.ID: f.inactive,
	}}

	f.ledger = NewLedger(f.clock, f.catalog, pricelists, f.store, zerolog.Nop())
	f.ledger.Restore([]entity.BilliardTable{f.table, f.vipTable}, nil)
	return f
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("starts on a free table and freezes the package", func(t *testing.T) {
		f := newFixture(t)

		s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.SessionStatusRunning, s.Status)
		assert.Equal(t, f.clock.Now(), s.StartedAt)
		assert.Equal(t, f.pkg.ID, s.Package.PackageID)
		assert.Equal(t, int64(50000), s.Package.PricePerUnit)

		table, err := f.ledger.Table(f.table.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.TableStatusRunning, table.Status)
		require.NotNil(t, table.CurrentSessionID)
		assert.Equal(t, s.ID, *table.CurrentSessionID)
	})

	t.Run("busy table is rejected and no second session appears", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)

		_, err = f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		assert.ErrorIs(t, err, ErrTableBusy)
		assert.Len(t, f.ledger.LiveSessions(), 1)
	})

	t.Run("package scoped to another table type is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.StartSession(ctx, f.table.ID, f.vipPkg.ID)
		assert.ErrorIs(t, err, ErrNoActivePricelist)
	})

	t.Run("inactive package is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.StartSession(ctx, f.table.ID, f.inactive.ID)
		assert.ErrorIs(t, err, ErrNoActivePricelist)
	})

	t.Run("inactive table is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.RegisterTable(&entity.BilliardTable{
			ID:        f.table.ID,
			Name:      f.table.Name,
			TableType: f.table.TableType,
			IsActive:  false,
		})

		_, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		assert.ErrorIs(t, err, ErrTableInactive)
	})

	t.Run("unknown table is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.ledger.StartSession(ctx, uuid.New(), f.pkg.ID)
		assert.ErrorIs(t, err, ErrTableNotFound)
	})
}

func TestPauseResume(t *testing.T) {
	ctx := context.Background()

	t.Run("pause excludes exactly the paused interval", func(t *testing.T) {
		f := newFixture(t)

		s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		require.NoError(t, err)

		f.clock.Advance(30 * time.Minute)
		_, err = f.ledger.PauseSession(ctx, s.ID)
		require.NoError(t, err)

		table, _ := f.ledger.Table(f.table.ID)
		assert.Equal(t, enum.TableStatusPaused, table.Status)

		f.clock.Advance(10 * time.Minute)
		resumed, err := f.ledger.ResumeSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, resumed.TotalPauseDuration)
		assert.Nil(t, resumed.PausedAt)

		f.clock.Advance(20 * time.Minute)
		live, err := f.ledger.Session(s.ID)
		require.NoError(t, err)
		// 60 wall minutes minus the 10-minute pause
		assert.Equal(t, 50*time.Minute, BillableElapsed(live, f.clock.Now()))
	})

	t.Run("pause while paused fails", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.PauseSession(ctx, s.ID)
		require.NoError(t, err)

		_, err = f.ledger.PauseSession(ctx, s.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("resume while running fails", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.ResumeSession(ctx, s.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("repeated pauses accumulate", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		for i := 0; i < 3; i++ {
			f.clock.Advance(10 * time.Minute)
			_, err := f.ledger.PauseSession(ctx, s.ID)
			require.NoError(t, err)
			f.clock.Advance(5 * time.Minute)
			_, err = f.ledger.ResumeSession(ctx, s.ID)
			require.NoError(t, err)
		}

		live, err := f.ledger.Session(s.ID)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, live.TotalPauseDuration)
		// 45 wall minutes minus 15 paused
		assert.Equal(t, 30*time.Minute, BillableElapsed(live, f.clock.Now()))
	})
}

func TestAttachCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots price and merges quantity", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.AttachCharge(ctx, s.ID, f.snackID, 2)
		require.NoError(t, err)

		// catalog price change must not touch the attached line
		f.catalog.setPrice(f.snackID, 99000)

		updated, err := f.ledger.AttachCharge(ctx, s.ID, f.snackID, 1)
		require.NoError(t, err)
		require.Len(t, updated.FnbItems, 1)
		assert.Equal(t, 3, updated.FnbItems[0].Qty)
		assert.Equal(t, int64(15000), updated.FnbItems[0].Price)
	})

	t.Run("unknown product fails", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.AttachCharge(ctx, s.ID, uuid.New(), 1)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("attach while paused is allowed", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.PauseSession(ctx, s.ID)
		require.NoError(t, err)

		updated, err := f.ledger.AttachCharge(ctx, s.ID, f.snackID, 1)
		require.NoError(t, err)
		assert.Len(t, updated.FnbItems, 1)
	})

	t.Run("attach after stop fails", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.StopSession(ctx, s.ID, nil)
		require.NoError(t, err)

		_, err = f.ledger.AttachCharge(ctx, s.ID, f.snackID, 1)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestStopSession(t *testing.T) {
	ctx := context.Background()

	t.Run("vip scenario: minimum floor plus fnb", func(t *testing.T) {
		f := newFixture(t)

		s, err := f.ledger.StartSession(ctx, f.vipTable.ID, f.vipPkg.ID)
		require.NoError(t, err)

		_, err = f.ledger.AttachCharge(ctx, s.ID, f.snackID, 2)
		require.NoError(t, err)

		f.clock.Advance(50 * time.Minute)
		cash := enum.PaymentCash
		final, err := f.ledger.StopSession(ctx, s.ID, &cash)
		require.NoError(t, err)

		assert.Equal(t, enum.SessionStatusEnded, final.Status)
		assert.Equal(t, int64(75000), final.TimeCharge)
		assert.Equal(t, int64(30000), final.FnbCharge)
		assert.Equal(t, int64(105000), final.TotalCharge)
		require.NotNil(t, final.EndedAt)
		assert.Equal(t, f.clock.Now(), *final.EndedAt)
		require.NotNil(t, final.Payment)
		assert.Equal(t, enum.PaymentCash, *final.Payment)

		table, _ := f.ledger.Table(f.vipTable.ID)
		assert.Equal(t, enum.TableStatusFree, table.Status)
		assert.Nil(t, table.CurrentSessionID)
	})

	t.Run("stop while paused excludes the open pause", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		f.clock.Advance(40 * time.Minute)
		_, err := f.ledger.PauseSession(ctx, s.ID)
		require.NoError(t, err)

		f.clock.Advance(25 * time.Minute)
		final, err := f.ledger.StopSession(ctx, s.ID, nil)
		require.NoError(t, err)

		// 65 wall minutes, 25 of them inside the never-resumed pause
		assert.Equal(t, (40 * time.Minute).Milliseconds(), final.DurationMs)
		assert.Equal(t, 25*time.Minute, final.TotalPauseDuration)
		assert.Nil(t, final.PausedAt)
	})

	t.Run("double stop fails loudly", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		_, err := f.ledger.StopSession(ctx, s.ID, nil)
		require.NoError(t, err)

		_, err = f.ledger.StopSession(ctx, s.ID, nil)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("ended session is persisted with frozen totals", func(t *testing.T) {
		f := newFixture(t)

		s, _ := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
		f.clock.Advance(65 * time.Minute)
		final, err := f.ledger.StopSession(ctx, s.ID, nil)
		require.NoError(t, err)

		f.store.mu.Lock()
		stored, ok := f.store.sessions[s.ID]
		f.store.mu.Unlock()
		require.True(t, ok)
		assert.Equal(t, enum.SessionStatusEnded, stored.Status)
		assert.Equal(t, final.TotalCharge, stored.TotalCharge)
	})
}

func TestResourceSessionConsistency(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Throughout a full lifecycle, a table is FREE exactly when it has no
	// session reference and no live session exists for it.
	checkConsistent := func() {
		t.Helper()
		for _, table := range f.ledger.Tables() {
			var live int
			for _, s := range f.ledger.LiveSessions() {
				if s.TableID == table.ID {
					live++
				}
			}
			if table.Status == enum.TableStatusFree {
				assert.Nil(t, table.CurrentSessionID)
				assert.Zero(t, live)
			} else {
				assert.NotNil(t, table.CurrentSessionID)
				assert.Equal(t, 1, live)
			}
		}
	}

	checkConsistent()
	s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
	require.NoError(t, err)
	checkConsistent()
	_, err = f.ledger.PauseSession(ctx, s.ID)
	require.NoError(t, err)
	checkConsistent()
	_, err = f.ledger.ResumeSession(ctx, s.ID)
	require.NoError(t, err)
	checkConsistent()
	_, err = f.ledger.StopSession(ctx, s.ID, nil)
	require.NoError(t, err)
	checkConsistent()
}

func TestChargeMonotonicity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
	require.NoError(t, err)

	var prev int64
	for i := 0; i < 120; i++ {
		f.clock.Advance(time.Minute)
		live, err := f.ledger.Session(s.ID)
		require.NoError(t, err)
		bill := ComputeBill(live, f.clock.Now())
		assert.GreaterOrEqual(t, bill.TotalCharge, prev)
		prev = bill.TotalCharge
	}

	final, err := f.ledger.StopSession(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, final.TotalCharge, prev)

	// frozen forever: recomputing the ended record at any later time yields
	// the stored totals
	f.clock.Advance(3 * time.Hour)
	assert.Equal(t, final.TotalCharge, final.TimeCharge+final.FnbCharge)
}

func TestRemoveTable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.ledger.StartSession(ctx, f.table.ID, f.pkg.ID)
	require.NoError(t, err)

	err = f.ledger.RemoveTable(f.table.ID)
	assert.ErrorIs(t, err, ErrTableBusy)

	_, err = f.ledger.StopSession(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.NoError(t, f.ledger.RemoveTable(f.table.ID))
}

func TestRestoreResetsOrphanedTables(t *testing.T) {
	f := newFixture(t)

	orphanID := uuid.New()
	table := entity.BilliardTable{
		ID:               uuid.New(),
		Name:             "Table 9",
		TableType:        enum.TableTypePool,
		IsActive:         true,
		Status:           enum.TableStatusRunning,
		CurrentSessionID: &orphanID,
	}

	ledger := NewLedger(f.clock, f.catalog, &stubPricelists{}, nil, zerolog.Nop())
	ledger.Restore([]entity.BilliardTable{table}, nil)

	restored, err := ledger.Table(table.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TableStatusFree, restored.Status)
	assert.Nil(t, restored.CurrentSessionID)
}

// The constructor tags its own component field, so callers pass an untagged
// logger and lines carry the key exactly once.
func TestLedgerTagsItsOwnLogger(t *testing.T) {
	var buf bytes.Buffer
	f := newFixture(t)

	ledger := NewLedger(f.clock, f.catalog, &stubPricelists{}, nil, zerolog.New(&buf))
	ledger.Restore([]entity.BilliardTable{f.table}, nil)

	line, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, 1, strings.Count(line, `"component"`))
	assert.Contains(t, line, `"component":"session_ledger"`)
}
