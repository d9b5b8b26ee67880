package billing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CatalogLookup resolves products for attach-charge. The returned product's
// price is snapshotted onto the session at attach time.
type CatalogLookup interface {
	GetFnbProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
}

// PricelistLookup resolves the pricing package a session starts with.
type PricelistLookup interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error)
}

// Store persists lifecycle transitions. The ledger is the in-memory source
// of truth for live sessions; the store keeps ended sessions as durable
// history and lets open sessions survive a restart.
type Store interface {
	SaveSession(ctx context.Context, session *entity.TableSession) error
	SaveTable(ctx context.Context, table *entity.BilliardTable) error
}

// Ledger owns every billiard table and its live session. It is the only
// component allowed to change table occupancy and session state, and it
// changes both together under one lock, so readers never observe an
// occupied table without a session or vice versa.
type Ledger struct {
	mu       sync.Mutex
	tables   map[uuid.UUID]*entity.BilliardTable
	sessions map[uuid.UUID]*entity.TableSession // live sessions only

	clock      Clock
	catalog    CatalogLookup
	pricelists PricelistLookup
	store      Store
	log        zerolog.Logger
}

// NewLedger creates an empty session ledger
func NewLedger(clock Clock, catalog CatalogLookup, pricelists PricelistLookup, store Store, log zerolog.Logger) *Ledger {
	return &Ledger{
		tables:     make(map[uuid.UUID]*entity.BilliardTable),
		sessions:   make(map[uuid.UUID]*entity.TableSession),
		clock:      clock,
		catalog:    catalog,
		pricelists: pricelists,
		store:      store,
		log:        log.With().Str("component", "session_ledger").Logger(),
	}
}

// Restore loads tables and still-open sessions, typically at boot. Tables
// referencing a session that is not live anymore are reset to FREE.
func (l *Ledger) Restore(tables []entity.BilliardTable, sessions []entity.TableSession) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range sessions {
		s := sessions[i]
		if s.IsLive() {
			l.sessions[s.ID] = &s
		}
	}

	for i := range tables {
		t := tables[i]
		if t.CurrentSessionID != nil {
			if _, ok := l.sessions[*t.CurrentSessionID]; !ok {
				t.Status = enum.TableStatusFree
				t.CurrentSessionID = nil
			}
		}
		l.tables[t.ID] = &t
	}

	l.log.Info().
		Int("tables", len(l.tables)).
		Int("open_sessions", len(l.sessions)).
		Msg("ledger state restored")
}

// StartSession opens a session on a FREE, active table using the given
// pricelist package. The package must be active and scoped to the table's
// type; a copy of it is frozen into the session.
func (l *Ledger) StartSession(ctx context.Context, tableID, packageID uuid.UUID) (*entity.TableSession, error) {
	pkg, err := l.pricelists.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	table, ok := l.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	if !table.IsActive {
		return nil, ErrTableInactive
	}
	if table.Status != enum.TableStatusFree || table.CurrentSessionID != nil {
		return nil, ErrTableBusy
	}
	if pkg == nil || !pkg.IsActive || pkg.TableType != table.TableType {
		return nil, ErrNoActivePricelist
	}

	now := l.clock.Now()
	session := &entity.TableSession{
		ID:        uuid.New(),
		TableID:   table.ID,
		TableName: table.Name,
		StartedAt: now,
		Package:   pkg.Snapshot(),
		Status:    enum.SessionStatusRunning,
	}

	table.Status = enum.TableStatusRunning
	table.CurrentSessionID = &session.ID

	if err := l.persist(ctx, session, table); err != nil {
		table.Status = enum.TableStatusFree
		table.CurrentSessionID = nil
		return nil, err
	}

	l.sessions[session.ID] = session
	l.log.Info().
		Str("session_id", session.ID.String()).
		Str("table", table.Name).
		Str("package", pkg.Name).
		Msg("session started")

	return session.Clone(), nil
}

// PauseSession stops the billable clock for a RUNNING session
func (l *Ledger) PauseSession(ctx context.Context, sessionID uuid.UUID) (*entity.TableSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session, ok := l.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Status != enum.SessionStatusRunning {
		return nil, ErrInvalidTransition
	}
	table := l.tables[session.TableID]

	now := l.clock.Now()
	session.PausedAt = &now
	session.Status = enum.SessionStatusPaused
	if table != nil {
		table.Status = enum.TableStatusPaused
	}

	if err := l.persist(ctx, session, table); err != nil {
		session.PausedAt = nil
		session.Status = enum.SessionStatusRunning
		if table != nil {
			table.Status = enum.TableStatusRunning
		}
		return nil, err
	}

	l.log.Info().Str("session_id", sessionID.String()).Msg("session paused")
	return session.Clone(), nil
}

// ResumeSession restarts the billable clock, folding the completed pause
// interval into the accumulated pause duration.
func (l *Ledger) ResumeSession(ctx context.Context, sessionID uuid.UUID) (*entity.TableSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session, ok := l.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Status != enum.SessionStatusPaused || session.PausedAt == nil {
		return nil, ErrInvalidTransition
	}
	table := l.tables[session.TableID]

	pausedAt := *session.PausedAt
	pause := l.clock.Now().Sub(pausedAt)
	session.TotalPauseDuration += pause
	session.PausedAt = nil
	session.Status = enum.SessionStatusRunning
	if table != nil {
		table.Status = enum.TableStatusRunning
	}

	if err := l.persist(ctx, session, table); err != nil {
		session.TotalPauseDuration -= pause
		session.PausedAt = &pausedAt
		session.Status = enum.SessionStatusPaused
		if table != nil {
			table.Status = enum.TableStatusPaused
		}
		return nil, err
	}

	l.log.Info().
		Str("session_id", sessionID.String()).
		Dur("pause", pause).
		Msg("session resumed")
	return session.Clone(), nil
}

// AttachCharge adds a food & beverage item to a live session at its current
// catalog price. An item already on the tab has its quantity merged instead
// of gaining a second line. Time accounting is untouched.
func (l *Ledger) AttachCharge(ctx context.Context, sessionID, productID uuid.UUID, qty int) (*entity.TableSession, error) {
	if qty <= 0 {
		return nil, ErrItemNotFound
	}

	product, err := l.catalog.GetFnbProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive || !product.IsFnb {
		return nil, ErrItemNotFound
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	session, ok := l.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !session.IsLive() {
		return nil, ErrInvalidTransition
	}

	prev := make([]entity.SessionFnbItem, len(session.FnbItems))
	copy(prev, session.FnbItems)

	merged := false
	for i := range session.FnbItems {
		if session.FnbItems[i].ProductID == productID {
			session.FnbItems[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		session.FnbItems = append(session.FnbItems, entity.SessionFnbItem{
			ID:        uuid.New(),
			SessionID: session.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       qty,
			Price:     product.Price,
		})
	}

	if err := l.persist(ctx, session, nil); err != nil {
		session.FnbItems = prev
		return nil, err
	}

	l.log.Info().
		Str("session_id", sessionID.String()).
		Str("product", product.Name).
		Int("qty", qty).
		Msg("charge attached")
	return session.Clone(), nil
}

// StopSession performs the final bill computation, freezes every derived
// field, marks the session ENDED and frees the table. Time spent in a
// still-open pause is excluded from the bill. An optional payment method is
// recorded on the final record for shift reconciliation.
func (l *Ledger) StopSession(ctx context.Context, sessionID uuid.UUID, payment *enum.PaymentMethod) (*entity.TableSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session, ok := l.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !session.IsLive() {
		return nil, ErrInvalidTransition
	}
	table := l.tables[session.TableID]

	now := l.clock.Now()
	final := session.Clone()
	if final.PausedAt != nil {
		final.TotalPauseDuration += now.Sub(*final.PausedAt)
		final.PausedAt = nil
	}

	bill := ComputeBill(session, now)
	final.Status = enum.SessionStatusEnded
	final.EndedAt = &now
	final.DurationMs = bill.DurationMs
	final.TimeCharge = bill.TimeCharge
	final.FnbCharge = bill.FnbCharge
	final.TotalCharge = bill.TotalCharge
	final.Payment = payment

	var tableCopy *entity.BilliardTable
	if table != nil {
		tableCopy = &entity.BilliardTable{}
		*tableCopy = *table
		table.Status = enum.TableStatusFree
		table.CurrentSessionID = nil
	}

	if err := l.persist(ctx, final, table); err != nil {
		if table != nil && tableCopy != nil {
			*table = *tableCopy
		}
		return nil, err
	}

	delete(l.sessions, sessionID)
	l.log.Info().
		Str("session_id", sessionID.String()).
		Int64("time_charge", final.TimeCharge).
		Int64("fnb_charge", final.FnbCharge).
		Int64("total", final.TotalCharge).
		Msg("session ended")

	return final, nil
}

// RegisterTable makes a table known to the ledger (after administrative
// create or edit). Occupancy fields on the argument are ignored; they stay
// owned by the ledger.
func (l *Ledger) RegisterTable(table *entity.BilliardTable) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.tables[table.ID]; ok {
		existing.Name = table.Name
		existing.TableType = table.TableType
		existing.Group = table.Group
		existing.IsActive = table.IsActive
		return
	}

	cp := *table
	cp.Status = enum.TableStatusFree
	cp.CurrentSessionID = nil
	l.tables[cp.ID] = &cp
}

// RemoveTable forgets a table. Fails while a session is in progress.
func (l *Ledger) RemoveTable(tableID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	table, ok := l.tables[tableID]
	if !ok {
		return ErrTableNotFound
	}
	if table.Status != enum.TableStatusFree {
		return ErrTableBusy
	}
	delete(l.tables, tableID)
	return nil
}

// Table returns a copy of one table's current state
func (l *Ledger) Table(tableID uuid.UUID) (entity.BilliardTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	table, ok := l.tables[tableID]
	if !ok {
		return entity.BilliardTable{}, ErrTableNotFound
	}
	return *table, nil
}

// Tables returns a copy of every table, sorted by name for stable display
func (l *Ledger) Tables() []entity.BilliardTable {
	l.mu.Lock()
	out := make([]entity.BilliardTable, 0, len(l.tables))
	for _, t := range l.tables {
		out = append(out, *t)
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Session returns a deep copy of a live session
func (l *Ledger) Session(sessionID uuid.UUID) (*entity.TableSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	session, ok := l.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// LiveSessions returns deep copies of every non-ended session. The copies
// are consistent snapshots: the recalculator computes from them without
// holding the ledger lock.
func (l *Ledger) LiveSessions() []*entity.TableSession {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*entity.TableSession, 0, len(l.sessions))
	for _, s := range l.sessions {
		out = append(out, s.Clone())
	}
	return out
}

// Now exposes the ledger clock so read paths price sessions with the same
// time source the lifecycle uses.
func (l *Ledger) Now() time.Time {
	return l.clock.Now()
}

func (l *Ledger) persist(ctx context.Context, session *entity.TableSession, table *entity.BilliardTable) error {
	if l.store == nil {
		return nil
	}
	if err := l.store.SaveSession(ctx, session); err != nil {
		return err
	}
	if table != nil {
		if err := l.store.SaveTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}
