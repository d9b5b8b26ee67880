package service

import (
	"context"
	"testing"

	"github.com/ardiwinata/cuepos/internal/billing"
	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSessionRepo is a stateful session repository, unlike the stub used by
// the shift tests.
type memSessionRepo struct {
	mockSessionRepo
	sessions map[uuid.UUID]*entity.TableSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*entity.TableSession)}
}

func (m *memSessionRepo) Save(ctx context.Context, session *entity.TableSession) error {
	m.sessions[session.ID] = session.Clone()
	return nil
}

func (m *memSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return session.Clone(), nil
}

// sessionRepoStore adapts the repository to the ledger's store interface, the
// way the infrastructure adapter does against postgres.
type sessionRepoStore struct {
	repo *memSessionRepo
}

func (s *sessionRepoStore) SaveSession(ctx context.Context, session *entity.TableSession) error {
	return s.repo.Save(ctx, session)
}

func (s *sessionRepoStore) SaveTable(ctx context.Context, table *entity.BilliardTable) error {
	return nil
}

type stubFnbCatalog struct {
	products map[uuid.UUID]entity.Product
}

func (s *stubFnbCatalog) GetFnbProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

type stubPricelistLookup struct {
	packages map[uuid.UUID]entity.PricelistPackage
}

func (s *stubPricelistLookup) GetPackage(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error) {
	p, ok := s.packages[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

type sessionServiceFixture struct {
	svc     *SessionService
	repo    *memSessionRepo
	table   entity.BilliardTable
	pkg     entity.PricelistPackage
	snackID uuid.UUID
}

func newSessionServiceFixture(t *testing.T) *sessionServiceFixture {
	t.Helper()

	f := &sessionServiceFixture{
		repo:    newMemSessionRepo(),
		snackID: uuid.New(),
		table: entity.BilliardTable{
			ID:        uuid.New(),
			Name:      "Table 3",
			TableType: enum.TableTypePool,
			Group:     "Main Hall",
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
	}

	catalog := &stubFnbCatalog{products: map[uuid.UUID]entity.Product{
		f.snackID: {ID: f.snackID, Name: "Iced Tea", Price: 15000, IsActive: true, IsFnb: true},
	}}
	pricelists := &stubPricelistLookup{packages: map[uuid.UUID]entity.PricelistPackage{
		f.pkg.ID: f.pkg,
	}}

	ledger := billing.NewLedger(billing.SystemClock(), catalog, pricelists, &sessionRepoStore{repo: f.repo}, zerolog.Nop())
	ledger.Restore([]entity.BilliardTable{f.table}, nil)

	f.svc = NewSessionService(ledger, nil, f.repo, nil)
	return f
}

func requireConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err))
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestSessionMutationsAfterEnd(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	f := newSessionServiceFixture(t)

	session, err := f.svc.StartSession(ctx, actorID, f.table.ID, f.pkg.ID)
	require.NoError(t, err)

	ended, err := f.svc.StopSession(ctx, actorID, session.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStatusEnded, ended.Status)

	// The ended session has left the ledger but is still on record, so
	// lifecycle calls against it are state conflicts, not missing sessions.
	_, err = f.svc.PauseSession(ctx, session.ID)
	requireConflict(t, err)

	_, err = f.svc.ResumeSession(ctx, session.ID)
	requireConflict(t, err)

	_, err = f.svc.AttachCharge(ctx, session.ID, f.snackID, 1)
	requireConflict(t, err)

	_, err = f.svc.StopSession(ctx, actorID, session.ID, nil)
	requireConflict(t, err)

	// It stays retrievable through the read path.
	got, err := f.svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStatusEnded, got.Status)
}

func TestSessionMutationsUnknownID(t *testing.T) {
	ctx := context.Background()

	f := newSessionServiceFixture(t)

	_, err := f.svc.PauseSession(ctx, uuid.New())
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err))
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
