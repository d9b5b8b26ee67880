package repository

import (
	"context"

	"github.com/ardiwinata/cuepos/internal/billing"
	"github.com/ardiwinata/cuepos/internal/domain/entity"
	domainRepo "github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/google/uuid"
)

// ledgerStore adapts the session and table repositories to the write-through
// store the billing ledger persists its transitions to.
type ledgerStore struct {
	sessions domainRepo.SessionRepository
	tables   domainRepo.TableRepository
}

// NewLedgerStore creates the persistence adapter for the session ledger
func NewLedgerStore(sessions domainRepo.SessionRepository, tables domainRepo.TableRepository) billing.Store {
	return &ledgerStore{sessions: sessions, tables: tables}
}

func (s *ledgerStore) SaveSession(ctx context.Context, session *entity.TableSession) error {
	return s.sessions.Save(ctx, session)
}

func (s *ledgerStore) SaveTable(ctx context.Context, table *entity.BilliardTable) error {
	return s.tables.Save(ctx, table)
}

// ledgerCatalog resolves attachable products for the ledger
type ledgerCatalog struct {
	products domainRepo.ProductRepository
}

// NewLedgerCatalog creates the product lookup the ledger snapshots F&B
// prices from
func NewLedgerCatalog(products domainRepo.ProductRepository) billing.CatalogLookup {
	return &ledgerCatalog{products: products}
}

func (c *ledgerCatalog) GetFnbProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return c.products.GetByID(ctx, id)
}

// ledgerPricelists resolves pricing packages for session start
type ledgerPricelists struct {
	pricelists domainRepo.PricelistRepository
}

// NewLedgerPricelists creates the pricelist lookup the ledger freezes
// packages from
func NewLedgerPricelists(pricelists domainRepo.PricelistRepository) billing.PricelistLookup {
	return &ledgerPricelists{pricelists: pricelists}
}

func (p *ledgerPricelists) GetPackage(ctx context.Context, id uuid.UUID) (*entity.PricelistPackage, error) {
	return p.pricelists.GetByID(ctx, id)
}
