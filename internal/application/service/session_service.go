package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardiwinata/cuepos/internal/billing"
	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/google/uuid"
)

// SessionService exposes the session lifecycle. All state changes go through
// the ledger; this layer adds validation mapping, audit entries and history
// queries.
type SessionService struct {
	ledger      *billing.Ledger
	recalc      *billing.Recalculator
	sessionRepo repository.SessionRepository
	audit       *AuditTrail
}

// NewSessionService creates a new session service
func NewSessionService(
	ledger *billing.Ledger,
	recalc *billing.Recalculator,
	sessionRepo repository.SessionRepository,
	audit *AuditTrail,
) *SessionService {
	return &SessionService{
		ledger:      ledger,
		recalc:      recalc,
		sessionRepo: sessionRepo,
		audit:       audit,
	}
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, billing.ErrTableNotFound):
		return apperror.NewNotFoundError("Table")
	case errors.Is(err, billing.ErrSessionNotFound):
		return apperror.NewNotFoundError("Session")
	case errors.Is(err, billing.ErrTableBusy):
		return apperror.NewConflictError("Table already has a session")
	case errors.Is(err, billing.ErrTableInactive):
		return apperror.NewConflictError("Table is inactive")
	case errors.Is(err, billing.ErrNoActivePricelist):
		return apperror.NewBadRequestError("No active pricelist package for this table")
	case errors.Is(err, billing.ErrInvalidTransition):
		return apperror.NewConflictError("Session is not in a state that allows this")
	case errors.Is(err, billing.ErrItemNotFound):
		return apperror.NewNotFoundError("Product")
	}
	return err
}

// StartSession opens a session on a table with the chosen pricing package
func (s *SessionService) StartSession(ctx context.Context, actorID, tableID, packageID uuid.UUID) (*entity.TableSession, error) {
	session, err := s.ledger.StartSession(ctx, tableID, packageID)
	if err != nil {
		return nil, mapLedgerError(err)
	}

	s.audit.record(ctx, actorID, enum.AuditSessionStart,
		fmt.Sprintf("Started session on %s (%s)", session.TableName, session.Package.Name), &session.ID)
	return session, nil
}

// mapMutationError resolves a ledger miss against the store. Ended sessions
// leave the live ledger, so a miss on a session the store still knows is a
// state conflict rather than a missing record.
func (s *SessionService) mapMutationError(ctx context.Context, sessionID uuid.UUID, err error) error {
	if errors.Is(err, billing.ErrSessionNotFound) {
		if stored, repoErr := s.sessionRepo.GetByID(ctx, sessionID); repoErr == nil && stored != nil && stored.Status == enum.SessionStatusEnded {
			return apperror.NewConflictError("Session has already ended")
		}
	}
	return mapLedgerError(err)
}

// PauseSession suspends billing for a running session
func (s *SessionService) PauseSession(ctx context.Context, sessionID uuid.UUID) (*entity.TableSession, error) {
	session, err := s.ledger.PauseSession(ctx, sessionID)
	if err != nil {
		return nil, s.mapMutationError(ctx, sessionID, err)
	}
	return session, nil
}

// ResumeSession restarts billing for a paused session
func (s *SessionService) ResumeSession(ctx context.Context, sessionID uuid.UUID) (*entity.TableSession, error) {
	session, err := s.ledger.ResumeSession(ctx, sessionID)
	if err != nil {
		return nil, s.mapMutationError(ctx, sessionID, err)
	}
	return session, nil
}

// AttachCharge adds an F&B item to a live session's tab
func (s *SessionService) AttachCharge(ctx context.Context, sessionID, productID uuid.UUID, qty int) (*entity.TableSession, error) {
	if qty <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}
	session, err := s.ledger.AttachCharge(ctx, sessionID, productID, qty)
	if err != nil {
		return nil, s.mapMutationError(ctx, sessionID, err)
	}
	return session, nil
}

// StopSession ends a session, freezing its final bill
func (s *SessionService) StopSession(ctx context.Context, actorID, sessionID uuid.UUID, payment *enum.PaymentMethod) (*entity.TableSession, error) {
	if payment != nil && !payment.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	session, err := s.ledger.StopSession(ctx, sessionID, payment)
	if err != nil {
		return nil, s.mapMutationError(ctx, sessionID, err)
	}

	s.audit.record(ctx, actorID, enum.AuditSessionStop,
		fmt.Sprintf("Stopped session on %s, total %d", session.TableName, session.TotalCharge), &session.ID)
	return session, nil
}

// GetSession retrieves a session, live or ended, with a current bill for
// live ones
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.TableSession, error) {
	if session, err := s.ledger.Session(id); err == nil {
		bill := billing.ComputeBill(session, s.ledger.Now())
		session.DurationMs = bill.DurationMs
		session.TimeCharge = bill.TimeCharge
		session.FnbCharge = bill.FnbCharge
		session.TotalCharge = bill.TotalCharge
		return session, nil
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// LiveBills returns the recalculator's latest published bill per live session
func (s *SessionService) LiveBills(ctx context.Context) []billing.SessionBill {
	return s.recalc.Snapshot()
}

// ListHistory retrieves ended sessions with filtering and pagination
func (s *SessionService) ListHistory(ctx context.Context, params *repository.SessionFilterParams) ([]entity.TableSession, int64, error) {
	return s.sessionRepo.ListEnded(ctx, params)
}
