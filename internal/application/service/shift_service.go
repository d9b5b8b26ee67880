package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/ardiwinata/cuepos/pkg/pagination"
	"github.com/google/uuid"
)

// ShiftService handles cashier drawer sessions and their reconciliation.
// Expected cash is the opening float plus cash sales, cash-paid table
// sessions and cash put in, minus cash taken out.
type ShiftService struct {
	shiftRepo    repository.ShiftRepository
	movementRepo repository.CashMovementRepository
	saleRepo     repository.SaleRepository
	sessionRepo  repository.SessionRepository
	userRepo     repository.UserRepository
	audit        *AuditTrail
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo repository.ShiftRepository,
	movementRepo repository.CashMovementRepository,
	saleRepo repository.SaleRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	audit *AuditTrail,
) *ShiftService {
	return &ShiftService{
		shiftRepo:    shiftRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		audit:        audit,
	}
}

// OpenShift starts a drawer session with an opening cash float
func (s *ShiftService) OpenShift(ctx context.Context, userID uuid.UUID, startCash int64) (*entity.Shift, error) {
	if startCash < 0 {
		return nil, apperror.NewBadRequestError("Start cash must not be negative")
	}

	existing, err := s.shiftRepo.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrShiftAlreadyOpen
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	shift := &entity.Shift{
		UserID:    userID,
		UserName:  user.Name,
		Status:    enum.ShiftStatusOpen,
		StartTime: time.Now(),
		StartCash: startCash,
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.audit.record(ctx, userID, enum.AuditShiftStart,
		fmt.Sprintf("Opened shift with float %d", startCash), &shift.ID)
	return shift, nil
}

// ShiftSummary is a shift with its live (or final) reconciliation figures
type ShiftSummary struct {
	Shift        *entity.Shift                 `json:"shift"`
	Movements    []entity.CashMovement         `json:"movements"`
	SessionCash  int64                         `json:"session_cash"`
	ExpectedCash int64                         `json:"expected_cash"`
	SaleTotals   *repository.SaleTotals        `json:"sale_totals"`
	Sessions     *repository.SessionTotals     `json:"session_totals"`
	CashFlow     *repository.CashMovementTotals `json:"cash_flow"`
}

// reconcile computes a shift's totals from its sales, ended sessions and
// cash movements over the shift window
func (s *ShiftService) reconcile(ctx context.Context, shift *entity.Shift, until time.Time) (*ShiftSummary, error) {
	sales, err := s.saleRepo.TotalsByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.TotalsEndedBetween(ctx, shift.StartTime, until)
	if err != nil {
		return nil, err
	}
	flow, err := s.movementRepo.TotalsByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.ListByShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	expected := shift.StartCash + sales.Cash + sessions.Cash + flow.In - flow.Out

	return &ShiftSummary{
		Shift:        shift,
		Movements:    movements,
		SessionCash:  sessions.Cash,
		ExpectedCash: expected,
		SaleTotals:   sales,
		Sessions:     sessions,
		CashFlow:     flow,
	}, nil
}

// GetCurrentShift returns the user's open shift with live reconciliation
// figures, or a not found error if no shift is open
func (s *ShiftService) GetCurrentShift(ctx context.Context, userID uuid.UUID) (*ShiftSummary, error) {
	shift, err := s.shiftRepo.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}
	return s.reconcile(ctx, shift, time.Now())
}

// RecordCashMovement puts cash into or takes cash out of the open drawer
func (s *ShiftService) RecordCashMovement(ctx context.Context, userID uuid.UUID, movementType enum.CashMovementType, amount int64, notes string) (*entity.CashMovement, error) {
	if !movementType.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid movement type")
	}
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	shift, err := s.shiftRepo.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}

	movement := &entity.CashMovement{
		ShiftID: shift.ID,
		Type:    movementType,
		Amount:  amount,
		Notes:   notes,
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// CloseShift ends the drawer session, freezing the reconciliation figures
// and the counted-versus-expected difference onto the shift row
func (s *ShiftService) CloseShift(ctx context.Context, userID uuid.UUID, endCash int64, notes *string) (*ShiftSummary, error) {
	if endCash < 0 {
		return nil, apperror.NewBadRequestError("End cash must not be negative")
	}

	shift, err := s.shiftRepo.GetOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}

	now := time.Now()
	summary, err := s.reconcile(ctx, shift, now)
	if err != nil {
		return nil, err
	}

	difference := endCash - summary.ExpectedCash

	shift.Status = enum.ShiftStatusClosed
	shift.EndTime = &now
	shift.EndCash = &endCash
	shift.CashSales = summary.SaleTotals.Cash
	shift.QrisSales = summary.SaleTotals.Qris
	shift.TransferSales = summary.SaleTotals.Transfer
	shift.SessionSales = summary.Sessions.Total
	shift.TotalSales = summary.SaleTotals.Total + summary.Sessions.Total
	shift.CashIn = summary.CashFlow.In
	shift.CashOut = summary.CashFlow.Out
	shift.ExpectedCash = summary.ExpectedCash
	shift.Difference = &difference
	if notes != nil {
		shift.Notes = notes
	}

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return nil, err
	}

	s.audit.record(ctx, userID, enum.AuditShiftEnd,
		fmt.Sprintf("Closed shift, expected %d counted %d", summary.ExpectedCash, endCash), &shift.ID)

	summary.Shift = shift
	return summary, nil
}

// GetShift retrieves one shift; closed shifts return their frozen figures
func (s *ShiftService) GetShift(ctx context.Context, id uuid.UUID) (*ShiftSummary, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}

	until := time.Now()
	if shift.EndTime != nil {
		until = *shift.EndTime
	}
	return s.reconcile(ctx, shift, until)
}

// ListShifts retrieves shifts with pagination
func (s *ShiftService) ListShifts(ctx context.Context, params *pagination.PaginationParams, userID *uuid.UUID) ([]entity.Shift, int64, error) {
	return s.shiftRepo.List(ctx, params, userID)
}
