package service

import (
	"context"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
)

// SettingsService manages the outlet profile and audit trail queries
type SettingsService struct {
	outletRepo repository.OutletRepository
	auditRepo  repository.AuditLogRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(outletRepo repository.OutletRepository, auditRepo repository.AuditLogRepository) *SettingsService {
	return &SettingsService{outletRepo: outletRepo, auditRepo: auditRepo}
}

// GetOutlet retrieves the outlet profile
func (s *SettingsService) GetOutlet(ctx context.Context) (*entity.Outlet, error) {
	outlet, err := s.outletRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, apperror.NewNotFoundError("Outlet")
	}
	return outlet, nil
}

// UpdateOutletInput represents the update outlet input
type UpdateOutletInput struct {
	Name          *string
	Address       *string
	Phone         *string
	TaxPercent    *float64
	ReceiptHeader *string
	ReceiptFooter *string
}

// UpdateOutlet modifies the outlet profile and receipt settings
func (s *SettingsService) UpdateOutlet(ctx context.Context, input *UpdateOutletInput) (*entity.Outlet, error) {
	outlet, err := s.outletRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if outlet == nil {
		return nil, apperror.NewNotFoundError("Outlet")
	}

	if input.Name != nil {
		outlet.Name = *input.Name
	}
	if input.Address != nil {
		outlet.Address = *input.Address
	}
	if input.Phone != nil {
		outlet.Phone = *input.Phone
	}
	if input.TaxPercent != nil {
		if *input.TaxPercent < 0 || *input.TaxPercent > 100 {
			return nil, apperror.NewBadRequestError("Tax percent must be between 0 and 100")
		}
		outlet.TaxPercent = *input.TaxPercent
	}
	if input.ReceiptHeader != nil {
		outlet.ReceiptHeader = *input.ReceiptHeader
	}
	if input.ReceiptFooter != nil {
		outlet.ReceiptFooter = *input.ReceiptFooter
	}

	if err := s.outletRepo.Save(ctx, outlet); err != nil {
		return nil, err
	}
	return outlet, nil
}

// ListAuditLogs retrieves the audit trail with filtering and pagination
func (s *SettingsService) ListAuditLogs(ctx context.Context, params *repository.AuditLogFilterParams) ([]entity.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, params)
}
