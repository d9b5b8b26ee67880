package service

import (
	"context"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuditTrail writes append-only audit entries. Failures are logged and
// swallowed so a broken audit insert never rolls back the business action.
type AuditTrail struct {
	auditRepo repository.AuditLogRepository
	userRepo  repository.UserRepository
}

func NewAuditTrail(auditRepo repository.AuditLogRepository, userRepo repository.UserRepository) *AuditTrail {
	return &AuditTrail{auditRepo: auditRepo, userRepo: userRepo}
}

func (a *AuditTrail) record(ctx context.Context, userID uuid.UUID, action enum.AuditAction, details string, entityID *uuid.UUID) {
	if a == nil || a.auditRepo == nil {
		return
	}

	userName := ""
	if user, err := a.userRepo.GetByID(ctx, userID); err == nil && user != nil {
		userName = user.Name
	}

	entry := &entity.AuditLog{
		UserID:   userID,
		UserName: userName,
		Action:   action,
		Details:  details,
		EntityID: entityID,
	}
	if err := a.auditRepo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", string(action)).Msg("failed to write audit log entry")
	}
}
