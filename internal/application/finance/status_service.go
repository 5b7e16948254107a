package finance

import (
	"context"
	"fmt"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/identity"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/logger"
	"github.com/garmentflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationStatusService guards status transitions on reconciliation
// documents: role checks, tenant checks, the transition table and the
// append-only audit trail.
type ReconciliationStatusService struct {
	reconciliationRepo finance.ReconciliationRepository
	logger             *zap.Logger
}

// NewReconciliationStatusService creates a new ReconciliationStatusService
func NewReconciliationStatusService(
	reconciliationRepo finance.ReconciliationRepository,
	logger *zap.Logger,
) *ReconciliationStatusService {
	return &ReconciliationStatusService{
		reconciliationRepo: reconciliationRepo,
		logger:             logger,
	}
}

// UpdateStatus moves a reconciliation document to the target status.
// Rejection requires a supervisor-or-above actor; a self-transition
// succeeds without touching the record.
func (s *ReconciliationStatusService) UpdateStatus(
	ctx context.Context,
	actor identity.Actor,
	kind finance.ReconciliationKind,
	id uuid.UUID,
	target finance.ReconciliationStatus,
) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation_status", "update")
	defer span.End()
	telemetry.SetAttributes(span,
		"record_id", id.String(),
		"kind", kind.String(),
		"target_status", target.String(),
	)
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	if id == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Record ID is required")
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown reconciliation kind %q", kind))
	}
	if target == finance.ReconciliationStatusRejected && !actor.IsSupervisorOrAbove() {
		return shared.ErrForbidden
	}

	record, err := s.reconciliationRepo.FindByID(ctx, id, kind)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := record.AssertTenant(actor.TenantID); err != nil {
		return err
	}

	changed, err := record.TransitionTo(target, actor.DisplayName())
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !changed {
		return nil
	}

	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save reconciliation %s: %w", id, err)
	}

	log.Info("reconciliation status updated",
		zap.String("record_id", id.String()),
		zap.String("kind", record.Kind.String()),
		zap.String("status", record.Status.String()),
	)

	return nil
}

// ReturnToPrevious steps a reconciliation document back one status.
// Supervisor-or-above only; returning from paid records the reason.
func (s *ReconciliationStatusService) ReturnToPrevious(
	ctx context.Context,
	actor identity.Actor,
	kind finance.ReconciliationKind,
	id uuid.UUID,
	reason string,
) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation_status", "return_to_previous")
	defer span.End()
	telemetry.SetAttributes(span, "record_id", id.String(), "kind", kind.String())
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	if id == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Record ID is required")
	}
	if !actor.IsSupervisorOrAbove() {
		return shared.ErrForbidden
	}

	record, err := s.reconciliationRepo.FindByID(ctx, id, kind)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := record.AssertTenant(actor.TenantID); err != nil {
		return err
	}

	from := record.Status
	if err := record.ReturnToPrevious(actor.DisplayName(), reason); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to save reconciliation %s: %w", id, err)
	}

	log.Info("reconciliation returned to previous status",
		zap.String("record_id", id.String()),
		zap.String("from", from.String()),
		zap.String("to", record.Status.String()),
	)

	return nil
}
