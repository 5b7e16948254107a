package finance

import (
	"context"
	"fmt"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/identity"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReconciliationInput carries the caller-editable fields of a
// reconciliation document. Number, status and timestamps are owned by the
// engine and never taken from input.
type ReconciliationInput struct {
	CounterpartyID   *uuid.UUID
	CounterpartyName string
	OrderID          *uuid.UUID
	OrderNumber      string
	StyleNumber      string
	MaterialName     string
	MaterialCode     string
	Specification    string
	Unit             string
	Quantity         int
	UnitPrice        decimal.Decimal
	TotalAmount      decimal.Decimal
	DeductionAmount  decimal.Decimal
	Remark           string
}

// ReconciliationService handles manual document management: creation,
// pending-only edits, soft deletion and lookup.
type ReconciliationService struct {
	reconciliationRepo finance.ReconciliationRepository
	numberGen          *finance.DocumentNumberGenerator
	logger             *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(reconciliationRepo finance.ReconciliationRepository, logger *zap.Logger) *ReconciliationService {
	return &ReconciliationService{
		reconciliationRepo: reconciliationRepo,
		numberGen:          finance.NewDocumentNumberGenerator(reconciliationRepo),
		logger:             logger,
	}
}

// Create stores a new manual reconciliation document. It always starts
// pending with a freshly generated number, whatever the caller sent.
func (s *ReconciliationService) Create(ctx context.Context, actor identity.Actor, kind finance.ReconciliationKind, input ReconciliationInput) (*finance.ReconciliationRecord, error) {
	if !kind.IsConcrete() {
		return nil, shared.NewDomainError("INVALID_KIND", "Reconciliation kind must be material or shipment")
	}

	ctx, log := logger.WithActor(ctx, s.logger, actor)

	prefix := finance.PrefixMaterialReconciliation
	if kind == finance.KindShipment {
		prefix = finance.PrefixShipmentReconciliation
	}

	var record *finance.ReconciliationRecord
	_, err := s.numberGen.Generate(ctx, actor.TenantID, prefix, func(ctx context.Context, number string) error {
		r, err := finance.NewReconciliationRecord(
			actor.TenantID,
			kind,
			number,
			input.CounterpartyName,
			input.Quantity,
			input.UnitPrice,
			input.TotalAmount,
		)
		if err != nil {
			return err
		}
		applyInput(r, input)
		r.SetCreatedBy(actor.UserID)

		if err := s.reconciliationRepo.Create(ctx, r); err != nil {
			return err
		}
		record = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("reconciliation created",
		zap.String("document_number", record.DocumentNumber),
		zap.String("kind", kind.String()),
	)

	return record, nil
}

// Update edits a document. Only pending documents are editable unless the
// actor is an admin; number, status and timestamps always survive the edit.
func (s *ReconciliationService) Update(ctx context.Context, actor identity.Actor, kind finance.ReconciliationKind, id uuid.UUID, input ReconciliationInput) error {
	record, err := s.reconciliationRepo.FindByID(ctx, id, kind)
	if err != nil {
		return err
	}
	if err := record.AssertTenant(actor.TenantID); err != nil {
		return err
	}
	if !record.IsPending() && !actor.IsAdmin() {
		return shared.NewDomainError("INVALID_STATE", "Only pending documents can be edited")
	}

	applyInput(record, input)
	record.CounterpartyName = input.CounterpartyName
	record.Quantity = input.Quantity
	record.UnitPrice = input.UnitPrice
	record.TotalAmount = input.TotalAmount
	record.Touch()
	record.IncrementVersion()

	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to update reconciliation %s: %w", id, err)
	}
	return nil
}

// Delete soft-deletes a document. Pending-only unless the actor is admin.
func (s *ReconciliationService) Delete(ctx context.Context, actor identity.Actor, kind finance.ReconciliationKind, id uuid.UUID) error {
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	record, err := s.reconciliationRepo.FindByID(ctx, id, kind)
	if err != nil {
		return err
	}
	if err := record.AssertTenant(actor.TenantID); err != nil {
		return err
	}
	if !record.IsPending() && !actor.IsAdmin() {
		return shared.NewDomainError("INVALID_STATE", "Only pending documents can be deleted")
	}

	record.MarkDeleted()
	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to delete reconciliation %s: %w", id, err)
	}

	log.Info("reconciliation soft-deleted",
		zap.String("document_number", record.DocumentNumber),
	)
	return nil
}

// Get loads one document with a tenant assertion.
func (s *ReconciliationService) Get(ctx context.Context, actor identity.Actor, kind finance.ReconciliationKind, id uuid.UUID) (*finance.ReconciliationRecord, error) {
	record, err := s.reconciliationRepo.FindByID(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	if err := record.AssertTenant(actor.TenantID); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns the tenant's documents matching the filter.
func (s *ReconciliationService) List(ctx context.Context, actor identity.Actor, filter finance.ReconciliationFilter) ([]finance.ReconciliationRecord, error) {
	return s.reconciliationRepo.FindAllForTenant(ctx, actor.TenantID, filter)
}

// applyInput copies the reference fields an editor may set
func applyInput(r *finance.ReconciliationRecord, input ReconciliationInput) {
	r.CounterpartyID = input.CounterpartyID
	r.OrderID = input.OrderID
	r.OrderNumber = input.OrderNumber
	r.StyleNumber = input.StyleNumber
	r.MaterialName = input.MaterialName
	r.MaterialCode = input.MaterialCode
	r.Specification = input.Specification
	r.Unit = input.Unit
	r.DeductionAmount = input.DeductionAmount
	r.RecalculateFinalAmount()
	if input.Remark != "" && r.Remark == "" {
		r.Remark = input.Remark
	}
}
