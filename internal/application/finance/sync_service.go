package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/identity"
	"github.com/garmentflow/backend/internal/domain/procurement"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/logger"
	"github.com/garmentflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const unknownField = "UNKNOWN"

// SyncOutcome describes what a single sync pass did for one purchase
type SyncOutcome string

const (
	SyncOutcomeCreated SyncOutcome = "CREATED"
	SyncOutcomeUpdated SyncOutcome = "UPDATED"
	SyncOutcomePatched SyncOutcome = "PATCHED"
	SyncOutcomeSkipped SyncOutcome = "SKIPPED"
	SyncOutcomeCleaned SyncOutcome = "CLEANED"
)

// BackfillFailure records one purchase the backfill could not process
type BackfillFailure struct {
	PurchaseID uuid.UUID `json:"purchase_id"`
	Reason     string    `json:"reason"`
}

// BackfillReport summarizes a backfill run
type BackfillReport struct {
	JobID    uuid.UUID         `json:"job_id"`
	Touched  int               `json:"touched"`
	Skipped  int               `json:"skipped"`
	Failures []BackfillFailure `json:"failures"`
}

// ReconciliationSyncService keeps material reconciliation records
// idempotently derived from purchase events. One purchase maps to at most
// one live record; records that left pending are financially frozen.
type ReconciliationSyncService struct {
	purchaseRepo       procurement.PurchaseRepository
	reconciliationRepo finance.ReconciliationRepository
	numberGen          *finance.DocumentNumberGenerator
	jobStore           shared.JobStore
	logger             *zap.Logger
}

// NewReconciliationSyncService creates a new ReconciliationSyncService
func NewReconciliationSyncService(
	purchaseRepo procurement.PurchaseRepository,
	reconciliationRepo finance.ReconciliationRepository,
	jobStore shared.JobStore,
	logger *zap.Logger,
) *ReconciliationSyncService {
	return &ReconciliationSyncService{
		purchaseRepo:       purchaseRepo,
		reconciliationRepo: reconciliationRepo,
		numberGen:          finance.NewDocumentNumberGenerator(reconciliationRepo),
		jobStore:           jobStore,
		logger:             logger,
	}
}

// SyncFromPurchase reapplies the derivation for one purchase. Ineligible
// purchases soft-delete any still-pending derived record and leave
// advanced records untouched.
func (s *ReconciliationSyncService) SyncFromPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (SyncOutcome, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation_sync", "sync_from_purchase")
	defer span.End()
	telemetry.SetAttributes(span, "purchase_id", purchaseID.String())

	if purchaseID == uuid.Nil {
		return "", shared.NewDomainError("INVALID_INPUT", "Purchase ID is required")
	}

	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, purchaseID)
	if err != nil {
		if isNotFoundError(err) {
			return s.cleanup(ctx, tenantID, purchaseID)
		}
		telemetry.RecordError(span, err)
		return "", fmt.Errorf("failed to load purchase %s: %w", purchaseID, err)
	}

	if !eligible(purchase) {
		return s.cleanup(ctx, tenantID, purchaseID)
	}

	return s.upsert(ctx, tenantID, purchase)
}

// Backfill reapplies the sync to every eligible purchase of the tenant.
// Per-record failures are collected into the report, never fatal to the run.
func (s *ReconciliationSyncService) Backfill(ctx context.Context, actor identity.Actor) (*BackfillReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation_sync", "backfill")
	defer span.End()

	if !actor.IsSupervisorOrAbove() {
		return nil, shared.ErrForbidden
	}
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	job := shared.NewJob(actor.TenantID, "reconciliation_backfill")
	if err := s.jobStore.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to register backfill job: %w", err)
	}

	report := &BackfillReport{JobID: job.ID}

	purchases, err := s.purchaseRepo.FindAllForTenant(ctx, actor.TenantID, procurement.PurchaseFilter{IncludeDeleted: true})
	if err != nil {
		job.Finish(shared.JobStateFailed, err.Error())
		if updateErr := s.jobStore.Update(ctx, job); updateErr != nil {
			log.Warn("failed to update backfill job", zap.Error(updateErr))
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	for i := range purchases {
		p := &purchases[i]
		outcome, err := s.SyncFromPurchase(ctx, actor.TenantID, p.ID)
		if err != nil {
			report.Failures = append(report.Failures, BackfillFailure{PurchaseID: p.ID, Reason: err.Error()})
			log.Warn("backfill failed for purchase",
				zap.String("purchase_id", p.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if outcome == SyncOutcomeSkipped {
			report.Skipped++
		} else {
			report.Touched++
		}
	}

	job.Finish(shared.JobStateSucceeded,
		fmt.Sprintf("touched=%d skipped=%d failed=%d", report.Touched, report.Skipped, len(report.Failures)))
	if err := s.jobStore.Update(ctx, job); err != nil {
		log.Warn("failed to update backfill job", zap.Error(err))
	}

	log.Info("reconciliation backfill finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("touched", report.Touched),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", len(report.Failures)),
	)

	return report, nil
}

// eligible reports whether the purchase should have a live reconciliation
func eligible(p *procurement.MaterialPurchase) bool {
	if p.Deleted || p.IsCancelled() || p.IsOrderLinked() {
		return false
	}
	return p.EffectiveQuantity() > 0
}

// cleanup soft-deletes a still-pending derived record for an ineligible
// purchase. Records past pending are frozen and stay.
func (s *ReconciliationSyncService) cleanup(ctx context.Context, tenantID, purchaseID uuid.UUID) (SyncOutcome, error) {
	record, err := s.reconciliationRepo.FindLatestByPurchase(ctx, tenantID, purchaseID)
	if err != nil {
		if isNotFoundError(err) {
			return SyncOutcomeSkipped, nil
		}
		return "", fmt.Errorf("failed to look up derived record: %w", err)
	}
	if !record.IsPending() {
		return SyncOutcomeSkipped, nil
	}

	record.MarkDeleted()
	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		return "", fmt.Errorf("failed to soft-delete derived record: %w", err)
	}

	logger.FromContextOr(ctx, s.logger).Info("derived reconciliation cleaned up",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("record_id", record.ID.String()),
	)

	return SyncOutcomeCleaned, nil
}

func (s *ReconciliationSyncService) upsert(ctx context.Context, tenantID uuid.UUID, purchase *procurement.MaterialPurchase) (SyncOutcome, error) {
	record, err := s.reconciliationRepo.FindLatestByPurchase(ctx, tenantID, purchase.ID)
	if err != nil {
		if isNotFoundError(err) {
			return s.create(ctx, tenantID, purchase)
		}
		return "", fmt.Errorf("failed to look up derived record: %w", err)
	}

	if record.IsPending() {
		return s.overwrite(ctx, record, purchase)
	}
	return s.patchBlankFields(ctx, record, purchase)
}

func (s *ReconciliationSyncService) create(ctx context.Context, tenantID uuid.UUID, purchase *procurement.MaterialPurchase) (SyncOutcome, error) {
	quantity := purchase.EffectiveQuantity()
	unitPrice, totalAmount := deriveAmounts(purchase.UnitPrice, purchase.TotalAmount, quantity)

	supplierName := purchase.SupplierName
	if supplierName == "" {
		supplierName = unknownField
	}

	_, err := s.numberGen.Generate(ctx, tenantID, finance.PrefixMaterialReconciliation, func(ctx context.Context, number string) error {
		record, err := finance.NewReconciliationRecord(
			tenantID,
			finance.KindMaterial,
			number,
			supplierName,
			quantity,
			unitPrice,
			totalAmount,
		)
		if err != nil {
			return err
		}
		record.CounterpartyID = purchase.SupplierID
		record.PurchaseID = &purchase.ID
		record.MaterialName = orUnknown(purchase.MaterialName)
		record.MaterialCode = purchase.MaterialCode
		record.Specification = purchase.Specification
		record.Unit = purchase.Unit
		record.RecalculateFinalAmount()

		return s.reconciliationRepo.Create(ctx, record)
	})
	if err != nil {
		return "", fmt.Errorf("failed to create derived record for purchase %s: %w", purchase.ID, err)
	}

	logger.FromContextOr(ctx, s.logger).Info("derived reconciliation created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.Int("quantity", quantity),
		zap.String("total_amount", totalAmount.String()),
	)

	return SyncOutcomeCreated, nil
}

// overwrite refreshes a still-pending record from the live purchase. The
// deduction survives; finalAmount is recomputed against the new total.
func (s *ReconciliationSyncService) overwrite(ctx context.Context, record *finance.ReconciliationRecord, purchase *procurement.MaterialPurchase) (SyncOutcome, error) {
	quantity := purchase.EffectiveQuantity()
	unitPrice, totalAmount := deriveAmounts(purchase.UnitPrice, purchase.TotalAmount, quantity)

	record.CounterpartyID = purchase.SupplierID
	record.CounterpartyName = orUnknown(purchase.SupplierName)
	record.MaterialName = orUnknown(purchase.MaterialName)
	record.MaterialCode = purchase.MaterialCode
	record.Specification = purchase.Specification
	record.Unit = purchase.Unit
	record.Quantity = quantity
	record.UnitPrice = unitPrice
	record.TotalAmount = totalAmount
	record.RecalculateFinalAmount()
	record.Touch()
	record.IncrementVersion()

	if record.FinalAmount.IsNegative() {
		logger.FromContextOr(ctx, s.logger).Warn("derived reconciliation has negative final amount",
			zap.String("record_id", record.ID.String()),
			zap.String("final_amount", record.FinalAmount.String()),
		)
	}

	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		return "", fmt.Errorf("failed to overwrite derived record: %w", err)
	}
	return SyncOutcomeUpdated, nil
}

// patchBlankFields fills in missing reference fields on a record that left
// pending. Quantity and amounts are frozen and never touched here.
func (s *ReconciliationSyncService) patchBlankFields(ctx context.Context, record *finance.ReconciliationRecord, purchase *procurement.MaterialPurchase) (SyncOutcome, error) {
	changed := false

	if record.CounterpartyID == nil && purchase.SupplierID != nil {
		record.CounterpartyID = purchase.SupplierID
		changed = true
	}
	if record.CounterpartyName == "" && purchase.SupplierName != "" {
		record.CounterpartyName = purchase.SupplierName
		changed = true
	}
	if record.MaterialName == "" && purchase.MaterialName != "" {
		record.MaterialName = purchase.MaterialName
		changed = true
	}
	if record.MaterialCode == "" && purchase.MaterialCode != "" {
		record.MaterialCode = purchase.MaterialCode
		changed = true
	}
	if record.Specification == "" && purchase.Specification != "" {
		record.Specification = purchase.Specification
		changed = true
	}
	if record.Unit == "" && purchase.Unit != "" {
		record.Unit = purchase.Unit
		changed = true
	}

	if !changed {
		return SyncOutcomeSkipped, nil
	}

	record.Touch()
	record.IncrementVersion()
	if err := s.reconciliationRepo.Save(ctx, record); err != nil {
		return "", fmt.Errorf("failed to patch derived record: %w", err)
	}
	return SyncOutcomePatched, nil
}

// deriveAmounts fills in whichever of unit price and total is missing.
// Both derivations round half up to two decimal places.
func deriveAmounts(unitPrice, totalAmount decimal.Decimal, quantity int) (decimal.Decimal, decimal.Decimal) {
	qty := decimal.NewFromInt(int64(quantity))

	if unitPrice.LessThanOrEqual(decimal.Zero) && totalAmount.GreaterThan(decimal.Zero) && quantity > 0 {
		unitPrice = totalAmount.Div(qty).Round(2)
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) && unitPrice.GreaterThan(decimal.Zero) && quantity > 0 {
		totalAmount = unitPrice.Mul(qty).Round(2)
	}
	return unitPrice, totalAmount
}

func orUnknown(value string) string {
	if value == "" {
		return unknownField
	}
	return value
}

// isNotFoundError checks if the error is a "not found" error
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == "NOT_FOUND"
	}
	return false
}
