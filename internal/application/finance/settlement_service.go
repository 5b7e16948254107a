package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/identity"
	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/garmentflow/backend/internal/infrastructure/cache"
	"github.com/garmentflow/backend/internal/infrastructure/logger"
	"github.com/garmentflow/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettlementService turns piece-rate scan events into payable settlement
// batches. Batch generation claims its source events inside one
// transaction so the same work can never settle twice.
type SettlementService struct {
	settlementRepo finance.SettlementRepository
	scanRepo       production.ScanEventRepository
	orderRepo      production.OrderRepository
	orderCache     *cache.TTLCache[string, production.OrderRef]
	numberGen      *finance.DocumentNumberGenerator
	logger         *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	settlementRepo finance.SettlementRepository,
	scanRepo production.ScanEventRepository,
	orderRepo production.OrderRepository,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		settlementRepo: settlementRepo,
		scanRepo:       scanRepo,
		orderRepo:      orderRepo,
		orderCache:     cache.NewTTLCache[string, production.OrderRef](256, 5*time.Minute),
		numberGen:      finance.NewDocumentNumberGenerator(settlementRepo),
		logger:         logger,
	}
}

// OperatorSummary aggregates matching scan events without settling them.
// Callers below supervisor only ever see their own work: the operator
// filter is silently narrowed, not rejected.
func (s *SettlementService) OperatorSummary(ctx context.Context, actor identity.Actor, filter production.ScanEventFilter) ([]finance.SettlementLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "operator_summary")
	defer span.End()

	filter, err := s.prepareFilter(ctx, actor, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	events, err := s.scanRepo.FindForSettlement(ctx, actor.TenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load scan events: %w", err)
	}

	return finance.BuildSettlementLines(events), nil
}

// Generate builds a settlement batch from the filter scope and claims the
// matching events in the same transaction. The filter must name an order
// or a time range; settling the whole history by accident is not allowed.
func (s *SettlementService) Generate(ctx context.Context, actor identity.Actor, filter production.ScanEventFilter) (*finance.SettlementBatch, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "generate")
	defer span.End()
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	if !filter.HasScope() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Settlement requires an order or a time range")
	}

	filter, err := s.prepareFilter(ctx, actor, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	events, err := s.scanRepo.FindForSettlement(ctx, actor.TenantID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load scan events: %w", err)
	}

	lines := finance.BuildSettlementLines(events)
	if len(lines) == 0 {
		return nil, finance.ErrNoEligibleRecords
	}

	var batch *finance.SettlementBatch
	var claimed int64
	number, err := s.numberGen.Generate(ctx, actor.TenantID, finance.PrefixPayrollSettlement, func(ctx context.Context, number string) error {
		b, err := finance.NewSettlementBatch(actor.TenantID, number, filter, lines)
		if err != nil {
			return err
		}
		b.SetCreatedBy(actor.UserID)

		n, err := s.settlementRepo.CreateAndClaim(ctx, b, filter)
		if err != nil {
			return err
		}
		batch, claimed = b, n
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	log.Info("settlement batch generated",
		zap.String("settlement_number", number),
		zap.Int("items", len(batch.Items)),
		zap.Int64("events_claimed", claimed),
		zap.String("total_amount", batch.TotalAmount.String()),
	)

	return batch, nil
}

// Cancel releases a pending batch: status moves to cancelled and every
// event it claimed becomes settleable again.
func (s *SettlementService) Cancel(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "cancel")
	defer span.End()
	telemetry.SetAttributes(span, "settlement_id", id.String())
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	batch, err := s.settlementRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := batch.AssertTenant(actor.TenantID); err != nil {
		return err
	}

	if err := batch.Cancel(); err != nil {
		return err
	}

	released, err := s.settlementRepo.CancelAndRelease(ctx, batch)
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to cancel settlement %s: %w", id, err)
	}

	log.Info("settlement batch cancelled",
		zap.String("settlement_number", batch.SettlementNumber),
		zap.Int64("events_released", released),
	)

	return nil
}

// Delete removes a cancelled batch together with its items.
func (s *SettlementService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "delete")
	defer span.End()
	telemetry.SetAttributes(span, "settlement_id", id.String())
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	batch, err := s.settlementRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !batch.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only cancelled settlements can be deleted")
	}

	if err := s.settlementRepo.DeleteWithItems(ctx, actor.TenantID, id); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to delete settlement %s: %w", id, err)
	}

	log.Info("settlement batch deleted",
		zap.String("settlement_number", batch.SettlementNumber),
	)

	return nil
}

// Detail loads one batch with its items.
func (s *SettlementService) Detail(ctx context.Context, actor identity.Actor, id uuid.UUID) (*finance.SettlementBatch, error) {
	return s.settlementRepo.FindByIDForTenant(ctx, actor.TenantID, id)
}

// List returns the tenant's settlement batches, newest first.
func (s *SettlementService) List(ctx context.Context, actor identity.Actor, page, pageSize int) ([]finance.SettlementBatch, error) {
	return s.settlementRepo.FindAllForTenant(ctx, actor.TenantID, page, pageSize)
}

// prepareFilter normalizes the requested filter: payable scan types only,
// swapped time bounds, operator narrowing and order-number resolution.
func (s *SettlementService) prepareFilter(ctx context.Context, actor identity.Actor, filter production.ScanEventFilter) (production.ScanEventFilter, error) {
	filter = filter.Normalized()

	if len(filter.ScanTypes) == 0 {
		filter.ScanTypes = []production.ScanType{production.ScanTypeProduction, production.ScanTypeCutting}
	}
	for _, st := range filter.ScanTypes {
		if !st.IsPayable() {
			return filter, shared.NewDomainError("INVALID_INPUT",
				fmt.Sprintf("Scan type %s is not payable work", st))
		}
	}

	if !actor.IsSupervisorOrAbove() {
		operatorID := actor.UserID
		filter.OperatorID = &operatorID
		filter.OperatorName = ""
	}

	if filter.OrderNumber != "" && filter.OrderID == nil {
		ref, err := s.resolveOrder(ctx, actor.TenantID, filter.OrderNumber)
		if err != nil {
			return filter, err
		}
		filter.OrderID = &ref.ID
		if filter.StyleNumber == "" {
			filter.StyleNumber = ref.StyleNumber
		}
	}

	return filter, nil
}

func (s *SettlementService) resolveOrder(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*production.OrderRef, error) {
	cacheKey := tenantID.String() + "/" + orderNumber
	if ref, ok := s.orderCache.Get(cacheKey); ok {
		return &ref, nil
	}

	ref, err := s.orderRepo.FindRefByNumber(ctx, tenantID, orderNumber)
	if err != nil {
		if isNotFoundError(err) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Order %s not found", orderNumber))
		}
		return nil, fmt.Errorf("failed to resolve order %s: %w", orderNumber, err)
	}

	s.orderCache.Set(cacheKey, *ref)
	return ref, nil
}
