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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService merges approved-but-unpaid obligations from every source
// module into one payment queue and writes confirmations and rejections
// back into the source records.
type PaymentService struct {
	paymentRepo        finance.PaymentRequestRepository
	reconciliationRepo finance.ReconciliationRepository
	expenseRepo        finance.ExpenseRepository
	numberGen          *finance.DocumentNumberGenerator
	logger             *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo finance.PaymentRequestRepository,
	reconciliationRepo finance.ReconciliationRepository,
	expenseRepo finance.ExpenseRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:        paymentRepo,
		reconciliationRepo: reconciliationRepo,
		expenseRepo:        expenseRepo,
		numberGen:          finance.NewDocumentNumberGenerator(paymentRepo),
		logger:             logger,
	}
}

// ListPendingPayables returns the unified payment queue: approved material
// reconciliations, approved expense reimbursements and pending
// payroll/order settlement requests. A failing request-backed source is
// logged and skipped so one broken source never empties the whole queue.
func (s *PaymentService) ListPendingPayables(ctx context.Context, actor identity.Actor, bizType *finance.PayableBizType) ([]finance.PayableItem, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "list_pending_payables")
	defer span.End()
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	items := make([]finance.PayableItem, 0)

	if bizType == nil || *bizType == finance.BizTypeReconciliation {
		records, err := s.reconciliationRepo.FindApprovedUnpaid(ctx, actor.TenantID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load approved reconciliations: %w", err)
		}
		for i := range records {
			r := &records[i]
			amount := r.FinalAmount
			if amount.IsZero() {
				amount = r.TotalAmount
			}
			items = append(items, finance.PayableItem{
				BizType:      finance.BizTypeReconciliation,
				BizID:        r.ID,
				BizNumber:    r.DocumentNumber,
				Payee:        r.CounterpartyName,
				Amount:       amount,
				PaidAmount:   decimal.Zero,
				SourceStatus: r.Status.String(),
			})
		}
	}

	if bizType == nil || *bizType == finance.BizTypeReimbursement {
		expenses, err := s.expenseRepo.FindApprovedUnpaid(ctx, actor.TenantID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load approved reimbursements: %w", err)
		}
		for i := range expenses {
			e := &expenses[i]
			items = append(items, finance.PayableItem{
				BizType:      finance.BizTypeReimbursement,
				BizID:        e.ID,
				BizNumber:    e.ExpenseNumber,
				Payee:        e.Applicant,
				Amount:       e.Amount,
				PaidAmount:   decimal.Zero,
				SourceStatus: string(e.Status),
			})
		}
	}

	for _, requestType := range []finance.PayableBizType{finance.BizTypePayrollSettlement, finance.BizTypeOrderSettlement} {
		if bizType != nil && *bizType != requestType {
			continue
		}
		pending := finance.PaymentRequestStatusPending
		requests, err := s.paymentRepo.FindAllForTenant(ctx, actor.TenantID, finance.PaymentRequestFilter{
			Status:  &pending,
			BizType: &requestType,
		})
		if err != nil {
			// a broken derived source must not take the queue down with it
			log.Warn("failed to load pending payment requests",
				zap.String("biz_type", requestType.String()),
				zap.Error(err),
			)
			continue
		}
		for i := range requests {
			r := &requests[i]
			items = append(items, finance.PayableItem{
				BizType:      r.BizType,
				BizID:        r.BizID,
				BizNumber:    r.BizNumber,
				Payee:        r.Payee,
				Amount:       r.Amount,
				PaidAmount:   decimal.Zero,
				SourceStatus: r.Status.String(),
			})
		}
	}

	return items, nil
}

// CreatePendingRequest queues a payment for a source document. Creation is
// idempotent on (bizType, bizID): an existing pending request is returned
// unchanged instead of duplicated.
func (s *PaymentService) CreatePendingRequest(
	ctx context.Context,
	actor identity.Actor,
	bizType finance.PayableBizType,
	bizID uuid.UUID,
	bizNumber string,
	payee string,
	amount decimal.Decimal,
) (*finance.PaymentRequest, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "create_pending_request")
	defer span.End()
	telemetry.SetAttributes(span, "biz_type", bizType.String(), "biz_id", bizID.String())
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	if !bizType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BIZ_TYPE", "Unknown payable source type")
	}
	if bizID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source document ID is required")
	}

	existing, err := s.paymentRepo.FindPendingByBiz(ctx, actor.TenantID, bizType, bizID)
	if err == nil {
		return existing, nil
	}
	if !isNotFoundError(err) {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check existing payment request: %w", err)
	}

	var request *finance.PaymentRequest
	_, err = s.numberGen.Generate(ctx, actor.TenantID, finance.PrefixPaymentRequest, func(ctx context.Context, number string) error {
		r, err := finance.NewPaymentRequest(actor.TenantID, number, bizType, bizID, bizNumber, payee, amount)
		if err != nil {
			return err
		}
		r.SetCreatedBy(actor.UserID)
		if err := s.paymentRepo.Create(ctx, r); err != nil {
			return err
		}
		request = r
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	log.Info("payment request created",
		zap.String("request_number", request.RequestNumber),
		zap.String("biz_type", bizType.String()),
		zap.String("biz_id", bizID.String()),
	)

	return request, nil
}

// ConfirmPayment settles a queued payment: the request is written as
// success/paid first, then a source-specific callback advances the source
// document. A callback failure is logged and left for manual repair; the
// payment write is never rolled back because the money has moved.
func (s *PaymentService) ConfirmPayment(ctx context.Context, actor identity.Actor, bizType finance.PayableBizType, bizID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "confirm")
	defer span.End()
	telemetry.SetAttributes(span, "biz_type", bizType.String(), "biz_id", bizID.String())
	ctx, log := logger.WithActor(ctx, s.logger, actor)

	request, err := s.paymentRepo.FindPendingByBiz(ctx, actor.TenantID, bizType, bizID)
	if isNotFoundError(err) && isSourceBacked(bizType) {
		// Reconciliations and reimbursements enter the queue as
		// projections of their source documents; the request record is
		// materialized at confirmation time.
		request, err = s.materializeSourceRequest(ctx, actor, bizType, bizID)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := request.MarkPaid(); err != nil {
		return err
	}
	if err := s.paymentRepo.Save(ctx, request); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.advanceSource(ctx, actor, bizType, bizID); err != nil {
		log.Error("payment recorded but source callback failed",
			zap.String("request_number", request.RequestNumber),
			zap.String("biz_type", bizType.String()),
			zap.String("biz_id", bizID.String()),
			zap.Error(err),
		)
	}

	log.Info("payment confirmed",
		zap.String("request_number", request.RequestNumber),
		zap.String("biz_type", bizType.String()),
	)

	return nil
}

// RejectPayable removes an obligation from the queue: request-backed types
// reject the request itself, source-backed types revert the source.
func (s *PaymentService) RejectPayable(ctx context.Context, actor identity.Actor, bizType finance.PayableBizType, bizID uuid.UUID, reason string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "reject")
	defer span.End()
	telemetry.SetAttributes(span, "biz_type", bizType.String(), "biz_id", bizID.String())

	switch bizType {
	case finance.BizTypePayrollSettlement, finance.BizTypeOrderSettlement:
		request, err := s.paymentRepo.FindPendingByBiz(ctx, actor.TenantID, bizType, bizID)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		if err := request.Reject(reason); err != nil {
			return err
		}
		return s.paymentRepo.Save(ctx, request)

	case finance.BizTypeReconciliation:
		if !actor.IsSupervisorOrAbove() {
			return shared.ErrForbidden
		}
		record, err := s.reconciliationRepo.FindByID(ctx, bizID, finance.KindAuto)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		if err := record.AssertTenant(actor.TenantID); err != nil {
			return err
		}
		if _, err := record.TransitionTo(finance.ReconciliationStatusRejected, actor.DisplayName()); err != nil {
			return err
		}
		return s.reconciliationRepo.Save(ctx, record)

	case finance.BizTypeReimbursement:
		expense, err := s.expenseRepo.FindByIDForTenant(ctx, actor.TenantID, bizID)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		if err := expense.RejectWithNote(reason); err != nil {
			return err
		}
		return s.expenseRepo.Save(ctx, expense)
	}

	return shared.NewDomainError("INVALID_BIZ_TYPE", "Unknown payable source type")
}

// ListRequests returns payment requests matching the filter.
func (s *PaymentService) ListRequests(ctx context.Context, actor identity.Actor, filter finance.PaymentRequestFilter) ([]finance.PaymentRequest, error) {
	return s.paymentRepo.FindAllForTenant(ctx, actor.TenantID, filter)
}

// ConfirmReceived stamps the payee acknowledgement on a paid request.
func (s *PaymentService) ConfirmReceived(ctx context.Context, actor identity.Actor, requestID uuid.UUID) error {
	request, err := s.paymentRepo.FindByIDForTenant(ctx, actor.TenantID, requestID)
	if err != nil {
		return err
	}
	if err := request.ConfirmReceived(); err != nil {
		return err
	}
	return s.paymentRepo.Save(ctx, request)
}

// isSourceBacked reports whether a payable type is projected straight from
// its source document rather than queued through a stored request.
func isSourceBacked(bizType finance.PayableBizType) bool {
	return bizType == finance.BizTypeReconciliation || bizType == finance.BizTypeReimbursement
}

// materializeSourceRequest builds and stores the payment request for a
// source-backed payable. The source must still be approved and unpaid.
func (s *PaymentService) materializeSourceRequest(ctx context.Context, actor identity.Actor, bizType finance.PayableBizType, bizID uuid.UUID) (*finance.PaymentRequest, error) {
	switch bizType {
	case finance.BizTypeReconciliation:
		record, err := s.reconciliationRepo.FindByID(ctx, bizID, finance.KindAuto)
		if err != nil {
			return nil, err
		}
		if err := record.AssertTenant(actor.TenantID); err != nil {
			return nil, err
		}
		if record.Status != finance.ReconciliationStatusApproved {
			return nil, shared.NewDomainError("NOT_PAYABLE", "Reconciliation is not approved for payment")
		}
		amount := record.FinalAmount
		if amount.IsZero() {
			amount = record.TotalAmount
		}
		return s.CreatePendingRequest(ctx, actor, bizType, bizID, record.DocumentNumber, record.CounterpartyName, amount)

	case finance.BizTypeReimbursement:
		expense, err := s.expenseRepo.FindByIDForTenant(ctx, actor.TenantID, bizID)
		if err != nil {
			return nil, err
		}
		if expense.Status != finance.ExpenseStatusApproved {
			return nil, shared.NewDomainError("NOT_PAYABLE", "Reimbursement is not approved for payment")
		}
		return s.CreatePendingRequest(ctx, actor, bizType, bizID, expense.ExpenseNumber, expense.Applicant, expense.Amount)
	}

	return nil, shared.NewDomainError("INVALID_BIZ_TYPE", "Unknown payable source type")
}

// advanceSource moves the source document to paid after a successful
// payment. Payroll and order settlements are derived views with nothing
// further to mutate.
func (s *PaymentService) advanceSource(ctx context.Context, actor identity.Actor, bizType finance.PayableBizType, bizID uuid.UUID) error {
	switch bizType {
	case finance.BizTypeReconciliation:
		record, err := s.reconciliationRepo.FindByID(ctx, bizID, finance.KindAuto)
		if err != nil {
			return err
		}
		if err := record.AssertTenant(actor.TenantID); err != nil {
			return err
		}
		if _, err := record.TransitionTo(finance.ReconciliationStatusPaid, actor.DisplayName()); err != nil {
			return err
		}
		return s.reconciliationRepo.Save(ctx, record)

	case finance.BizTypeReimbursement:
		expense, err := s.expenseRepo.FindByIDForTenant(ctx, actor.TenantID, bizID)
		if err != nil {
			return err
		}
		if err := expense.MarkPaid(); err != nil {
			return err
		}
		return s.expenseRepo.Save(ctx, expense)
	}

	return nil
}
