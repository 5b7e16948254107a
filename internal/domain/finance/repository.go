package finance

import (
	"context"
	"time"

	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/google/uuid"
)

// ReconciliationFilter narrows reconciliation queries
type ReconciliationFilter struct {
	Kind           ReconciliationKind
	Status         *ReconciliationStatus
	CounterpartyID *uuid.UUID
	OrderID        *uuid.UUID
	From           *time.Time
	To             *time.Time
	IncludeDeleted bool
	Page           int
	PageSize       int
}

// ReconciliationRepository persists reconciliation records.
// Lookups honour the kind discriminator: KindAuto matches either variant,
// a concrete kind must match exactly.
type ReconciliationRepository interface {
	NumberSource
	FindByID(ctx context.Context, id uuid.UUID, kind ReconciliationKind) (*ReconciliationRecord, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID, kind ReconciliationKind) (*ReconciliationRecord, error)
	FindLatestByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*ReconciliationRecord, error)
	FindApprovedUnpaid(ctx context.Context, tenantID uuid.UUID) ([]ReconciliationRecord, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ReconciliationFilter) ([]ReconciliationRecord, error)
	Create(ctx context.Context, record *ReconciliationRecord) error
	Save(ctx context.Context, record *ReconciliationRecord) error
}

// SettlementRepository persists settlement batches. Generation and
// cancellation span the batch, its items and the scan-event linkage in one
// transaction each.
type SettlementRepository interface {
	NumberSource
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*SettlementBatch, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]SettlementBatch, error)
	// CreateAndClaim stores the batch with its items and stamps every scan
	// event matching the filter with the batch id, all in one transaction.
	// It returns the number of events claimed.
	CreateAndClaim(ctx context.Context, batch *SettlementBatch, filter production.ScanEventFilter) (int64, error)
	// CancelAndRelease saves the cancelled batch and clears the settlement
	// linkage on every event referencing it, in one transaction.
	CancelAndRelease(ctx context.Context, batch *SettlementBatch) (int64, error)
	// DeleteWithItems removes a cancelled batch and its items together.
	DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error
}

// PaymentRequestRepository persists payment requests
type PaymentRequestRepository interface {
	NumberSource
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentRequest, error)
	FindPendingByBiz(ctx context.Context, tenantID uuid.UUID, bizType PayableBizType, bizID uuid.UUID) (*PaymentRequest, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PaymentRequestFilter) ([]PaymentRequest, error)
	Create(ctx context.Context, request *PaymentRequest) error
	Save(ctx context.Context, request *PaymentRequest) error
}

// PaymentRequestFilter narrows payment request queries
type PaymentRequestFilter struct {
	Payee    string
	Status   *PaymentRequestStatus
	Method   string
	BizType  *PayableBizType
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// ExpenseRepository persists the reimbursement slice the payment queue uses
type ExpenseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseReimbursement, error)
	FindApprovedUnpaid(ctx context.Context, tenantID uuid.UUID) ([]ExpenseReimbursement, error)
	Save(ctx context.Context, expense *ExpenseReimbursement) error
}
