package finance

import (
	"context"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/procurement"
	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockReconciliationRepo struct {
	mock.Mock
}

var _ finance.ReconciliationRepository = (*mockReconciliationRepo)(nil)

func (m *mockReconciliationRepo) MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.String(0), args.Error(1)
}

func (m *mockReconciliationRepo) FindByID(ctx context.Context, id uuid.UUID, kind finance.ReconciliationKind) (*finance.ReconciliationRecord, error) {
	args := m.Called(ctx, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ReconciliationRecord), args.Error(1)
}

func (m *mockReconciliationRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID, kind finance.ReconciliationKind) (*finance.ReconciliationRecord, error) {
	args := m.Called(ctx, tenantID, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ReconciliationRecord), args.Error(1)
}

func (m *mockReconciliationRepo) FindLatestByPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*finance.ReconciliationRecord, error) {
	args := m.Called(ctx, tenantID, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ReconciliationRecord), args.Error(1)
}

func (m *mockReconciliationRepo) FindApprovedUnpaid(ctx context.Context, tenantID uuid.UUID) ([]finance.ReconciliationRecord, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ReconciliationRecord), args.Error(1)
}

func (m *mockReconciliationRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ReconciliationFilter) ([]finance.ReconciliationRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ReconciliationRecord), args.Error(1)
}

func (m *mockReconciliationRepo) Create(ctx context.Context, record *finance.ReconciliationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockReconciliationRepo) Save(ctx context.Context, record *finance.ReconciliationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type mockPurchaseRepo struct {
	mock.Mock
}

var _ procurement.PurchaseRepository = (*mockPurchaseRepo)(nil)

func (m *mockPurchaseRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.MaterialPurchase, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.MaterialPurchase), args.Error(1)
}

func (m *mockPurchaseRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter procurement.PurchaseFilter) ([]procurement.MaterialPurchase, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]procurement.MaterialPurchase), args.Error(1)
}

type mockScanEventRepo struct {
	mock.Mock
}

var _ production.ScanEventRepository = (*mockScanEventRepo)(nil)

func (m *mockScanEventRepo) FindForSettlement(ctx context.Context, tenantID uuid.UUID, filter production.ScanEventFilter) ([]production.ScanEvent, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]production.ScanEvent), args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

var _ production.OrderRepository = (*mockOrderRepo)(nil)

func (m *mockOrderRepo) FindRefByID(ctx context.Context, tenantID, id uuid.UUID) (*production.OrderRef, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.OrderRef), args.Error(1)
}

func (m *mockOrderRepo) FindRefByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*production.OrderRef, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.OrderRef), args.Error(1)
}

type mockSettlementRepo struct {
	mock.Mock
}

var _ finance.SettlementRepository = (*mockSettlementRepo)(nil)

func (m *mockSettlementRepo) MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.String(0), args.Error(1)
}

func (m *mockSettlementRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.SettlementBatch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.SettlementBatch), args.Error(1)
}

func (m *mockSettlementRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]finance.SettlementBatch, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.SettlementBatch), args.Error(1)
}

func (m *mockSettlementRepo) CreateAndClaim(ctx context.Context, batch *finance.SettlementBatch, filter production.ScanEventFilter) (int64, error) {
	args := m.Called(ctx, batch, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSettlementRepo) CancelAndRelease(ctx context.Context, batch *finance.SettlementBatch) (int64, error) {
	args := m.Called(ctx, batch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSettlementRepo) DeleteWithItems(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type mockPaymentRequestRepo struct {
	mock.Mock
}

var _ finance.PaymentRequestRepository = (*mockPaymentRequestRepo)(nil)

func (m *mockPaymentRequestRepo) MaxNumberWithPrefix(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	args := m.Called(ctx, tenantID, prefix)
	return args.String(0), args.Error(1)
}

func (m *mockPaymentRequestRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.PaymentRequest, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentRequest), args.Error(1)
}

func (m *mockPaymentRequestRepo) FindPendingByBiz(ctx context.Context, tenantID uuid.UUID, bizType finance.PayableBizType, bizID uuid.UUID) (*finance.PaymentRequest, error) {
	args := m.Called(ctx, tenantID, bizType, bizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentRequest), args.Error(1)
}

func (m *mockPaymentRequestRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.PaymentRequestFilter) ([]finance.PaymentRequest, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.PaymentRequest), args.Error(1)
}

func (m *mockPaymentRequestRepo) Create(ctx context.Context, request *finance.PaymentRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *mockPaymentRequestRepo) Save(ctx context.Context, request *finance.PaymentRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type mockExpenseRepo struct {
	mock.Mock
}

var _ finance.ExpenseRepository = (*mockExpenseRepo)(nil)

func (m *mockExpenseRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.ExpenseReimbursement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ExpenseReimbursement), args.Error(1)
}

func (m *mockExpenseRepo) FindApprovedUnpaid(ctx context.Context, tenantID uuid.UUID) ([]finance.ExpenseReimbursement, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.ExpenseReimbursement), args.Error(1)
}

func (m *mockExpenseRepo) Save(ctx context.Context, expense *finance.ExpenseReimbursement) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}
