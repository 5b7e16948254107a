package finance

import (
	"context"
	"testing"

	"github.com/garmentflow/backend/internal/domain/finance"
	"github.com/garmentflow/backend/internal/domain/identity"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func supervisorActor(tenantID uuid.UUID) identity.Actor {
	return identity.Actor{
		UserID:   uuid.New(),
		Username: "chen",
		TenantID: tenantID,
		Role:     identity.RoleSupervisor,
	}
}

func workerActor(tenantID uuid.UUID) identity.Actor {
	return identity.Actor{
		UserID:   uuid.New(),
		Username: "li",
		TenantID: tenantID,
		Role:     identity.RoleWorker,
	}
}

func pendingRecord(t *testing.T, tenantID uuid.UUID) *finance.ReconciliationRecord {
	t.Helper()
	record, err := finance.NewReconciliationRecord(
		tenantID,
		finance.KindMaterial,
		"MR202602010001",
		"Jiangnan Textiles",
		10,
		decimal.NewFromFloat(2.5),
		decimal.NewFromFloat(25),
	)
	require.NoError(t, err)
	return record
}

func TestUpdateStatusApprovesPendingRecord(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindMaterial).Return(record, nil)
	repo.On("Save", mock.Anything, record).Return(nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err := service.UpdateStatus(context.Background(), workerActor(tenantID),
		finance.KindMaterial, record.ID, finance.ReconciliationStatusApproved)

	require.NoError(t, err)
	assert.Equal(t, finance.ReconciliationStatusApproved, record.Status)
	assert.NotNil(t, record.VerifiedAt)
	assert.NotNil(t, record.ApprovedAt)
	repo.AssertExpectations(t)
}

func TestUpdateStatusSelfTransitionSkipsSave(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindMaterial).Return(record, nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err := service.UpdateStatus(context.Background(), workerActor(tenantID),
		finance.KindMaterial, record.ID, finance.ReconciliationStatusPending)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectRequiresSupervisor(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)

	repo := new(mockReconciliationRepo)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err := service.UpdateStatus(context.Background(), workerActor(tenantID),
		finance.KindMaterial, record.ID, finance.ReconciliationStatusRejected)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectBySupervisor(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindAuto).Return(record, nil)
	repo.On("Save", mock.Anything, record).Return(nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err := service.UpdateStatus(context.Background(), supervisorActor(tenantID),
		finance.KindAuto, record.ID, finance.ReconciliationStatusRejected)

	require.NoError(t, err)
	assert.Equal(t, finance.ReconciliationStatusRejected, record.Status)
	repo.AssertExpectations(t)
}

func TestUpdateStatusCrossTenantAccessFailsHard(t *testing.T) {
	recordTenant := uuid.New()
	actorTenant := uuid.New()
	record := pendingRecord(t, recordTenant)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindMaterial).Return(record, nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err := service.UpdateStatus(context.Background(), workerActor(actorTenant),
		finance.KindMaterial, record.ID, finance.ReconciliationStatusApproved)

	assert.ErrorIs(t, err, shared.ErrCrossTenant)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateStatusBackwardMoveSurfacesUseReturn(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)
	_, err := record.TransitionTo(finance.ReconciliationStatusApproved, "chen")
	require.NoError(t, err)
	_, err = record.TransitionTo(finance.ReconciliationStatusPaid, "chen")
	require.NoError(t, err)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindMaterial).Return(record, nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err = service.UpdateStatus(context.Background(), supervisorActor(tenantID),
		finance.KindMaterial, record.ID, finance.ReconciliationStatusApproved)

	assert.ErrorIs(t, err, finance.ErrUseReturn)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateStatusValidatesInput(t *testing.T) {
	service := NewReconciliationStatusService(new(mockReconciliationRepo), zap.NewNop())

	err := service.UpdateStatus(context.Background(), workerActor(uuid.New()),
		finance.KindMaterial, uuid.Nil, finance.ReconciliationStatusApproved)
	require.Error(t, err)

	err = service.UpdateStatus(context.Background(), workerActor(uuid.New()),
		finance.ReconciliationKind("BOGUS"), uuid.New(), finance.ReconciliationStatusApproved)
	require.Error(t, err)
}

func TestReturnToPreviousFromPaidRecordsReason(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)
	_, err := record.TransitionTo(finance.ReconciliationStatusApproved, "chen")
	require.NoError(t, err)
	_, err = record.TransitionTo(finance.ReconciliationStatusPaid, "chen")
	require.NoError(t, err)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindMaterial).Return(record, nil)
	repo.On("Save", mock.Anything, record).Return(nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err = service.ReturnToPrevious(context.Background(), supervisorActor(tenantID),
		finance.KindMaterial, record.ID, "supplier invoice disputed")

	require.NoError(t, err)
	assert.Equal(t, finance.ReconciliationStatusApproved, record.Status)
	assert.Nil(t, record.PaidAt)
	assert.Equal(t, "supplier invoice disputed", record.ReviewReason)
	assert.NotNil(t, record.ReviewedAt)
	repo.AssertExpectations(t)
}

func TestReturnToPreviousRequiresSupervisor(t *testing.T) {
	tenantID := uuid.New()

	service := NewReconciliationStatusService(new(mockReconciliationRepo), zap.NewNop())
	err := service.ReturnToPrevious(context.Background(), workerActor(tenantID),
		finance.KindMaterial, uuid.New(), "")

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestReturnToPreviousFromPendingFails(t *testing.T) {
	tenantID := uuid.New()
	record := pendingRecord(t, tenantID)

	repo := new(mockReconciliationRepo)
	repo.On("FindByID", mock.Anything, record.ID, finance.KindMaterial).Return(record, nil)

	service := NewReconciliationStatusService(repo, zap.NewNop())
	err := service.ReturnToPrevious(context.Background(), supervisorActor(tenantID),
		finance.KindMaterial, record.ID, "")

	assert.ErrorIs(t, err, finance.ErrNoPreviousStatus)
}
