package finance

import (
	"testing"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, bizType PayableBizType) *PaymentRequest {
	t.Helper()
	req, err := NewPaymentRequest(
		uuid.New(),
		"WP202503150001",
		bizType,
		uuid.New(),
		"PS202503140002",
		"Li Wei",
		decimal.NewFromFloat(1280.50),
	)
	require.NoError(t, err)
	return req
}

func TestNewPaymentRequest(t *testing.T) {
	req := newTestRequest(t, BizTypePayrollSettlement)
	assert.Equal(t, PaymentRequestStatusPending, req.Status)
	assert.Nil(t, req.PaidAt)

	_, err := NewPaymentRequest(uuid.New(), "", BizTypePayrollSettlement, uuid.New(), "", "x", decimal.Zero)
	assert.Error(t, err)

	_, err = NewPaymentRequest(uuid.New(), "WP1", PayableBizType("INVOICE"), uuid.New(), "", "x", decimal.Zero)
	assert.Error(t, err)

	_, err = NewPaymentRequest(uuid.New(), "WP1", BizTypePayrollSettlement, uuid.Nil, "", "x", decimal.Zero)
	assert.Error(t, err)
}

func TestPaymentRequestLifecycle(t *testing.T) {
	t.Run("pending to paid", func(t *testing.T) {
		req := newTestRequest(t, BizTypePayrollSettlement)
		require.NoError(t, req.MarkPaid())
		assert.Equal(t, PaymentRequestStatusSuccess, req.Status)
		assert.NotNil(t, req.PaidAt)

		assert.ErrorIs(t, req.MarkPaid(), shared.ErrInvalidState)
	})

	t.Run("pending to rejected", func(t *testing.T) {
		req := newTestRequest(t, BizTypeOrderSettlement)
		require.NoError(t, req.Reject("duplicate submission"))
		assert.Equal(t, PaymentRequestStatusRejected, req.Status)
		assert.Equal(t, "duplicate submission", req.RejectReason)

		assert.ErrorIs(t, req.MarkPaid(), shared.ErrInvalidState)
	})

	t.Run("confirm received requires paid", func(t *testing.T) {
		req := newTestRequest(t, BizTypePayrollSettlement)
		assert.ErrorIs(t, req.ConfirmReceived(), shared.ErrInvalidState)

		require.NoError(t, req.MarkPaid())
		require.NoError(t, req.ConfirmReceived())
		assert.NotNil(t, req.ReceivedAt)
	})
}

func TestPayableBizTypeIsRequestBacked(t *testing.T) {
	assert.True(t, BizTypePayrollSettlement.IsRequestBacked())
	assert.True(t, BizTypeOrderSettlement.IsRequestBacked())
	assert.False(t, BizTypeReconciliation.IsRequestBacked())
	assert.False(t, BizTypeReimbursement.IsRequestBacked())
}

func TestExpenseReimbursementLifecycle(t *testing.T) {
	expense := &ExpenseReimbursement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(uuid.New()),
		ExpenseNumber:       "EX202503010007",
		Applicant:           "Zhao Min",
		Amount:              decimal.NewFromFloat(230.00),
		Status:              ExpenseStatusApproved,
	}

	require.NoError(t, expense.MarkPaid())
	assert.Equal(t, ExpenseStatusPaid, expense.Status)
	assert.NotNil(t, expense.PaidAt)

	assert.ErrorIs(t, expense.MarkPaid(), shared.ErrInvalidState)
	assert.ErrorIs(t, expense.RejectWithNote("late"), shared.ErrInvalidState)
}
