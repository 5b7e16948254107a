package finance

import (
	"time"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableBizType tags the source module of a payable obligation
type PayableBizType string

const (
	BizTypeReconciliation    PayableBizType = "RECONCILIATION"
	BizTypeReimbursement     PayableBizType = "REIMBURSEMENT"
	BizTypePayrollSettlement PayableBizType = "PAYROLL_SETTLEMENT"
	BizTypeOrderSettlement   PayableBizType = "ORDER_SETTLEMENT"
)

// IsValid checks if the biz type is a valid PayableBizType
func (t PayableBizType) IsValid() bool {
	switch t {
	case BizTypeReconciliation, BizTypeReimbursement, BizTypePayrollSettlement, BizTypeOrderSettlement:
		return true
	}
	return false
}

// String returns the string representation of PayableBizType
func (t PayableBizType) String() string {
	return string(t)
}

// IsRequestBacked reports whether payables of this type are carried by a
// stored payment request rather than projected from the source document.
func (t PayableBizType) IsRequestBacked() bool {
	return t == BizTypePayrollSettlement || t == BizTypeOrderSettlement
}

// PaymentRequestStatus represents the status of a payment request
type PaymentRequestStatus string

const (
	PaymentRequestStatusPending  PaymentRequestStatus = "PENDING"
	PaymentRequestStatusSuccess  PaymentRequestStatus = "SUCCESS"
	PaymentRequestStatusRejected PaymentRequestStatus = "REJECTED"
)

// IsValid checks if the status is a valid PaymentRequestStatus
func (s PaymentRequestStatus) IsValid() bool {
	switch s {
	case PaymentRequestStatusPending, PaymentRequestStatusSuccess, PaymentRequestStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of PaymentRequestStatus
func (s PaymentRequestStatus) String() string {
	return string(s)
}

// PaymentRequest is a queued payment for a payable obligation. For
// payroll/order settlements the request itself is the payable record;
// for reconciliations and reimbursements it mirrors the source document.
type PaymentRequest struct {
	shared.TenantAggregateRoot
	RequestNumber string
	BizType       PayableBizType
	BizID         uuid.UUID
	BizNumber     string
	Payee         string
	Amount        decimal.Decimal
	Method        string
	Status        PaymentRequestStatus
	PaidAt        *time.Time
	ReceivedAt    *time.Time
	RejectReason  string
	Remark        string
}

// NewPaymentRequest creates a pending payment request
func NewPaymentRequest(
	tenantID uuid.UUID,
	requestNumber string,
	bizType PayableBizType,
	bizID uuid.UUID,
	bizNumber string,
	payee string,
	amount decimal.Decimal,
) (*PaymentRequest, error) {
	if requestNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Request number cannot be empty")
	}
	if !bizType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BIZ_TYPE", "Unknown payable source type")
	}
	if bizID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BIZ_ID", "Source document ID cannot be empty")
	}

	return &PaymentRequest{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RequestNumber:       requestNumber,
		BizType:             bizType,
		BizID:               bizID,
		BizNumber:           bizNumber,
		Payee:               payee,
		Amount:              amount,
		Status:              PaymentRequestStatusPending,
	}, nil
}

// MarkPaid records a successful payment
func (p *PaymentRequest) MarkPaid() error {
	if p.Status != PaymentRequestStatusPending {
		return shared.ErrInvalidState
	}
	now := time.Now()
	p.Status = PaymentRequestStatusSuccess
	p.PaidAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// Reject declines the pending request with a reason
func (p *PaymentRequest) Reject(reason string) error {
	if p.Status != PaymentRequestStatusPending {
		return shared.ErrInvalidState
	}
	p.Status = PaymentRequestStatusRejected
	p.RejectReason = reason
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// ConfirmReceived stamps the payee-side acknowledgement on a paid request
func (p *PaymentRequest) ConfirmReceived() error {
	if p.Status != PaymentRequestStatusSuccess {
		return shared.ErrInvalidState
	}
	now := time.Now()
	p.ReceivedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// PayableItem is a normalized, read-only view of an approved-but-unpaid
// obligation from any source module. Never persisted on its own.
type PayableItem struct {
	BizType      PayableBizType  `json:"biz_type"`
	BizID        uuid.UUID       `json:"biz_id"`
	BizNumber    string          `json:"biz_number"`
	Payee        string          `json:"payee"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	SourceStatus string          `json:"source_status"`
}

// ExpenseStatus represents the status of an expense reimbursement
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusApproved ExpenseStatus = "APPROVED"
	ExpenseStatusPaid     ExpenseStatus = "PAID"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusPaid, ExpenseStatusRejected:
		return true
	}
	return false
}

// ExpenseReimbursement is an approved out-of-pocket expense awaiting payment.
// Only the slice of its lifecycle the payment queue needs lives here.
type ExpenseReimbursement struct {
	shared.TenantAggregateRoot
	ExpenseNumber string
	Applicant     string
	Amount        decimal.Decimal
	Status        ExpenseStatus
	PaidAt        *time.Time
	ApprovalNote  string
}

// MarkPaid records that the reimbursement was paid out
func (e *ExpenseReimbursement) MarkPaid() error {
	if e.Status != ExpenseStatusApproved {
		return shared.ErrInvalidState
	}
	now := time.Now()
	e.Status = ExpenseStatusPaid
	e.PaidAt = &now
	e.UpdatedAt = now
	e.IncrementVersion()
	return nil
}

// RejectWithNote reverts an approved reimbursement out of the payment queue
func (e *ExpenseReimbursement) RejectWithNote(note string) error {
	if e.Status != ExpenseStatusApproved {
		return shared.ErrInvalidState
	}
	e.Status = ExpenseStatusRejected
	e.ApprovalNote = note
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}
