package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationKind discriminates the two reconciliation document variants.
// KindAuto is a lookup-only hint: match a record of either kind by id.
type ReconciliationKind string

const (
	KindMaterial ReconciliationKind = "MATERIAL"
	KindShipment ReconciliationKind = "SHIPMENT"
	KindAuto     ReconciliationKind = "AUTO"
)

// IsValid checks if the kind is a valid ReconciliationKind
func (k ReconciliationKind) IsValid() bool {
	switch k {
	case KindMaterial, KindShipment, KindAuto:
		return true
	}
	return false
}

// IsConcrete reports whether the kind names a stored variant
func (k ReconciliationKind) IsConcrete() bool {
	return k == KindMaterial || k == KindShipment
}

// String returns the string representation of ReconciliationKind
func (k ReconciliationKind) String() string {
	return string(k)
}

// ReconciliationStatus represents the approval state of a reconciliation document
type ReconciliationStatus string

const (
	ReconciliationStatusPending  ReconciliationStatus = "PENDING"
	ReconciliationStatusApproved ReconciliationStatus = "APPROVED"
	ReconciliationStatusPaid     ReconciliationStatus = "PAID"
	ReconciliationStatusRejected ReconciliationStatus = "REJECTED"
)

// IsValid checks if the status is a valid ReconciliationStatus
func (s ReconciliationStatus) IsValid() bool {
	switch s {
	case ReconciliationStatusPending, ReconciliationStatusApproved,
		ReconciliationStatusPaid, ReconciliationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ReconciliationStatus
func (s ReconciliationStatus) String() string {
	return string(s)
}

// Rank orders statuses along the approval flow. Rejected ranks above
// everything so that moving into it is never treated as a backward step.
func (s ReconciliationStatus) Rank() int {
	switch s {
	case ReconciliationStatusPending:
		return 0
	case ReconciliationStatusApproved:
		return 1
	case ReconciliationStatusPaid:
		return 2
	case ReconciliationStatusRejected:
		return 99
	}
	return -1
}

// allowedTransitions is the forward transition table. Self-transitions are
// handled separately as no-ops.
var allowedTransitions = map[ReconciliationStatus][]ReconciliationStatus{
	ReconciliationStatusPending:  {ReconciliationStatusApproved, ReconciliationStatusRejected},
	ReconciliationStatusApproved: {ReconciliationStatusPaid, ReconciliationStatusRejected},
	ReconciliationStatusRejected: {ReconciliationStatusPending},
	ReconciliationStatusPaid:     {},
}

// CanTransitionTo reports whether s may move directly to target
func (s ReconciliationStatus) CanTransitionTo(target ReconciliationStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// previousStatus returns the status a record steps back to, or false when
// no backward step exists from s.
func previousStatus(s ReconciliationStatus) (ReconciliationStatus, bool) {
	switch s {
	case ReconciliationStatusPaid:
		return ReconciliationStatusApproved, true
	case ReconciliationStatusApproved:
		return ReconciliationStatusPending, true
	}
	return "", false
}

// Domain errors specific to reconciliation status handling
var (
	ErrInvalidTransition = shared.NewDomainError("INVALID_TRANSITION", "Status transition is not allowed")
	ErrUseReturn         = shared.NewDomainError("USE_RETURN", "Moving to an earlier status requires return-to-previous")
	ErrNoPreviousStatus  = shared.NewDomainError("INVALID_STATE", "No previous status to return to")
)

// ReconciliationRecord is a financial statement linking a counterparty to an
// owed amount for a batch of goods. Material records derive from purchases,
// shipment records from outbound deliveries; both share one lifecycle.
type ReconciliationRecord struct {
	shared.TenantAggregateRoot
	Kind             ReconciliationKind
	DocumentNumber   string
	CounterpartyID   *uuid.UUID
	CounterpartyName string
	PurchaseID       *uuid.UUID
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
	FinalAmount      decimal.Decimal
	Status           ReconciliationStatus
	VerifiedAt       *time.Time
	ApprovedAt       *time.Time
	PaidAt           *time.Time
	ReviewReason     string
	ReviewedAt       *time.Time
	Remark           string
	Deleted          bool
}

// NewReconciliationRecord creates a pending reconciliation document
func NewReconciliationRecord(
	tenantID uuid.UUID,
	kind ReconciliationKind,
	documentNumber string,
	counterpartyName string,
	quantity int,
	unitPrice decimal.Decimal,
	totalAmount decimal.Decimal,
) (*ReconciliationRecord, error) {
	if !kind.IsConcrete() {
		return nil, shared.NewDomainError("INVALID_KIND", "Reconciliation kind must be material or shipment")
	}
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	r := &ReconciliationRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		DocumentNumber:      documentNumber,
		CounterpartyName:    counterpartyName,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		TotalAmount:         totalAmount,
		DeductionAmount:     decimal.Zero,
		FinalAmount:         totalAmount,
		Status:              ReconciliationStatusPending,
	}

	r.AddDomainEvent(NewReconciliationCreatedEvent(r))

	return r, nil
}

// IsPending reports whether the record is still editable
func (r *ReconciliationRecord) IsPending() bool {
	return r.Status == ReconciliationStatusPending
}

// RecalculateFinalAmount refreshes finalAmount from total and deduction.
// A negative result is kept as-is; callers flag it, the record stores it.
func (r *ReconciliationRecord) RecalculateFinalAmount() {
	r.FinalAmount = r.TotalAmount.Sub(r.DeductionAmount)
}

// TransitionTo moves the record to the target status. It returns true when
// the record actually changed; a self-transition succeeds without change.
// Backward moves are refused with ErrUseReturn so callers reach for
// ReturnToPrevious instead.
func (r *ReconciliationRecord) TransitionTo(target ReconciliationStatus, actor string) (bool, error) {
	if !target.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", target))
	}
	if target == r.Status {
		return false, nil
	}
	if target.Rank() < r.Status.Rank() && !r.Status.CanTransitionTo(target) {
		return false, ErrUseReturn
	}
	if !r.Status.CanTransitionTo(target) {
		return false, ErrInvalidTransition
	}

	from := r.Status
	now := time.Now()

	switch target {
	case ReconciliationStatusApproved:
		if r.VerifiedAt == nil {
			r.VerifiedAt = &now
		}
		if r.ApprovedAt == nil {
			r.ApprovedAt = &now
		}
	case ReconciliationStatusPaid:
		r.PaidAt = &now
	case ReconciliationStatusPending:
		// rejected -> pending restarts the flow from scratch
		r.VerifiedAt = nil
		r.ApprovedAt = nil
		r.PaidAt = nil
	}

	r.Status = target
	r.appendAuditLine(now, actor, "TRANSITION", from, target)
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReconciliationStatusChangedEvent(r, from))

	return true, nil
}

// ReturnToPrevious steps the record back one status: paid to approved or
// approved to pending. Stepping back from paid records a re-review reason.
func (r *ReconciliationRecord) ReturnToPrevious(actor, reason string) error {
	target, ok := previousStatus(r.Status)
	if !ok {
		return ErrNoPreviousStatus
	}

	from := r.Status
	now := time.Now()

	switch from {
	case ReconciliationStatusPaid:
		r.PaidAt = nil
		r.ReviewReason = reason
		r.ReviewedAt = &now
	case ReconciliationStatusApproved:
		r.VerifiedAt = nil
		r.ApprovedAt = nil
	}

	r.Status = target
	r.appendAuditLine(now, actor, "RETURN", from, target)
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReconciliationStatusChangedEvent(r, from))

	return nil
}

// MarkDeleted soft-deletes the record
func (r *ReconciliationRecord) MarkDeleted() {
	r.Deleted = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// appendAuditLine adds one line to the append-only remark log
func (r *ReconciliationRecord) appendAuditLine(at time.Time, actor, action string, from, to ReconciliationStatus) {
	line := fmt.Sprintf("[%s][%s][%s] %s -> %s",
		at.Format("2006-01-02 15:04:05"), actor, action, from, to)
	if r.Remark == "" {
		r.Remark = line
		return
	}
	r.Remark = r.Remark + "\n" + line
}

// AuditLines splits the remark log into its individual lines
func (r *ReconciliationRecord) AuditLines() []string {
	if r.Remark == "" {
		return nil
	}
	return strings.Split(r.Remark, "\n")
}
