package finance

import (
	"github.com/garmentflow/backend/internal/domain/shared"
)

// Reconciliation event types
const (
	EventReconciliationCreated       = "reconciliation.created"
	EventReconciliationStatusChanged = "reconciliation.status_changed"
)

// ReconciliationCreatedEvent is emitted when a reconciliation record is created
type ReconciliationCreatedEvent struct {
	shared.BaseDomainEvent
	Kind           ReconciliationKind `json:"kind"`
	DocumentNumber string             `json:"document_number"`
}

// NewReconciliationCreatedEvent creates a new creation event
func NewReconciliationCreatedEvent(r *ReconciliationRecord) *ReconciliationCreatedEvent {
	return &ReconciliationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReconciliationCreated, "ReconciliationRecord", r.ID, r.TenantID),
		Kind:            r.Kind,
		DocumentNumber:  r.DocumentNumber,
	}
}

// ReconciliationStatusChangedEvent is emitted on every status transition and return
type ReconciliationStatusChangedEvent struct {
	shared.BaseDomainEvent
	Kind           ReconciliationKind   `json:"kind"`
	DocumentNumber string               `json:"document_number"`
	FromStatus     ReconciliationStatus `json:"from_status"`
	ToStatus       ReconciliationStatus `json:"to_status"`
}

// NewReconciliationStatusChangedEvent creates a new status change event
func NewReconciliationStatusChangedEvent(r *ReconciliationRecord, from ReconciliationStatus) *ReconciliationStatusChangedEvent {
	return &ReconciliationStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReconciliationStatusChanged, "ReconciliationRecord", r.ID, r.TenantID),
		Kind:            r.Kind,
		DocumentNumber:  r.DocumentNumber,
		FromStatus:      from,
		ToStatus:        r.Status,
	}
}
