package finance

import (
	"github.com/garmentflow/backend/internal/domain/shared"
)

// Settlement event types
const (
	EventSettlementGenerated = "settlement.generated"
	EventSettlementCancelled = "settlement.cancelled"
)

// SettlementGeneratedEvent is emitted when a settlement batch is created
type SettlementGeneratedEvent struct {
	shared.BaseDomainEvent
	SettlementNumber string `json:"settlement_number"`
	ItemCount        int    `json:"item_count"`
	TotalQuantity    int    `json:"total_quantity"`
	TotalAmount      string `json:"total_amount"`
}

// NewSettlementGeneratedEvent creates a new generation event
func NewSettlementGeneratedEvent(b *SettlementBatch) *SettlementGeneratedEvent {
	return &SettlementGeneratedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventSettlementGenerated, "SettlementBatch", b.ID, b.TenantID),
		SettlementNumber: b.SettlementNumber,
		ItemCount:        len(b.Items),
		TotalQuantity:    b.TotalQuantity,
		TotalAmount:      b.TotalAmount.String(),
	}
}

// SettlementCancelledEvent is emitted when a settlement batch is cancelled
type SettlementCancelledEvent struct {
	shared.BaseDomainEvent
	SettlementNumber string `json:"settlement_number"`
}

// NewSettlementCancelledEvent creates a new cancellation event
func NewSettlementCancelledEvent(b *SettlementBatch) *SettlementCancelledEvent {
	return &SettlementCancelledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventSettlementCancelled, "SettlementBatch", b.ID, b.TenantID),
		SettlementNumber: b.SettlementNumber,
	}
}
