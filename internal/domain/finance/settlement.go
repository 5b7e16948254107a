package finance

import (
	"time"

	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementStatus represents the status of a settlement batch
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "PENDING"
	SettlementStatusCancelled SettlementStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SettlementStatus
func (s SettlementStatus) IsValid() bool {
	return s == SettlementStatusPending || s == SettlementStatusCancelled
}

// String returns the string representation of SettlementStatus
func (s SettlementStatus) String() string {
	return string(s)
}

// SettlementItem is one payable line of a settlement batch: the total work
// one operator performed on one process within the batch scope.
type SettlementItem struct {
	ID           uuid.UUID
	SettlementID uuid.UUID
	OperatorID   *uuid.UUID
	OperatorName string
	ProcessName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
}

// SettlementBatch aggregates piece-rate production work into one payable
// document. Totals are computed once at creation and frozen; the only
// later mutation is full cancellation.
type SettlementBatch struct {
	shared.TenantAggregateRoot
	SettlementNumber string
	OrderID          *uuid.UUID
	OrderNumber      string
	StyleNumber      string
	OperatorID       *uuid.UUID
	PeriodFrom       *time.Time
	PeriodTo         *time.Time
	TotalQuantity    int
	TotalAmount      decimal.Decimal
	Status           SettlementStatus
	CancelledAt      *time.Time
	Remark           string
	Items            []SettlementItem
}

// NewSettlementBatch creates a pending batch from aggregated lines.
// The scope filter that produced the lines is recorded on the header.
func NewSettlementBatch(
	tenantID uuid.UUID,
	settlementNumber string,
	scope production.ScanEventFilter,
	lines []SettlementLine,
) (*SettlementBatch, error) {
	if settlementNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Settlement number cannot be empty")
	}
	if len(lines) == 0 {
		return nil, ErrNoEligibleRecords
	}

	b := &SettlementBatch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SettlementNumber:    settlementNumber,
		OrderID:             scope.OrderID,
		OrderNumber:         scope.OrderNumber,
		StyleNumber:         scope.StyleNumber,
		OperatorID:          scope.OperatorID,
		PeriodFrom:          scope.From,
		PeriodTo:            scope.To,
		Status:              SettlementStatusPending,
		Items:               make([]SettlementItem, 0, len(lines)),
	}

	total := decimal.Zero
	for _, line := range lines {
		b.Items = append(b.Items, SettlementItem{
			ID:           uuid.New(),
			SettlementID: b.ID,
			OperatorID:   line.OperatorID,
			OperatorName: line.OperatorName,
			ProcessName:  line.ProcessName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			TotalAmount:  line.Amount,
		})
		b.TotalQuantity += line.Quantity
		total = total.Add(line.Amount)
	}
	b.TotalAmount = total

	b.AddDomainEvent(NewSettlementGeneratedEvent(b))

	return b, nil
}

// Cancel releases the batch. Only pending batches can be cancelled; the
// caller is responsible for clearing the settlement linkage on the events.
func (b *SettlementBatch) Cancel() error {
	if b.Status != SettlementStatusPending {
		return shared.ErrInvalidState
	}
	now := time.Now()
	b.Status = SettlementStatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewSettlementCancelledEvent(b))

	return nil
}

// CanDelete reports whether the batch may be hard-deleted
func (b *SettlementBatch) CanDelete() bool {
	return b.Status == SettlementStatusCancelled
}
