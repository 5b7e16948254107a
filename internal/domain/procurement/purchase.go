package procurement

import (
	"context"
	"time"

	"github.com/garmentflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a material purchase
type PurchaseStatus string

const (
	PurchaseStatusDraft     PurchaseStatus = "DRAFT"
	PurchaseStatusOrdered   PurchaseStatus = "ORDERED"
	PurchaseStatusArrived   PurchaseStatus = "ARRIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusDraft, PurchaseStatusOrdered, PurchaseStatusArrived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// MaterialPurchase is the procurement-side record a reconciliation is derived from.
// The settlement engine reads it but never mutates it.
type MaterialPurchase struct {
	shared.TenantAggregateRoot
	PurchaseNumber  string
	SupplierID      *uuid.UUID
	SupplierName    string
	MaterialName    string
	MaterialCode    string
	Specification   string
	Unit            string
	OrderedQuantity int
	ArrivedQuantity int
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          PurchaseStatus
	ProductionOrder *uuid.UUID
	ArrivedAt       *time.Time
	Deleted         bool
}

// IsOrderLinked reports whether the purchase belongs to a production order.
// Order-linked purchases settle through the order flow, not standalone reconciliation.
func (p *MaterialPurchase) IsOrderLinked() bool {
	return p.ProductionOrder != nil && *p.ProductionOrder != uuid.Nil
}

// IsCancelled reports whether the purchase was cancelled
func (p *MaterialPurchase) IsCancelled() bool {
	return p.Status == PurchaseStatusCancelled
}

// EffectiveQuantity returns the quantity a reconciliation may bill for.
func (p *MaterialPurchase) EffectiveQuantity() int {
	return EffectiveArrivedQuantity(p.OrderedQuantity, p.ArrivedQuantity)
}

// EffectiveArrivedQuantity clamps the arrived quantity to the billable range.
// Negative arrivals count as zero; when an ordered quantity exists the result
// never exceeds it. Every reconciliation quantity derivation goes through here.
func EffectiveArrivedQuantity(ordered, arrived int) int {
	if arrived < 0 {
		arrived = 0
	}
	if ordered > 0 && arrived > ordered {
		return ordered
	}
	return arrived
}

// PurchaseFilter narrows purchase queries
type PurchaseFilter struct {
	SupplierID         *uuid.UUID
	Status             *PurchaseStatus
	ArrivedFrom        *time.Time
	ArrivedTo          *time.Time
	IncludeDeleted     bool
	ExcludeOrderLinked bool
	Page               int
	PageSize           int
}

// PurchaseRepository provides read access to material purchases
type PurchaseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*MaterialPurchase, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseFilter) ([]MaterialPurchase, error)
}
