package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScanType classifies a production scan event
type ScanType string

const (
	ScanTypeProduction  ScanType = "PRODUCTION"
	ScanTypeCutting     ScanType = "CUTTING"
	ScanTypeProcurement ScanType = "PROCUREMENT"
	ScanTypeQuality     ScanType = "QUALITY"
	ScanTypeWarehouse   ScanType = "WAREHOUSE"
)

// IsValid checks if the scan type is a valid ScanType
func (t ScanType) IsValid() bool {
	switch t {
	case ScanTypeProduction, ScanTypeCutting, ScanTypeProcurement, ScanTypeQuality, ScanTypeWarehouse:
		return true
	}
	return false
}

// String returns the string representation of ScanType
func (t ScanType) String() string {
	return string(t)
}

// IsPayable reports whether events of this type represent piece-rate work.
// Only production and cutting scans ever settle into wages.
func (t ScanType) IsPayable() bool {
	return t == ScanTypeProduction || t == ScanTypeCutting
}

// ScanResult is the outcome recorded by the scanning station
type ScanResult string

const (
	ScanResultSuccess ScanResult = "SUCCESS"
	ScanResultFailure ScanResult = "FAILURE"
)

// SettlementMark is the exclusivity lock stamped onto a scan event
// when a settlement batch claims it.
type SettlementMark string

const (
	SettlementMarkUnsettled SettlementMark = "UNSETTLED"
	SettlementMarkSettled   SettlementMark = "SETTLED"
)

// ScanEvent is a raw piece-rate production record produced by shop-floor
// scanning stations. The settlement engine reads events and writes only
// the settlement linkage fields.
type ScanEvent struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	OrderID      *uuid.UUID
	OrderNumber  string
	StyleNumber  string
	OperatorID   *uuid.UUID
	OperatorName string
	ProcessName  string
	ScanType     ScanType
	Quantity     int
	UnitPrice    decimal.Decimal
	Cost         decimal.Decimal
	Result       ScanResult
	ScannedAt    time.Time

	SettlementID     *uuid.UUID
	SettlementStatus SettlementMark
}

// IsSettled reports whether the event is claimed by an active settlement batch
func (e *ScanEvent) IsSettled() bool {
	return e.SettlementID != nil && e.SettlementStatus == SettlementMarkSettled
}

// Contribution returns the payable amount this event adds to its group.
// A precomputed cost wins; otherwise quantity times unit price when both
// are positive; otherwise zero. Zero-contribution events still count
// their quantity.
func (e *ScanEvent) Contribution() decimal.Decimal {
	if e.Cost.GreaterThan(decimal.Zero) {
		return e.Cost
	}
	if e.Quantity > 0 && e.UnitPrice.GreaterThan(decimal.Zero) {
		return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
	}
	return decimal.Zero
}

// ScanEventFilter narrows scan event queries. Zero values mean "no constraint".
type ScanEventFilter struct {
	OrderID        *uuid.UUID
	OrderNumber    string
	StyleNumber    string
	OperatorID     *uuid.UUID
	OperatorName   string
	ProcessName    string
	ScanTypes      []ScanType
	From           *time.Time
	To             *time.Time
	IncludeSettled bool
}

// HasScope reports whether the filter is narrow enough to settle against.
// An unbounded filter would settle the entire event history.
func (f ScanEventFilter) HasScope() bool {
	return f.OrderID != nil || f.OrderNumber != "" || f.From != nil || f.To != nil
}

// Normalized returns a copy with an inverted time range swapped into order.
func (f ScanEventFilter) Normalized() ScanEventFilter {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		f.From, f.To = f.To, f.From
	}
	return f
}

// ScanEventRepository reads scan events for settlement. Settlement
// linkage writes happen inside the settlement repository's transactions.
type ScanEventRepository interface {
	FindForSettlement(ctx context.Context, tenantID uuid.UUID, filter ScanEventFilter) ([]ScanEvent, error)
}
