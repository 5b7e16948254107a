package models

import (
	"time"

	"github.com/garmentflow/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScanEventModel is the persistence model for shop-floor scan events.
// The settlement engine never creates rows here; it only reads them and
// stamps the settlement linkage columns.
type ScanEventModel struct {
	BaseModel
	TenantID         uuid.UUID                 `gorm:"type:uuid;not null;index"`
	OrderID          *uuid.UUID                `gorm:"type:uuid;index"`
	OrderNumber      string                    `gorm:"type:varchar(50);index"`
	StyleNumber      string                    `gorm:"type:varchar(50)"`
	OperatorID       *uuid.UUID                `gorm:"type:uuid;index"`
	OperatorName     string                    `gorm:"type:varchar(100)"`
	ProcessName      string                    `gorm:"type:varchar(100)"`
	ScanType         production.ScanType       `gorm:"type:varchar(20);not null;index"`
	Quantity         int                       `gorm:"not null;default:0"`
	UnitPrice        decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Cost             decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Result           production.ScanResult     `gorm:"type:varchar(20);not null"`
	ScannedAt        time.Time                 `gorm:"not null;index"`
	SettlementID     *uuid.UUID                `gorm:"type:uuid;index"`
	SettlementStatus production.SettlementMark `gorm:"type:varchar(20);not null;default:'UNSETTLED';index"`
}

// TableName returns the table name for GORM
func (ScanEventModel) TableName() string {
	return "scan_events"
}

// ToDomain converts the persistence model to a domain ScanEvent.
func (m *ScanEventModel) ToDomain() production.ScanEvent {
	return production.ScanEvent{
		ID:               m.ID,
		TenantID:         m.TenantID,
		OrderID:          m.OrderID,
		OrderNumber:      m.OrderNumber,
		StyleNumber:      m.StyleNumber,
		OperatorID:       m.OperatorID,
		OperatorName:     m.OperatorName,
		ProcessName:      m.ProcessName,
		ScanType:         m.ScanType,
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		Cost:             m.Cost,
		Result:           m.Result,
		ScannedAt:        m.ScannedAt,
		SettlementID:     m.SettlementID,
		SettlementStatus: m.SettlementStatus,
	}
}

// ProductionOrderModel is the slim persistence view of production orders
// the settlement engine resolves references against.
type ProductionOrderModel struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_tenant_number,priority:1"`
	OrderNumber string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_tenant_number,priority:2"`
	StyleNumber string    `gorm:"type:varchar(50)"`
	Cancelled   bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the persistence model to a domain OrderRef.
func (m *ProductionOrderModel) ToDomain() *production.OrderRef {
	return &production.OrderRef{
		ID:          m.ID,
		TenantID:    m.TenantID,
		OrderNumber: m.OrderNumber,
		StyleNumber: m.StyleNumber,
		Cancelled:   m.Cancelled,
	}
}
